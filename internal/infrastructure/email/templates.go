package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

// Template names, used for logging and the emails_sent_total metric.
const (
	TemplateVerification    = "verification"
	TemplatePasswordReset   = "password_reset"
	TemplateEventTicket     = "event_ticket"
	TemplateGroupLink       = "event_group_link"
	TemplateCommunityInvite = "community_invite"
	TemplateProjectApproved = "project_approved"
	TemplateProjectRejected = "project_rejected"
	TemplateNewSubmission   = "admin_new_submission"
)

const baseLayout = `<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f4f4f7;font-family:Arial,Helvetica,sans-serif;">
  <div style="max-width:600px;margin:0 auto;padding:24px;">
    <div style="background:#1a1a2e;border-radius:8px 8px 0 0;padding:20px;text-align:center;">
      <h1 style="color:#e94560;margin:0;font-size:24px;">ByteVerse</h1>
    </div>
    <div style="background:#ffffff;border-radius:0 0 8px 8px;padding:32px;color:#333;">
      {{template "body" .}}
    </div>
    <p style="text-align:center;color:#999;font-size:12px;margin-top:16px;">
      You are receiving this email because of activity on your ByteVerse account.
    </p>
  </div>
</body>
</html>`

var templates = map[string]string{
	TemplateVerification: `{{define "body"}}
<h2>Welcome, {{.Name}}!</h2>
<p>Thanks for joining ByteVerse. Confirm your email address to activate your account.</p>
<p style="text-align:center;margin:28px 0;">
  <a href="{{.Link}}" style="background:#e94560;color:#fff;padding:12px 28px;border-radius:6px;text-decoration:none;">Verify Email</a>
</p>
<p>This link expires in 24 hours. If you did not sign up, you can ignore this email.</p>
{{end}}`,

	TemplatePasswordReset: `{{define "body"}}
<h2>Password reset</h2>
<p>Hi {{.Name}}, we received a request to reset your ByteVerse password.</p>
<p style="text-align:center;margin:28px 0;">
  <a href="{{.Link}}" style="background:#e94560;color:#fff;padding:12px 28px;border-radius:6px;text-decoration:none;">Reset Password</a>
</p>
<p>This link expires in 10 minutes. If you did not ask for a reset, no action is needed.</p>
{{end}}`,

	TemplateEventTicket: `{{define "body"}}
<h2>You're in, {{.Name}}!</h2>
<p>Your registration for <strong>{{.EventTitle}}</strong> is confirmed.</p>
<div style="border:2px dashed #e94560;border-radius:8px;padding:20px;margin:24px 0;text-align:center;">
  <p style="margin:0;color:#999;font-size:13px;">TICKET</p>
  <p style="margin:8px 0;font-size:22px;font-weight:bold;letter-spacing:1px;">{{.TicketID}}</p>
</div>
<table style="width:100%;font-size:14px;">
  <tr><td style="padding:4px 0;color:#999;">Date</td><td>{{.Date}}</td></tr>
  {{if .Time}}<tr><td style="padding:4px 0;color:#999;">Time</td><td>{{.Time}}</td></tr>{{end}}
  {{if .Location}}<tr><td style="padding:4px 0;color:#999;">Location</td><td>{{.Location}}</td></tr>{{end}}
</table>
<p>Show this ticket reference at check-in. See you there!</p>
{{end}}`,

	TemplateGroupLink: `{{define "body"}}
<h2>{{.EventTitle}}</h2>
<p>Hi {{.Name}},</p>
<p>{{.Message}}</p>
<p style="text-align:center;margin:28px 0;">
  <a href="{{.Link}}" style="background:#e94560;color:#fff;padding:12px 28px;border-radius:6px;text-decoration:none;">Join the Group</a>
</p>
{{end}}`,

	TemplateCommunityInvite: `{{define "body"}}
<h2>Welcome to the community, {{.Name}}!</h2>
<p>Your ByteVerse community membership is active. Join the group to meet other members:</p>
<p style="text-align:center;margin:28px 0;">
  <a href="{{.Link}}" style="background:#e94560;color:#fff;padding:12px 28px;border-radius:6px;text-decoration:none;">Join the Group</a>
</p>
{{end}}`,

	TemplateProjectApproved: `{{define "body"}}
<h2>Your project is live!</h2>
<p>Hi {{.Name}}, great news: <strong>{{.Title}}</strong> has been approved and is now part of the ByteVerse showcase.</p>
{{if .Feedback}}<p>Reviewer notes: {{.Feedback}}</p>{{end}}
{{end}}`,

	TemplateProjectRejected: `{{define "body"}}
<h2>About your submission</h2>
<p>Hi {{.Name}}, thanks for submitting <strong>{{.Title}}</strong>. After review it was not accepted this time.</p>
{{if .Feedback}}<p>Reviewer notes: {{.Feedback}}</p>{{end}}
<p>You are welcome to revise and submit again.</p>
{{end}}`,

	TemplateNewSubmission: `{{define "body"}}
<h2>New project submission</h2>
<p><strong>{{.Title}}</strong> was submitted by {{.SubmitterName}} ({{.SubmitterEmail}}) and is waiting for review.</p>
<p>{{.Description}}</p>
{{end}}`,
}

// Renderer renders the transactional email templates. Templates are
// parsed once at construction.
type Renderer struct {
	parsed map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	parsed := make(map[string]*template.Template, len(templates))
	for name, body := range templates {
		t, err := template.New(name).Parse(baseLayout)
		if err != nil {
			return nil, fmt.Errorf("parse layout for %s: %w", name, err)
		}
		if _, err := t.Parse(body); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		parsed[name] = t
	}
	return &Renderer{parsed: parsed}, nil
}

func (r *Renderer) render(name string, data any) (string, error) {
	t, ok := r.parsed[name]
	if !ok {
		return "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (r *Renderer) message(name, to, subject string, data any) (*ports.EmailMessage, error) {
	html, err := r.render(name, data)
	if err != nil {
		return nil, err
	}
	return &ports.EmailMessage{To: to, Subject: subject, HTML: html, Template: name}, nil
}

func (r *Renderer) Verification(to, name, link string) (*ports.EmailMessage, error) {
	return r.message(TemplateVerification, to, "Verify your ByteVerse account",
		map[string]string{"Name": name, "Link": link})
}

func (r *Renderer) PasswordReset(to, name, link string) (*ports.EmailMessage, error) {
	return r.message(TemplatePasswordReset, to, "Reset your ByteVerse password",
		map[string]string{"Name": name, "Link": link})
}

func (r *Renderer) EventTicket(reg *domain.Registration, event *domain.Event) (*ports.EmailMessage, error) {
	return r.message(TemplateEventTicket, reg.Email, "Your ticket for "+event.Title,
		map[string]string{
			"Name":       reg.Name,
			"EventTitle": event.Title,
			"TicketID":   reg.TicketID,
			"Date":       event.Date,
			"Time":       event.Time,
			"Location":   event.Location,
		})
}

func (r *Renderer) GroupLink(to, name, eventTitle, link, subject, message string) (*ports.EmailMessage, error) {
	if subject == "" {
		subject = "Join the group for " + eventTitle
	}
	return r.message(TemplateGroupLink, to, subject,
		map[string]string{
			"Name":       name,
			"EventTitle": eventTitle,
			"Link":       link,
			"Message":    message,
		})
}

func (r *Renderer) CommunityInvite(to, name, groupLink string) (*ports.EmailMessage, error) {
	return r.message(TemplateCommunityInvite, to, "Welcome to the ByteVerse community",
		map[string]string{"Name": name, "Link": groupLink})
}

func (r *Renderer) ProjectApproved(to, name, title, feedback string) (*ports.EmailMessage, error) {
	return r.message(TemplateProjectApproved, to, "Your project was approved",
		map[string]string{"Name": name, "Title": title, "Feedback": feedback})
}

func (r *Renderer) ProjectRejected(to, name, title, feedback string) (*ports.EmailMessage, error) {
	return r.message(TemplateProjectRejected, to, "Update on your project submission",
		map[string]string{"Name": name, "Title": title, "Feedback": feedback})
}

func (r *Renderer) NewSubmission(to string, p *domain.PendingProject) (*ports.EmailMessage, error) {
	return r.message(TemplateNewSubmission, to, "New project submission: "+p.Title,
		map[string]string{
			"Title":          p.Title,
			"SubmitterName":  p.SubmitterName,
			"SubmitterEmail": p.SubmitterEmail,
			"Description":    p.Description,
		})
}
