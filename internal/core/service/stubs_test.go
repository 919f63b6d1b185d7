package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

// ── shared stubs ─────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = "user-" + strconv.Itoa(r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByVerificationToken(_ context.Context, tokenHash string) (*domain.User, error) {
	for _, u := range r.users {
		if u.VerificationToken != "" && u.VerificationToken == tokenHash {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByResetToken(_ context.Context, tokenHash string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ResetToken != "" && u.ResetToken == tokenHash {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

type stubBlogRepo struct {
	blogs  map[string]*domain.Blog
	nextID int
}

func newStubBlogRepo() *stubBlogRepo {
	return &stubBlogRepo{blogs: make(map[string]*domain.Blog)}
}

func cloneBlog(b *domain.Blog) *domain.Blog {
	if b == nil {
		return nil
	}
	clone := *b
	clone.LikedBy = append([]string(nil), b.LikedBy...)
	return &clone
}

func (r *stubBlogRepo) Create(_ context.Context, blog *domain.Blog) (*domain.Blog, error) {
	for _, b := range r.blogs {
		if b.Slug == blog.Slug {
			return nil, domain.ErrDuplicateSlug
		}
	}
	copy := cloneBlog(blog)
	r.nextID++
	copy.ID = "blog-" + strconv.Itoa(r.nextID)
	r.blogs[copy.ID] = cloneBlog(copy)
	return copy, nil
}

func (r *stubBlogRepo) FindByID(_ context.Context, id string) (*domain.Blog, error) {
	if b, ok := r.blogs[id]; ok {
		return cloneBlog(b), nil
	}
	return nil, domain.ErrBlogNotFound
}

func (r *stubBlogRepo) FindBySlug(_ context.Context, slug string) (*domain.Blog, error) {
	for _, b := range r.blogs {
		if b.Slug == slug {
			return cloneBlog(b), nil
		}
	}
	return nil, domain.ErrBlogNotFound
}

func (r *stubBlogRepo) FindByAuthor(_ context.Context, authorID string, limit int) ([]domain.Blog, error) {
	var out []domain.Blog
	for _, b := range r.blogs {
		if b.AuthorID == authorID {
			out = append(out, *cloneBlog(b))
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *stubBlogRepo) List(_ context.Context, filter ports.BlogFilter) ([]domain.Blog, int64, error) {
	var out []domain.Blog
	for _, b := range r.blogs {
		if filter.PublishedOnly && !b.Published {
			continue
		}
		out = append(out, *cloneBlog(b))
	}
	return out, int64(len(out)), nil
}

func (r *stubBlogRepo) Update(_ context.Context, blog *domain.Blog) (*domain.Blog, error) {
	if _, ok := r.blogs[blog.ID]; !ok {
		return nil, domain.ErrBlogNotFound
	}
	r.blogs[blog.ID] = cloneBlog(blog)
	return cloneBlog(blog), nil
}

func (r *stubBlogRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.blogs[id]; !ok {
		return domain.ErrBlogNotFound
	}
	delete(r.blogs, id)
	return nil
}

func (r *stubBlogRepo) IncrementViews(_ context.Context, id string) error {
	b, ok := r.blogs[id]
	if !ok {
		return domain.ErrBlogNotFound
	}
	b.Views++
	return nil
}

type stubDispatcher struct {
	mu   sync.Mutex
	outs []ports.Outbound
}

func (d *stubDispatcher) Enqueue(out ports.Outbound) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.outs = append(d.outs, out)
}

func (d *stubDispatcher) EnqueueBatch(outs []ports.Outbound) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.outs = append(d.outs, outs...)
}

func (d *stubDispatcher) all() []ports.Outbound {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]ports.Outbound(nil), d.outs...)
}

type stubMailer struct {
	mu   sync.Mutex
	sent []ports.EmailMessage
	fail error
}

func (m *stubMailer) Send(_ context.Context, msg ports.EmailMessage) error {
	if m.fail != nil {
		return m.fail
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

// stubRenderer produces minimal messages that embed the template inputs
// so tests can assert on them.
type stubRenderer struct{}

func (stubRenderer) msg(template, to, body string) (*ports.EmailMessage, error) {
	return &ports.EmailMessage{To: to, Subject: template, HTML: body, Template: template}, nil
}

func (r stubRenderer) Verification(to, name, link string) (*ports.EmailMessage, error) {
	return r.msg("verification", to, link)
}

func (r stubRenderer) PasswordReset(to, name, link string) (*ports.EmailMessage, error) {
	return r.msg("password_reset", to, link)
}

func (r stubRenderer) EventTicket(reg *domain.Registration, event *domain.Event) (*ports.EmailMessage, error) {
	return r.msg("event_ticket", reg.Email, reg.TicketID)
}

func (r stubRenderer) GroupLink(to, name, eventTitle, link, subject, message string) (*ports.EmailMessage, error) {
	return r.msg("event_group_link", to, link)
}

func (r stubRenderer) CommunityInvite(to, name, groupLink string) (*ports.EmailMessage, error) {
	return r.msg("community_invite", to, groupLink)
}

func (r stubRenderer) ProjectApproved(to, name, title, feedback string) (*ports.EmailMessage, error) {
	return r.msg("project_approved", to, title)
}

func (r stubRenderer) ProjectRejected(to, name, title, feedback string) (*ports.EmailMessage, error) {
	return r.msg("project_rejected", to, strings.TrimSpace(title+" "+feedback))
}

func (r stubRenderer) NewSubmission(to string, p *domain.PendingProject) (*ports.EmailMessage, error) {
	return r.msg("admin_new_submission", to, p.Title)
}

var errStubSendFailed = errors.New("smtp unavailable")

type stubEventRepo struct {
	events map[string]*domain.Event
	nextID int
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{events: make(map[string]*domain.Event)}
}

func (r *stubEventRepo) Create(_ context.Context, event *domain.Event) (*domain.Event, error) {
	copy := *event
	r.nextID++
	copy.ID = "event-" + strconv.Itoa(r.nextID)
	r.events[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (*domain.Event, error) {
	if e, ok := r.events[id]; ok {
		copy := *e
		return &copy, nil
	}
	return nil, domain.ErrEventNotFound
}

func (r *stubEventRepo) List(_ context.Context, upcomingOnly bool) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range r.events {
		if upcomingOnly && !e.IsUpcoming {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEventRepo) Update(_ context.Context, event *domain.Event) (*domain.Event, error) {
	if _, ok := r.events[event.ID]; !ok {
		return nil, domain.ErrEventNotFound
	}
	copy := *event
	r.events[event.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

type stubRegistrationRepo struct {
	regs   []*domain.Registration
	nextID int
}

func (r *stubRegistrationRepo) Create(_ context.Context, reg *domain.Registration) (*domain.Registration, error) {
	for _, existing := range r.regs {
		if existing.EventID == reg.EventID && existing.Email == reg.Email {
			return nil, domain.ErrAlreadyRegistered
		}
	}
	copy := *reg
	r.nextID++
	copy.ID = "reg-" + strconv.Itoa(r.nextID)
	r.regs = append(r.regs, &copy)
	out := copy
	return &out, nil
}

func (r *stubRegistrationRepo) FindByEventAndEmail(_ context.Context, eventID, email string) (*domain.Registration, error) {
	for _, reg := range r.regs {
		if reg.EventID == eventID && reg.Email == email {
			copy := *reg
			return &copy, nil
		}
	}
	return nil, domain.ErrRegistrationNotFound
}

func (r *stubRegistrationRepo) ListByEvent(_ context.Context, eventID string, excludeCancelled bool) ([]domain.Registration, error) {
	var out []domain.Registration
	for _, reg := range r.regs {
		if reg.EventID != eventID {
			continue
		}
		if excludeCancelled && reg.Status == domain.RegistrationCancelled {
			continue
		}
		out = append(out, *reg)
	}
	return out, nil
}

type stubCommunityRepo struct {
	members map[string]*domain.CommunityMember
	nextID  int
}

func newStubCommunityRepo() *stubCommunityRepo {
	return &stubCommunityRepo{members: make(map[string]*domain.CommunityMember)}
}

func (r *stubCommunityRepo) Create(_ context.Context, m *domain.CommunityMember) (*domain.CommunityMember, error) {
	copy := *m
	r.nextID++
	copy.ID = "member-" + strconv.Itoa(r.nextID)
	r.members[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubCommunityRepo) FindByEmail(_ context.Context, email string) (*domain.CommunityMember, error) {
	for _, m := range r.members {
		if m.Email == email {
			copy := *m
			return &copy, nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

func (r *stubCommunityRepo) ListActive(_ context.Context) ([]domain.CommunityMember, error) {
	var out []domain.CommunityMember
	for _, m := range r.members {
		if m.IsActive {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubCommunityRepo) Update(_ context.Context, m *domain.CommunityMember) (*domain.CommunityMember, error) {
	if _, ok := r.members[m.ID]; !ok {
		return nil, domain.ErrMemberNotFound
	}
	copy := *m
	r.members[m.ID] = &copy
	out := copy
	return &out, nil
}

type stubProjectRepo struct {
	projects map[string]*domain.Project
	nextID   int
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	copy := *p
	r.nextID++
	copy.ID = "project-" + strconv.Itoa(r.nextID)
	r.projects[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	if p, ok := r.projects[id]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, domain.ErrProjectNotFound
}

func (r *stubProjectRepo) FindByAuthorName(_ context.Context, name string, limit int) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range r.projects {
		for _, c := range p.Contributors {
			if c == name {
				out = append(out, *p)
				break
			}
		}
	}
	return out, nil
}

func (r *stubProjectRepo) List(_ context.Context) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range r.projects {
		out = append(out, *p)
	}
	return out, nil
}

type stubPendingRepo struct {
	subs   map[string]*domain.PendingProject
	nextID int
}

func newStubPendingRepo() *stubPendingRepo {
	return &stubPendingRepo{subs: make(map[string]*domain.PendingProject)}
}

func (r *stubPendingRepo) Create(_ context.Context, p *domain.PendingProject) (*domain.PendingProject, error) {
	copy := *p
	r.nextID++
	copy.ID = "sub-" + strconv.Itoa(r.nextID)
	r.subs[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubPendingRepo) FindByID(_ context.Context, id string) (*domain.PendingProject, error) {
	if p, ok := r.subs[id]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, domain.ErrSubmissionNotFound
}

func (r *stubPendingRepo) ListByStatus(_ context.Context, status domain.SubmissionStatus) ([]domain.PendingProject, error) {
	var out []domain.PendingProject
	for _, p := range r.subs {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPendingRepo) Update(_ context.Context, p *domain.PendingProject) (*domain.PendingProject, error) {
	if _, ok := r.subs[p.ID]; !ok {
		return nil, domain.ErrSubmissionNotFound
	}
	copy := *p
	r.subs[p.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubPendingRepo) CountByStatus(_ context.Context) (ports.SubmissionCounts, error) {
	var counts ports.SubmissionCounts
	for _, p := range r.subs {
		switch p.Status {
		case domain.SubmissionPending:
			counts.Pending++
		case domain.SubmissionApproved:
			counts.Approved++
		case domain.SubmissionRejected:
			counts.Rejected++
		}
	}
	return counts, nil
}

type stubNotificationRepo struct {
	notes  map[string]*domain.Notification
	nextID int
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{notes: make(map[string]*domain.Notification)}
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	copy := *n
	r.nextID++
	copy.ID = "note-" + strconv.Itoa(r.nextID)
	r.notes[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubNotificationRepo) FindByID(_ context.Context, id string) (*domain.Notification, error) {
	if n, ok := r.notes[id]; ok {
		copy := *n
		return &copy, nil
	}
	return nil, domain.ErrNotificationNotFound
}

func (r *stubNotificationRepo) ListByRecipient(_ context.Context, recipientID string, page, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range r.notes {
		if n.RecipientID == recipientID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) CountUnread(_ context.Context, recipientID string) (int64, error) {
	var count int64
	for _, n := range r.notes {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, id string) error {
	n, ok := r.notes[id]
	if !ok {
		return domain.ErrNotificationNotFound
	}
	n.IsRead = true
	return nil
}

func (r *stubNotificationRepo) MarkAllRead(_ context.Context, recipientID string) error {
	for _, n := range r.notes {
		if n.RecipientID == recipientID {
			n.IsRead = true
		}
	}
	return nil
}
