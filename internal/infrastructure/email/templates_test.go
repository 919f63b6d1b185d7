package email

import (
	"strings"
	"testing"

	"github.com/byteverse/platform-api/internal/core/domain"
)

func TestRendererVerification(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	msg, err := r.Verification("ana@example.com", "Ana", "https://byteverse.dev/verify/abc")
	if err != nil {
		t.Fatalf("Verification: %v", err)
	}
	if msg.To != "ana@example.com" {
		t.Errorf("expected recipient ana@example.com, got %s", msg.To)
	}
	if msg.Template != TemplateVerification {
		t.Errorf("expected template %s, got %s", TemplateVerification, msg.Template)
	}
	if !strings.Contains(msg.HTML, "https://byteverse.dev/verify/abc") {
		t.Error("expected verification link in body")
	}
	if !strings.Contains(msg.HTML, "Ana") {
		t.Error("expected recipient name in body")
	}
}

func TestRendererEscapesHTML(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	msg, err := r.ProjectRejected("dev@example.com", "<script>x</script>", "Title", "")
	if err != nil {
		t.Fatalf("ProjectRejected: %v", err)
	}
	if strings.Contains(msg.HTML, "<script>") {
		t.Error("template must escape HTML in user-supplied fields")
	}
}

func TestRendererEventTicket(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	reg := &domain.Registration{
		Name:     "Luis",
		Email:    "luis@example.com",
		TicketID: "BV-hackathon-a1b2c3d4",
	}
	event := &domain.Event{
		Title:    "ByteVerse Hackathon",
		Date:     "2026-09-12",
		Location: "Online",
	}

	msg, err := r.EventTicket(reg, event)
	if err != nil {
		t.Fatalf("EventTicket: %v", err)
	}
	if !strings.Contains(msg.HTML, "BV-hackathon-a1b2c3d4") {
		t.Error("expected ticket reference in body")
	}
	if !strings.Contains(msg.HTML, "ByteVerse Hackathon") {
		t.Error("expected event title in body")
	}
	if msg.To != "luis@example.com" {
		t.Errorf("expected registration email as recipient, got %s", msg.To)
	}
}
