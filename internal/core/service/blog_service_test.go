package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

func newBlogService(repo *stubBlogRepo, dispatcher *stubDispatcher) *BlogService {
	return NewBlogService(repo, nil, dispatcher, zerolog.Nop())
}

func verifiedAuthor() *domain.User {
	return &domain.User{ID: "user-1", Name: "Alice", IsVerified: true}
}

func TestBlogService_Create_Pipeline(t *testing.T) {
	repo := newStubBlogRepo()
	svc := newBlogService(repo, &stubDispatcher{})

	blog, err := svc.Create(context.Background(), verifiedAuthor(), ports.BlogInput{
		Title:     "Hello, Gophers!",
		Content:   "<!-- draft note --><p>Some   content   here</p>",
		Published: true,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if blog.Slug != "hello-gophers" {
		t.Fatalf("unexpected slug: %s", blog.Slug)
	}
	if strings.Contains(blog.Content, "<!--") {
		t.Fatalf("expected HTML comments stripped, got %q", blog.Content)
	}
	if strings.Contains(blog.Content, "   ") {
		t.Fatalf("expected whitespace collapsed, got %q", blog.Content)
	}
	if blog.Excerpt == "" {
		t.Fatalf("expected derived excerpt")
	}
	if blog.ReadTime < 1 {
		t.Fatalf("expected read time >= 1, got %d", blog.ReadTime)
	}
	if blog.PublishedAt.IsZero() {
		t.Fatalf("publishing must set PublishedAt")
	}
}

func TestBlogService_Create_Unverified(t *testing.T) {
	svc := newBlogService(newStubBlogRepo(), &stubDispatcher{})

	author := &domain.User{ID: "user-1", Name: "Bob"}
	if _, err := svc.Create(context.Background(), author, ports.BlogInput{Title: "x", Content: "y"}); err != domain.ErrNotVerified {
		t.Fatalf("expected ErrNotVerified, got %v", err)
	}
}

func TestBlogService_Create_SlugCollision(t *testing.T) {
	repo := newStubBlogRepo()
	svc := newBlogService(repo, &stubDispatcher{})

	in := ports.BlogInput{Title: "Same Title", Content: "body"}
	first, err := svc.Create(context.Background(), verifiedAuthor(), in)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second, err := svc.Create(context.Background(), verifiedAuthor(), in)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if first.Slug == second.Slug {
		t.Fatalf("expected distinct slugs, both %q", first.Slug)
	}
	if !strings.HasPrefix(second.Slug, "same-title-") {
		t.Fatalf("expected timestamped slug, got %q", second.Slug)
	}
}

func TestBlogService_Get_DraftVisibility(t *testing.T) {
	repo := newStubBlogRepo()
	svc := newBlogService(repo, &stubDispatcher{})

	draft, err := svc.Create(context.Background(), verifiedAuthor(), ports.BlogInput{
		Title: "Draft", Content: "wip",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), draft.ID, "", ""); err != domain.ErrBlogNotFound {
		t.Fatalf("anonymous viewer must not see drafts, got %v", err)
	}
	if _, err := svc.Get(context.Background(), draft.ID, "user-2", domain.RoleUser); err != domain.ErrBlogNotFound {
		t.Fatalf("other users must not see drafts, got %v", err)
	}
	if _, err := svc.Get(context.Background(), draft.ID, "user-1", domain.RoleUser); err != nil {
		t.Fatalf("author must see own draft: %v", err)
	}
	if _, err := svc.Get(context.Background(), draft.ID, "admin-1", domain.RoleAdmin); err != nil {
		t.Fatalf("admin must see drafts: %v", err)
	}
}

func TestBlogService_Get_CountsViews(t *testing.T) {
	repo := newStubBlogRepo()
	svc := newBlogService(repo, &stubDispatcher{})

	blog, err := svc.Create(context.Background(), verifiedAuthor(), ports.BlogInput{
		Title: "Popular", Content: "body", Published: true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := svc.Get(context.Background(), blog.Slug, "", "")
	if err != nil {
		t.Fatalf("Get by slug failed: %v", err)
	}
	if got.Views != 1 {
		t.Fatalf("expected 1 view, got %d", got.Views)
	}
}

func TestBlogService_Update_Ownership(t *testing.T) {
	repo := newStubBlogRepo()
	svc := newBlogService(repo, &stubDispatcher{})

	blog, _ := svc.Create(context.Background(), verifiedAuthor(), ports.BlogInput{
		Title: "Mine", Content: "body",
	})

	if _, err := svc.Update(context.Background(), blog.ID, "user-2", domain.RoleUser, ports.BlogInput{Title: "Stolen"}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Update(context.Background(), blog.ID, "admin-1", domain.RoleAdmin, ports.BlogInput{Title: "Moderated", Content: "body"}); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
}

func TestBlogService_Update_PublishSetsTimestamp(t *testing.T) {
	repo := newStubBlogRepo()
	svc := newBlogService(repo, &stubDispatcher{})

	draft, _ := svc.Create(context.Background(), verifiedAuthor(), ports.BlogInput{
		Title: "Later", Content: "body",
	})
	if !draft.PublishedAt.IsZero() {
		t.Fatalf("draft must not carry PublishedAt")
	}

	published, err := svc.Update(context.Background(), draft.ID, "user-1", domain.RoleUser, ports.BlogInput{
		Title: "Later", Content: "body", Published: true,
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if published.PublishedAt.IsZero() {
		t.Fatalf("publishing must set PublishedAt")
	}
}

func TestBlogService_ToggleLike(t *testing.T) {
	repo := newStubBlogRepo()
	dispatcher := &stubDispatcher{}
	svc := newBlogService(repo, dispatcher)

	blog, _ := svc.Create(context.Background(), verifiedAuthor(), ports.BlogInput{
		Title: "Likeable", Content: "body", Published: true,
	})

	liker := &domain.User{ID: "user-2", Name: "Bob"}
	liked, err := svc.ToggleLike(context.Background(), blog.ID, liker)
	if err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if liked.Likes != 1 || !liked.IsLikedBy("user-2") {
		t.Fatalf("expected one like by user-2, got %+v", liked)
	}

	outs := dispatcher.all()
	if len(outs) != 1 || outs[0].Notification == nil {
		t.Fatalf("expected author notification, got %+v", outs)
	}
	if outs[0].Notification.RecipientID != "user-1" || outs[0].Notification.Type != domain.NotificationLike {
		t.Fatalf("unexpected notification: %+v", outs[0].Notification)
	}

	unliked, err := svc.ToggleLike(context.Background(), blog.ID, liker)
	if err != nil {
		t.Fatalf("unlike failed: %v", err)
	}
	if unliked.Likes != 0 || unliked.IsLikedBy("user-2") {
		t.Fatalf("expected like removed, got %+v", unliked)
	}
	// Unliking is silent.
	if len(dispatcher.all()) != 1 {
		t.Fatalf("unlike must not notify")
	}
}

func TestBlogService_ToggleLike_OwnPostSilent(t *testing.T) {
	repo := newStubBlogRepo()
	dispatcher := &stubDispatcher{}
	svc := newBlogService(repo, dispatcher)

	author := verifiedAuthor()
	blog, _ := svc.Create(context.Background(), author, ports.BlogInput{
		Title: "Self", Content: "body", Published: true,
	})

	if _, err := svc.ToggleLike(context.Background(), blog.ID, author); err != nil {
		t.Fatalf("self like failed: %v", err)
	}
	if len(dispatcher.all()) != 0 {
		t.Fatalf("liking your own post must not notify")
	}
}
