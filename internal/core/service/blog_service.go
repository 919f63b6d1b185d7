package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/byteverse/platform-api/internal/content"
	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

const excerptMaxLen = 150

// BlogService implements the content workflow: the create/update pipeline,
// draft visibility, and the like toggle with author notification.
type BlogService struct {
	blogs      ports.BlogRepository
	images     *content.ImageValidator
	dispatcher ports.OutboundDispatcher
	log        zerolog.Logger
}

func NewBlogService(blogs ports.BlogRepository, images *content.ImageValidator, dispatcher ports.OutboundDispatcher, log zerolog.Logger) *BlogService {
	return &BlogService{blogs: blogs, images: images, dispatcher: dispatcher, log: log}
}

func (s *BlogService) List(ctx context.Context, filter ports.BlogFilter) (*ports.BlogPage, error) {
	filter.PublishedOnly = true
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 10
	}

	blogs, total, err := s.blogs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.BlogPage{
		Blogs: blogs,
		Count: len(blogs),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Get resolves a post by id or slug. Drafts are served only to their
// author or an admin; published posts get their view count bumped.
func (s *BlogService) Get(ctx context.Context, idOrSlug, viewerID string, viewerRole domain.Role) (*domain.Blog, error) {
	blog, err := s.blogs.FindBySlug(ctx, idOrSlug)
	if errors.Is(err, domain.ErrBlogNotFound) {
		blog, err = s.blogs.FindByID(ctx, idOrSlug)
	}
	if err != nil {
		return nil, err
	}

	if !blog.VisibleTo(viewerID, viewerRole) {
		return nil, domain.ErrBlogNotFound
	}

	if blog.Published {
		if err := s.blogs.IncrementViews(ctx, blog.ID); err != nil {
			s.log.Warn().Err(err).Str("blog_id", blog.ID).Msg("increment views")
		} else {
			blog.Views++
		}
	}
	return blog, nil
}

func (s *BlogService) ListByAuthor(ctx context.Context, authorID string) ([]domain.Blog, error) {
	return s.blogs.FindByAuthor(ctx, authorID, 0)
}

func (s *BlogService) Create(ctx context.Context, author *domain.User, in ports.BlogInput) (*domain.Blog, error) {
	if !author.IsVerified {
		return nil, domain.ErrNotVerified
	}

	now := time.Now().UTC()
	blog := &domain.Blog{
		Title:       in.Title,
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		AuthorImage: author.Avatar,
		CoverImage:  in.CoverImage,
		Categories:  in.Categories,
		Tags:        in.Tags,
		Published:   in.Published,
		Featured:    in.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.applyContent(ctx, blog, in)
	blog.Slug = content.Slugify(in.Title, false)
	if in.Published {
		blog.PublishedAt = now
	}

	created, err := s.blogs.Create(ctx, blog)
	if errors.Is(err, domain.ErrDuplicateSlug) {
		blog.Slug = content.Slugify(in.Title, true)
		created, err = s.blogs.Create(ctx, blog)
	}
	return created, err
}

func (s *BlogService) Update(ctx context.Context, id, actorID string, actorRole domain.Role, in ports.BlogInput) (*domain.Blog, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog.AuthorID != actorID && actorRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	if in.Title != "" && in.Title != blog.Title {
		blog.Title = in.Title
		// Re-slugging gets a timestamp suffix so the new slug cannot
		// collide with another post's.
		blog.Slug = content.Slugify(in.Title, true)
	}
	s.applyContent(ctx, blog, in)
	blog.CoverImage = in.CoverImage
	blog.Categories = in.Categories
	blog.Tags = in.Tags
	blog.Featured = in.Featured
	if in.Published && !blog.Published {
		blog.PublishedAt = time.Now().UTC()
	}
	blog.Published = in.Published
	blog.UpdatedAt = time.Now().UTC()

	return s.blogs.Update(ctx, blog)
}

func (s *BlogService) Delete(ctx context.Context, id, actorID string, actorRole domain.Role) error {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if blog.AuthorID != actorID && actorRole != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.blogs.Delete(ctx, id)
}

// ToggleLike adds or removes the actor's like. A new like on someone
// else's post notifies the author through the fan-out queue.
func (s *BlogService) ToggleLike(ctx context.Context, id string, actor *domain.User) (*domain.Blog, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if blog.IsLikedBy(actor.ID) {
		kept := blog.LikedBy[:0]
		for _, uid := range blog.LikedBy {
			if uid != actor.ID {
				kept = append(kept, uid)
			}
		}
		blog.LikedBy = kept
		if blog.Likes > 0 {
			blog.Likes--
		}
	} else {
		blog.LikedBy = append(blog.LikedBy, actor.ID)
		blog.Likes++
		if blog.AuthorID != actor.ID {
			s.dispatcher.Enqueue(ports.Outbound{
				Recipient: blog.AuthorID,
				Notification: &domain.Notification{
					RecipientID:  blog.AuthorID,
					SenderID:     actor.ID,
					SenderName:   actor.Name,
					Type:         domain.NotificationLike,
					Content:      actor.Name + " liked your post \"" + blog.Title + "\"",
					ResourceType: domain.ResourceBlog,
					ResourceID:   blog.ID,
					Link:         "/blogs/" + blog.Slug,
				},
			})
		}
	}

	return s.blogs.Update(ctx, blog)
}

// applyContent runs the content pipeline: HTML cleanup, image
// sanitisation, excerpt and read-time derivation.
func (s *BlogService) applyContent(ctx context.Context, blog *domain.Blog, in ports.BlogInput) {
	html := content.OptimizeHTML(in.Content)
	if s.images != nil {
		var replaced int
		html, replaced = s.images.SanitizeContent(ctx, html)
		if replaced > 0 {
			s.log.Info().Int("replaced", replaced).Str("title", in.Title).Msg("unreachable images replaced")
		}
	}
	blog.Content = html
	blog.ReadTime = content.ReadTime(html)

	excerpt := strings.TrimSpace(in.Excerpt)
	if excerpt == "" {
		excerpt = content.Excerpt(html, excerptMaxLen)
	}
	blog.Excerpt = excerpt
}
