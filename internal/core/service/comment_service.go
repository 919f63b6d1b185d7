package service

import (
	"context"
	"time"

	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

// CommentService manages blog comments and notifies post authors.
type CommentService struct {
	comments   ports.CommentRepository
	blogs      ports.BlogRepository
	dispatcher ports.OutboundDispatcher
}

func NewCommentService(comments ports.CommentRepository, blogs ports.BlogRepository, dispatcher ports.OutboundDispatcher) *CommentService {
	return &CommentService{comments: comments, blogs: blogs, dispatcher: dispatcher}
}

func (s *CommentService) List(ctx context.Context, blogID string) ([]domain.Comment, error) {
	if _, err := s.blogs.FindByID(ctx, blogID); err != nil {
		return nil, err
	}
	return s.comments.ListByBlog(ctx, blogID)
}

func (s *CommentService) Add(ctx context.Context, blogID, userID, author, comment, parentID string) (*domain.Comment, error) {
	blog, err := s.blogs.FindByID(ctx, blogID)
	if err != nil {
		return nil, err
	}

	created, err := s.comments.Create(ctx, &domain.Comment{
		BlogID:    blogID,
		UserID:    userID,
		Author:    author,
		Content:   comment,
		ParentID:  parentID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if blog.AuthorID != "" && blog.AuthorID != userID {
		s.dispatcher.Enqueue(ports.Outbound{
			Recipient: blog.AuthorID,
			Notification: &domain.Notification{
				RecipientID:  blog.AuthorID,
				SenderID:     userID,
				SenderName:   author,
				Type:         domain.NotificationComment,
				Content:      author + " commented on \"" + blog.Title + "\"",
				ResourceType: domain.ResourceBlog,
				ResourceID:   blog.ID,
				Link:         "/blogs/" + blog.Slug,
			},
		})
	}
	return created, nil
}

func (s *CommentService) Delete(ctx context.Context, commentID, actorID string, actorRole domain.Role) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != actorID && actorRole != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *CommentService) Like(ctx context.Context, commentID string) error {
	return s.comments.IncrementLikes(ctx, commentID)
}
