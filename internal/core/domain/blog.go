package domain

import (
	"errors"
	"time"
)

var ErrBlogNotFound = errors.New("blog not found")
var ErrDuplicateSlug = errors.New("blog slug already exists")

// BlogComment is an inline comment embedded in a blog document.
type BlogComment struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	UserName  string    `json:"user_name" bson:"user_name"`
	UserImage string    `json:"user_image,omitempty" bson:"user_image,omitempty"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Blog is the core content aggregate. Slug, excerpt and read time are
// derived from the title and content when the post is created or updated.
type Blog struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Slug        string    `json:"slug" bson:"slug"`
	Content     string    `json:"content" bson:"content"`
	CoverImage  string    `json:"cover_image,omitempty" bson:"cover_image,omitempty"`
	Excerpt     string    `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	AuthorID    string    `json:"author_id" bson:"author_id"`
	AuthorName  string    `json:"author_name" bson:"author_name"`
	AuthorImage string    `json:"author_image,omitempty" bson:"author_image,omitempty"`
	Categories  []string  `json:"categories,omitempty" bson:"categories,omitempty"`
	Tags        []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	ReadTime    int       `json:"read_time" bson:"read_time"`
	Published   bool      `json:"published" bson:"published"`
	PublishedAt time.Time `json:"published_at,omitempty" bson:"published_at,omitempty"`
	Featured    bool      `json:"featured" bson:"featured"`
	Views       int64     `json:"views" bson:"views"`
	Likes       int64     `json:"likes" bson:"likes"`
	LikedBy     []string  `json:"liked_by,omitempty" bson:"liked_by,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// LikedBy membership drives the like toggle.
func (b *Blog) IsLikedBy(userID string) bool {
	for _, id := range b.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// VisibleTo reports whether a draft may be served to the given principal.
// Published posts are visible to everyone.
func (b *Blog) VisibleTo(userID string, role Role) bool {
	if b.Published {
		return true
	}
	return userID != "" && (userID == b.AuthorID || role == RoleAdmin)
}
