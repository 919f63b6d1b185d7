package domain

import (
	"errors"
	"time"
)

var ErrCommentNotFound = errors.New("comment not found")

// Comment is a standalone comment attached to a blog post. ParentID links
// replies to their parent comment.
type Comment struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	BlogID    string    `json:"blog_id" bson:"blog_id"`
	UserID    string    `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Author    string    `json:"author" bson:"author"`
	Content   string    `json:"content" bson:"content"`
	ParentID  string    `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Likes     int64     `json:"likes" bson:"likes"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
