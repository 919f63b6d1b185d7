package domain

import (
	"errors"
	"time"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationType categorises what triggered a notification.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationMention NotificationType = "mention"
	NotificationEvent   NotificationType = "event"
	NotificationSystem  NotificationType = "system"
)

// ResourceType names the entity a notification points at.
type ResourceType string

const (
	ResourceBlog    ResourceType = "blog"
	ResourceComment ResourceType = "comment"
	ResourceProject ResourceType = "project"
	ResourceEvent   ResourceType = "event"
	ResourceUser    ResourceType = "user"
	ResourceSystem  ResourceType = "system"
)

// Notification is a persisted in-app notification. Documents expire via a
// TTL index thirty days after creation.
type Notification struct {
	ID           string           `json:"id" bson:"_id,omitempty"`
	RecipientID  string           `json:"recipient_id" bson:"recipient_id"`
	SenderID     string           `json:"sender_id,omitempty" bson:"sender_id,omitempty"`
	SenderName   string           `json:"sender_name,omitempty" bson:"sender_name,omitempty"`
	Type         NotificationType `json:"type" bson:"type"`
	Content      string           `json:"content" bson:"content"`
	ResourceType ResourceType     `json:"resource_type" bson:"resource_type"`
	ResourceID   string           `json:"resource_id" bson:"resource_id"`
	Link         string           `json:"link,omitempty" bson:"link,omitempty"`
	IsRead       bool             `json:"is_read" bson:"is_read"`
	CreatedAt    time.Time        `json:"created_at" bson:"created_at"`
}
