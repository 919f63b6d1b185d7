package domain

import (
	"errors"
	"time"
)

var ErrMemberExists = errors.New("already a community member")
var ErrMemberNotFound = errors.New("community member not found")

// CommunityMember is a community signup. Members are soft-deactivated
// rather than deleted; rejoining an inactive member reactivates them.
type CommunityMember struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone" bson:"phone"`
	Interests []string  `json:"interests,omitempty" bson:"interests,omitempty"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	JoinedAt  time.Time `json:"joined_at" bson:"joined_at"`
}
