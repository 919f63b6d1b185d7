package domain

import (
	"errors"
	"time"
)

// Role is the access level of an authenticated principal.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNotVerified = errors.New("account not verified")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidResetToken = errors.New("invalid or expired token")

// SocialLinks holds a user's public profile links.
type SocialLinks struct {
	GitHub    string `json:"github,omitempty" bson:"github,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
}

// User models a registered member of the platform.
type User struct {
	ID            string      `json:"id" bson:"_id,omitempty"`
	Name          string      `json:"name" bson:"name"`
	Username      string      `json:"username" bson:"username"`
	Email         string      `json:"email" bson:"email"`
	PasswordHash  string      `json:"-" bson:"password_hash"`
	Role          Role        `json:"role" bson:"role"`
	Avatar        string      `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Bio           string      `json:"bio,omitempty" bson:"bio,omitempty"`
	Website       string      `json:"website,omitempty" bson:"website,omitempty"`
	SocialLinks   SocialLinks `json:"social_links" bson:"social_links"`
	IsVerified    bool        `json:"is_verified" bson:"is_verified"`
	IsEmailPublic bool        `json:"is_email_public" bson:"is_email_public"`

	// Hashed one-time tokens. Never rendered outward.
	VerificationToken  string    `json:"-" bson:"verification_token,omitempty"`
	VerificationExpire time.Time `json:"-" bson:"verification_expire,omitempty"`
	ResetToken         string    `json:"-" bson:"reset_token,omitempty"`
	ResetExpire        time.Time `json:"-" bson:"reset_expire,omitempty"`

	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	LastActive time.Time `json:"last_active" bson:"last_active"`
}

// Admin models a back-office principal. Admins live in their own
// collection and their tokens are signed with a separate secret, so a user
// token never resolves against the admin domain and vice versa.
type Admin struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
