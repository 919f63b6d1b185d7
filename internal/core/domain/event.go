package domain

import (
	"errors"
	"time"
)

var ErrEventNotFound = errors.New("event not found")
var ErrAlreadyRegistered = errors.New("already registered for this event")
var ErrRegistrationNotFound = errors.New("registration not found")

// AgendaItem is one slot of an event programme.
type AgendaItem struct {
	Time        string `json:"time,omitempty" bson:"time,omitempty"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Event is a community event open for registration.
type Event struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description" bson:"description"`
	Details     string       `json:"details,omitempty" bson:"details,omitempty"`
	Image       string       `json:"image,omitempty" bson:"image,omitempty"`
	Date        string       `json:"date" bson:"date"`
	Time        string       `json:"time,omitempty" bson:"time,omitempty"`
	Location    string       `json:"location,omitempty" bson:"location,omitempty"`
	Organizer   string       `json:"organizer,omitempty" bson:"organizer,omitempty"`
	IsUpcoming  bool         `json:"is_upcoming" bson:"is_upcoming"`
	Agenda      []AgendaItem `json:"agenda,omitempty" bson:"agenda,omitempty"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
}

// RegistrationStatus is the lifecycle state of an event registration.
type RegistrationStatus string

const (
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

// Registration records one attendee signup for an event. TicketID is the
// human-facing ticket reference carried in the confirmation email.
type Registration struct {
	ID        string             `json:"id" bson:"_id,omitempty"`
	EventID   string             `json:"event_id" bson:"event_id"`
	UserID    string             `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	TicketID  string             `json:"ticket_id" bson:"ticket_id"`
	Status    RegistrationStatus `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
