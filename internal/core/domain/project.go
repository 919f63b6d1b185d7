package domain

import (
	"errors"
	"time"
)

var ErrProjectNotFound = errors.New("project not found")
var ErrSubmissionNotFound = errors.New("submission not found")
var ErrSubmissionReviewed = errors.New("submission already reviewed")

// SubmissionStatus is the review state of a submitted project.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Project is an approved entry in the public showcase.
type Project struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	Title           string    `json:"title" bson:"title"`
	Description     string    `json:"description" bson:"description"`
	LongDescription string    `json:"long_description,omitempty" bson:"long_description,omitempty"`
	Image           string    `json:"image,omitempty" bson:"image,omitempty"`
	Tags            []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	GitHub          string    `json:"github,omitempty" bson:"github,omitempty"`
	Demo            string    `json:"demo,omitempty" bson:"demo,omitempty"`
	Contributors    []string  `json:"contributors,omitempty" bson:"contributors,omitempty"`
	Technologies    []string  `json:"technologies,omitempty" bson:"technologies,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
}

// PendingProject is a project submission awaiting admin review.
type PendingProject struct {
	ID              string           `json:"id" bson:"_id,omitempty"`
	Title           string           `json:"title" bson:"title"`
	Description     string           `json:"description" bson:"description"`
	LongDescription string           `json:"long_description,omitempty" bson:"long_description,omitempty"`
	Image           string           `json:"image,omitempty" bson:"image,omitempty"`
	Tags            []string         `json:"tags,omitempty" bson:"tags,omitempty"`
	GitHub          string           `json:"github,omitempty" bson:"github,omitempty"`
	Demo            string           `json:"demo,omitempty" bson:"demo,omitempty"`
	Contributors    []string         `json:"contributors,omitempty" bson:"contributors,omitempty"`
	Technologies    []string         `json:"technologies,omitempty" bson:"technologies,omitempty"`
	SubmitterName   string           `json:"submitter_name" bson:"submitter_name"`
	SubmitterEmail  string           `json:"submitter_email" bson:"submitter_email"`
	Status          SubmissionStatus `json:"status" bson:"status"`
	AdminFeedback   string           `json:"admin_feedback,omitempty" bson:"admin_feedback,omitempty"`
	SubmittedAt     time.Time        `json:"submitted_at" bson:"submitted_at"`
}

// Approved converts a reviewed submission into a showcase project.
func (p *PendingProject) Approved(now time.Time) *Project {
	return &Project{
		Title:           p.Title,
		Description:     p.Description,
		LongDescription: p.LongDescription,
		Image:           p.Image,
		Tags:            p.Tags,
		GitHub:          p.GitHub,
		Demo:            p.Demo,
		Contributors:    p.Contributors,
		Technologies:    p.Technologies,
		CreatedAt:       now,
	}
}
