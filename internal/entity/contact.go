package entity

import (
	"time"

	"github.com/google/uuid"
)

type ContactStatus string

const (
	ContactNew        ContactStatus = "new"
	ContactInProgress ContactStatus = "in_progress"
	ContactResponded  ContactStatus = "responded"
)

// db model
type ContactSubmission struct {
	Id          uuid.UUID     `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Email       string        `json:"email" db:"email"`
	Topic       string        `json:"topic" db:"topic"`
	Message     string        `json:"message" db:"message"`
	Status      ContactStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	RespondedAt *time.Time    `json:"respondedAt,omitempty" db:"responded_at"`
}

type CreateContactInput struct {
	Name    string
	Email   string
	Topic   string
	Message string
}

type ContactOutputModel struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Topic       string `json:"topic"`
	Message     string `json:"message"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	RespondedAt string `json:"respondedAt,omitempty"`
}
