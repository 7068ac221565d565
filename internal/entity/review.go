package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	// Not set by any public flow; admins may set it through the moderation endpoints.
	ReviewRejected ReviewStatus = "rejected"
)

// db model
type Review struct {
	Id          uuid.UUID    `json:"id" db:"id"`
	SubjectId   string       `json:"subjectId" db:"subject_id"`
	AuthorId    uuid.UUID    `json:"authorId" db:"author_id"`
	Rating      int          `json:"rating" db:"rating"`
	Title       *string      `json:"title,omitempty" db:"title"`
	Content     string       `json:"content" db:"content"`
	Status      ReviewStatus `json:"status" db:"status"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	RespondedAt *time.Time   `json:"respondedAt,omitempty" db:"responded_at"`
}

// service + repo input model
type CreateReviewInput struct {
	SubjectId string    // given
	AuthorId  uuid.UUID // taken from the session
	Rating    int       // given
	Title     *string   // given, optional
	Content   string    // given
	// Status is always "pending" on insert
	// Id and CreatedAt set automatically
}

type ReviewAuthor struct {
	DisplayName string `json:"displayName"`
	AvatarUrl   string `json:"avatarUrl,omitempty"`
	AvatarGlyph string `json:"avatarGlyph"`
}

// controller model
type ReviewOutputModel struct {
	Id          string       `json:"id"`
	SubjectId   string       `json:"subjectId"`
	Rating      int          `json:"rating"`
	Title       string       `json:"title,omitempty"`
	Content     string       `json:"content"`
	Status      string       `json:"status"`
	Pending     bool         `json:"pending"`
	CreatedAt   string       `json:"createdAt"`
	RespondedAt string       `json:"respondedAt,omitempty"`
	Author      ReviewAuthor `json:"author"`
}

type RatingSummary struct {
	SubjectId string  `json:"subjectId"`
	Average   float64 `json:"average"`
	Count     int     `json:"count"`
}
