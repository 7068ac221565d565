package service

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"review-lifecycle-api/internal/common"
	"review-lifecycle-api/internal/entity"

	"github.com/google/uuid"
)

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.UTC().Format(time.RFC3339)
}

// mapAuthor never fails: a missing or nameless profile becomes the
// anonymous placeholder.
func mapAuthor(p *entity.Profile) entity.ReviewAuthor {
	author := entity.ReviewAuthor{
		DisplayName: common.AnonymousDisplayName,
		AvatarGlyph: common.AnonymousAvatarGlyph,
	}
	if p == nil {
		return author
	}

	if p.AvatarUrl != nil {
		author.AvatarUrl = *p.AvatarUrl
	}
	if p.DisplayName != nil {
		if name := strings.TrimSpace(*p.DisplayName); name != "" {
			first, _ := utf8.DecodeRuneInString(name)
			author.DisplayName = name
			author.AvatarGlyph = string(unicode.ToUpper(first))
		}
	}

	return author
}

func mapReview(r entity.Review, author entity.ReviewAuthor) entity.ReviewOutputModel {
	out := entity.ReviewOutputModel{
		Id:          r.Id.String(),
		SubjectId:   r.SubjectId,
		Rating:      r.Rating,
		Content:     r.Content,
		Status:      string(r.Status),
		Pending:     r.Status == entity.ReviewPending,
		CreatedAt:   formatTime(&r.CreatedAt),
		RespondedAt: formatTime(r.RespondedAt),
		Author:      author,
	}
	if r.Title != nil {
		out.Title = *r.Title
	}

	return out
}

func mapReviews(reviews []entity.Review, profiles map[uuid.UUID]entity.Profile) []entity.ReviewOutputModel {
	s := make([]entity.ReviewOutputModel, 0, len(reviews))
	for _, r := range reviews {
		var profile *entity.Profile
		if p, ok := profiles[r.AuthorId]; ok {
			profile = &p
		}
		s = append(s, mapReview(r, mapAuthor(profile)))
	}

	return s
}

func mapContact(c *entity.ContactSubmission) *entity.ContactOutputModel {
	return &entity.ContactOutputModel{
		Id:          c.Id.String(),
		Name:        c.Name,
		Email:       c.Email,
		Topic:       c.Topic,
		Message:     c.Message,
		Status:      string(c.Status),
		CreatedAt:   formatTime(&c.CreatedAt),
		RespondedAt: formatTime(c.RespondedAt),
	}
}

func mapContacts(submissions []entity.ContactSubmission) []entity.ContactOutputModel {
	s := make([]entity.ContactOutputModel, 0, len(submissions))
	for _, c := range submissions {
		s = append(s, *mapContact(&c))
	}

	return s
}
