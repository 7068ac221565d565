package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"review-lifecycle-api/internal/entity"
	"review-lifecycle-api/internal/repo"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ContactService handles the public contact form and its triage by admins.
type ContactService struct {
	contactRepo repo.Contact
	gate        *ModerationGate[entity.ContactStatus]
}

func NewContactService(repos *repo.Repositories) *ContactService {
	s := &ContactService{contactRepo: repos.Contact}
	s.gate = NewModerationGate[entity.ContactStatus](
		repos.Identity,
		entity.ContactNew,
		[]entity.ContactStatus{entity.ContactNew, entity.ContactInProgress, entity.ContactResponded},
		ErrContactNotFound,
		s.writeStatus,
	)

	return s
}

func (s *ContactService) CreateContactSubmission(ctx context.Context, input *entity.CreateContactInput) (*entity.ContactOutputModel, error) {
	clean := &entity.CreateContactInput{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Topic:   strings.TrimSpace(input.Topic),
		Message: strings.TrimSpace(input.Message),
	}
	if clean.Name == "" || clean.Email == "" || clean.Message == "" {
		return nil, ErrContactIncomplete
	}

	submission, err := s.contactRepo.CreateContactSubmission(ctx, clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	log.WithFields(log.Fields{"submission_id": submission.Id, "topic": clean.Topic}).Info("contact submission received")

	return mapContact(submission), nil
}

func (s *ContactService) SetContactStatus(ctx context.Context, id uuid.UUID, status entity.ContactStatus, session *entity.Session) error {
	if err := s.gate.SetStatus(ctx, id, status, session); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"submission_id": id,
		"status":        status,
		"actor_id":      session.UserId,
	}).Info("contact submission status updated")

	return nil
}

func (s *ContactService) writeStatus(ctx context.Context, id uuid.UUID, status entity.ContactStatus, respondedAt *time.Time) error {
	return s.contactRepo.UpdateContactStatusById(ctx, id, status, respondedAt)
}

func (s *ContactService) GetContactSubmissions(ctx context.Context, status entity.ContactStatus, pg *entity.PaginationInput, session *entity.Session) ([]entity.ContactOutputModel, error) {
	if err := s.gate.Authorize(ctx, session); err != nil {
		return nil, err
	}
	if err := s.gate.CheckStatus(status); err != nil {
		return nil, err
	}

	submissions, err := s.contactRepo.GetContactSubmissionsByStatus(ctx, status, pg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return mapContacts(submissions), nil
}
