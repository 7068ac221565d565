package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"review-lifecycle-api/internal/common"
	"review-lifecycle-api/internal/entity"
	"review-lifecycle-api/internal/repo"
	"review-lifecycle-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

type statusWriter[S ~string] func(ctx context.Context, id uuid.UUID, status S, respondedAt *time.Time) error

// ModerationGate applies status changes to one kind of moderated entity.
// Only admins may use it, and the role is looked up on every call. The write
// is unconditional: the current status of the entity is not consulted, so
// any allowed status may replace any other, including a return to the
// initial one.
type ModerationGate[S ~string] struct {
	identity repo.Identity
	initial  S
	allowed  map[S]struct{}
	notFound error
	write    statusWriter[S]
	now      func() time.Time
}

func NewModerationGate[S ~string](identity repo.Identity, initial S, allowed []S, notFound error, write statusWriter[S]) *ModerationGate[S] {
	set := make(map[S]struct{}, len(allowed))
	for _, status := range allowed {
		set[status] = struct{}{}
	}

	return &ModerationGate[S]{
		identity: identity,
		initial:  initial,
		allowed:  set,
		notFound: notFound,
		write:    write,
		now:      time.Now,
	}
}

// Authorize fails with ErrUnauthenticated without a session and with
// ErrForbidden when the session user is not an admin.
func (g *ModerationGate[S]) Authorize(ctx context.Context, session *entity.Session) error {
	if session == nil {
		return ErrUnauthenticated
	}

	isAdmin, err := g.identity.HasRole(ctx, session.UserId, common.AdminRole)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if !isAdmin {
		return ErrForbidden
	}

	return nil
}

// CheckStatus fails with ErrInvalidStatus for a status outside the allowed set.
func (g *ModerationGate[S]) CheckStatus(status S) error {
	if _, ok := g.allowed[status]; !ok {
		return ErrInvalidStatus
	}

	return nil
}

func (g *ModerationGate[S]) SetStatus(ctx context.Context, id uuid.UUID, status S, session *entity.Session) error {
	if err := g.Authorize(ctx, session); err != nil {
		return err
	}

	if err := g.CheckStatus(status); err != nil {
		return err
	}

	// moderation timestamp, cleared when an entity is put back to its initial status
	var respondedAt *time.Time
	if status != g.initial {
		at := g.now().UTC()
		respondedAt = &at
	}

	if err := g.write(ctx, id, status, respondedAt); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return g.notFound
		}

		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return nil
}
