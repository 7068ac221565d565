package service

import (
	"context"
	"errors"
	"fmt"

	"review-lifecycle-api/internal/entity"
	"review-lifecycle-api/internal/repo"
	"review-lifecycle-api/internal/repo/repo_errors"
)

// currentUser re-reads the session user from the identity store. It returns
// nil without an error when there is no session or the account is gone.
func currentUser(ctx context.Context, identity repo.Identity, session *entity.Session) (*entity.User, error) {
	if session == nil {
		return nil, nil
	}

	user, err := identity.GetUserById(ctx, session.UserId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return user, nil
}

// requireVerifiedUser is the precondition for anything a visitor writes
// under their own name.
func requireVerifiedUser(ctx context.Context, identity repo.Identity, session *entity.Session) (*entity.User, error) {
	user, err := currentUser(ctx, identity, session)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	if !user.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	return user, nil
}
