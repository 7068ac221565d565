package pgdb

import (
	"context"
	"database/sql"
	"errors"

	"review-lifecycle-api/internal/entity"
	"review-lifecycle-api/internal/repo/repo_errors"
	"review-lifecycle-api/pkg/postgres"

	"github.com/google/uuid"
)

// IdentityRepo reads the user and role tables the hosted auth service keeps
// in sync with its accounts.
type IdentityRepo struct {
	*postgres.Postgres
}

func NewIdentityRepo(pgdb *postgres.Postgres) *IdentityRepo {
	return &IdentityRepo{pgdb}
}

func (r *IdentityRepo) GetUserById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	sqlReq, args, err := r.SqlBuilder.
		Select("id", "email", "email_verified").
		From("app_user").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, err
	}

	var user entity.User
	err = r.Database.QueryRowContext(ctx, sqlReq, args...).Scan(&user.Id, &user.Email, &user.EmailVerified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &user, nil
}

func (r *IdentityRepo) HasRole(ctx context.Context, userId uuid.UUID, role string) (bool, error) {
	sqlReq, args, err := r.SqlBuilder.
		Select("user_id").
		From("user_role").
		Where("user_id = ?", userId).
		Where("role = ?", role).
		Limit(1).
		ToSql()
	if err != nil {
		return false, err
	}

	var id uuid.UUID
	err = r.Database.QueryRowContext(ctx, sqlReq, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
