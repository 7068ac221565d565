package pgdb

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"review-lifecycle-api/internal/entity"
	"review-lifecycle-api/internal/repo/repo_errors"
	"review-lifecycle-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type ContactRepo struct {
	*postgres.Postgres
}

func NewContactRepo(pgdb *postgres.Postgres) *ContactRepo {
	return &ContactRepo{pgdb}
}

var contactColumns = []string{"id", "name", "email", "topic", "message", "status", "created_at", "responded_at"}

func scanContact(row rowScanner) (*entity.ContactSubmission, error) {
	var s entity.ContactSubmission
	var respondedAt sql.NullTime
	if err := row.Scan(&s.Id, &s.Name, &s.Email, &s.Topic, &s.Message, &s.Status, &s.CreatedAt, &respondedAt); err != nil {
		return nil, err
	}
	if respondedAt.Valid {
		s.RespondedAt = &respondedAt.Time
	}

	return &s, nil
}

// CreateContactSubmission returns the stored row, defaults included.
func (r *ContactRepo) CreateContactSubmission(ctx context.Context, input *entity.CreateContactInput) (*entity.ContactSubmission, error) {
	createReq, args, err := r.SqlBuilder.
		Insert("contact_submission").
		Columns("name", "email", "topic", "message", "status").
		Values(input.Name, input.Email, input.Topic, input.Message, entity.ContactNew).
		Suffix("RETURNING " + strings.Join(contactColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	return scanContact(r.Database.QueryRowContext(ctx, createReq, args...))
}

func (r *ContactRepo) GetContactSubmissionsByStatus(ctx context.Context, status entity.ContactStatus, pg *entity.PaginationInput) ([]entity.ContactSubmission, error) {
	listReq, args, err := r.SqlBuilder.
		Select(contactColumns...).
		From("contact_submission").
		Where("status = ?", status).
		OrderBy("created_at ASC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.Database.QueryContext(ctx, listReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := make([]entity.ContactSubmission, 0)
	for rows.Next() {
		s, err := scanContact(rows)
		if err != nil {
			return submissions, err
		}
		submissions = append(submissions, *s)
	}
	if err = rows.Err(); err != nil {
		return submissions, err
	}

	return submissions, nil
}

func (r *ContactRepo) UpdateContactStatusById(ctx context.Context, id uuid.UUID, status entity.ContactStatus, respondedAt *time.Time) error {
	updateReq, args, err := r.SqlBuilder.
		Update("contact_submission").
		Set("responded_at", squirrel.Expr("CASE WHEN status = ? THEN responded_at ELSE ? END", status, respondedAt)).
		Set("status", status).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.Database.ExecContext(ctx, updateReq, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}
