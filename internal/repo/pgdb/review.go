package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"review-lifecycle-api/internal/entity"
	"review-lifecycle-api/internal/repo/repo_errors"
	"review-lifecycle-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var reviewColumns = []string{
	"id", "subject_id", "author_id", "rating", "title", "content", "status", "created_at", "responded_at",
}

type ReviewRepo struct {
	*postgres.Postgres
}

func NewReviewRepo(pgdb *postgres.Postgres) *ReviewRepo {
	return &ReviewRepo{pgdb}
}

func (r *ReviewRepo) CreateReview(ctx context.Context, input *entity.CreateReviewInput) (uuid.UUID, error) {
	createReviewReq, args, err := r.SqlBuilder.
		Insert("review").
		Columns("subject_id", "author_id", "rating", "title", "content", "status").
		Values(input.SubjectId, input.AuthorId, input.Rating, input.Title, input.Content, entity.ReviewPending).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, err
	}

	var reviewId uuid.UUID
	if err = r.Database.QueryRowContext(ctx, createReviewReq, args...).Scan(&reviewId); err != nil {
		return uuid.Nil, err
	}

	return reviewId, nil
}

func (r *ReviewRepo) GetReviewById(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	getReviewReq, args, err := r.SqlBuilder.
		Select(reviewColumns...).
		From("review").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, err
	}

	review, err := scanReview(r.Database.QueryRowContext(ctx, getReviewReq, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return review, nil
}

func (r *ReviewRepo) GetSubjectReviewsByStatus(ctx context.Context, subjectId string, status entity.ReviewStatus) ([]entity.Review, error) {
	q := r.SqlBuilder.
		Select(reviewColumns...).
		From("review").
		Where("subject_id = ?", subjectId).
		Where("status = ?", status).
		OrderBy("created_at DESC")

	return r.queryReviews(ctx, q)
}

func (r *ReviewRepo) GetAuthorSubjectReviewsByStatus(ctx context.Context, subjectId string, authorId uuid.UUID, status entity.ReviewStatus) ([]entity.Review, error) {
	q := r.SqlBuilder.
		Select(reviewColumns...).
		From("review").
		Where("subject_id = ?", subjectId).
		Where("author_id = ?", authorId).
		Where("status = ?", status).
		OrderBy("created_at DESC")

	return r.queryReviews(ctx, q)
}

// GetReviewsByStatus lists reviews across subjects, oldest first, so the
// moderation queue is worked through in submission order.
func (r *ReviewRepo) GetReviewsByStatus(ctx context.Context, status entity.ReviewStatus, pg *entity.PaginationInput) ([]entity.Review, error) {
	q := r.SqlBuilder.
		Select(reviewColumns...).
		From("review").
		Where("status = ?", status).
		OrderBy("created_at ASC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit))

	return r.queryReviews(ctx, q)
}

// UpdateReviewStatusById overwrites the status whatever it was before and
// returns the subject of the review. responded_at is kept when the status
// does not change, so repeating a decision leaves the row as it was.
func (r *ReviewRepo) UpdateReviewStatusById(ctx context.Context, id uuid.UUID, status entity.ReviewStatus, respondedAt *time.Time) (string, error) {
	updateStatusReq, args, err := r.SqlBuilder.
		Update("review").
		Set("responded_at", squirrel.Expr("CASE WHEN status = ? THEN responded_at ELSE ? END", status, respondedAt)).
		Set("status", status).
		Where("id = ?", id).
		Suffix("RETURNING subject_id").
		ToSql()
	if err != nil {
		return "", err
	}

	var subjectId string
	if err = r.Database.QueryRowContext(ctx, updateStatusReq, args...).Scan(&subjectId); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repo_errors.ErrNotFound
		}

		return "", err
	}

	return subjectId, nil
}

func (r *ReviewRepo) GetSubjectRatingSummary(ctx context.Context, subjectId string) (*entity.RatingSummary, error) {
	summaryReq, args, err := r.SqlBuilder.
		Select("COALESCE(AVG(rating), 0)", "COUNT(*)").
		From("review").
		Where("subject_id = ?", subjectId).
		Where("status = ?", entity.ReviewApproved).
		ToSql()
	if err != nil {
		return nil, err
	}

	summary := entity.RatingSummary{SubjectId: subjectId}
	if err = r.Database.QueryRowContext(ctx, summaryReq, args...).Scan(&summary.Average, &summary.Count); err != nil {
		return nil, err
	}

	return &summary, nil
}

func (r *ReviewRepo) queryReviews(ctx context.Context, q squirrel.SelectBuilder) ([]entity.Review, error) {
	sqlReq, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]entity.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return reviews, err
		}
		reviews = append(reviews, *review)
	}
	if err = rows.Err(); err != nil {
		return reviews, err
	}

	return reviews, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (*entity.Review, error) {
	var review entity.Review
	var title sql.NullString
	var respondedAt sql.NullTime
	err := row.Scan(&review.Id, &review.SubjectId, &review.AuthorId, &review.Rating, &title,
		&review.Content, &review.Status, &review.CreatedAt, &respondedAt)
	if err != nil {
		return nil, err
	}

	if title.Valid {
		review.Title = &title.String
	}
	if respondedAt.Valid {
		review.RespondedAt = &respondedAt.Time
	}

	return &review, nil
}
