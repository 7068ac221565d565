package repo

import (
	"context"
	"time"

	"review-lifecycle-api/internal/entity"
	"review-lifecycle-api/internal/repo/cache"
	"review-lifecycle-api/internal/repo/pgdb"
	"review-lifecycle-api/pkg/postgres"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Diagnostics interface {
	Ping() error
}

type Identity interface {
	GetUserById(ctx context.Context, id uuid.UUID) (*entity.User, error)
	HasRole(ctx context.Context, userId uuid.UUID, role string) (bool, error)
}

type Profile interface {
	GetProfiles(ctx context.Context, userIds []uuid.UUID) (map[uuid.UUID]entity.Profile, error)
}

type Review interface {
	CreateReview(ctx context.Context, input *entity.CreateReviewInput) (uuid.UUID, error)
	GetReviewById(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	GetSubjectReviewsByStatus(ctx context.Context, subjectId string, status entity.ReviewStatus) ([]entity.Review, error)
	GetAuthorSubjectReviewsByStatus(ctx context.Context, subjectId string, authorId uuid.UUID, status entity.ReviewStatus) ([]entity.Review, error)
	GetReviewsByStatus(ctx context.Context, status entity.ReviewStatus, pg *entity.PaginationInput) ([]entity.Review, error)
	UpdateReviewStatusById(ctx context.Context, id uuid.UUID, status entity.ReviewStatus, respondedAt *time.Time) (string, error)
	GetSubjectRatingSummary(ctx context.Context, subjectId string) (*entity.RatingSummary, error)
}

type Contact interface {
	CreateContactSubmission(ctx context.Context, input *entity.CreateContactInput) (*entity.ContactSubmission, error)
	GetContactSubmissionsByStatus(ctx context.Context, status entity.ContactStatus, pg *entity.PaginationInput) ([]entity.ContactSubmission, error)
	UpdateContactStatusById(ctx context.Context, id uuid.UUID, status entity.ContactStatus, respondedAt *time.Time) error
}

type ReviewCache interface {
	GetApproved(ctx context.Context, subjectId string) ([]entity.Review, bool, error)
	Generation(ctx context.Context, subjectId string) (int64, error)
	SetApproved(ctx context.Context, subjectId string, generation int64, reviews []entity.Review) error
	Invalidate(ctx context.Context, subjectId string) error
}

type ReviewNotifier interface {
	PublishReviewUpdate(ctx context.Context, subjectId string) error
	SubscribeReviewUpdates(ctx context.Context, subjectId string) (<-chan struct{}, func())
}

type Repositories struct {
	Diagnostics
	Identity
	Profile
	Review
	Contact
	ReviewCache
	ReviewNotifier
}

func NewRepositories(p *postgres.Postgres, rdb *redis.Client, cacheTTL time.Duration) *Repositories {
	return &Repositories{
		Diagnostics:    pgdb.NewDiagnosticsRepo(p),
		Identity:       pgdb.NewIdentityRepo(p),
		Profile:        pgdb.NewProfileRepo(p),
		Review:         pgdb.NewReviewRepo(p),
		Contact:        pgdb.NewContactRepo(p),
		ReviewCache:    cache.NewReviewCache(rdb, cacheTTL),
		ReviewNotifier: cache.NewReviewNotifier(rdb),
	}
}
