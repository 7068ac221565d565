package service

import (
	"context"

	"review-lifecycle-api/internal/entity"
	"review-lifecycle-api/internal/repo"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type Review interface {
	SubmitReview(ctx context.Context, session *entity.Session, input *entity.CreateReviewInput) (uuid.UUID, error)

	ListVisibleReviews(ctx context.Context, subjectId string, session *entity.Session) []entity.ReviewOutputModel
	FollowVisibleReviews(ctx context.Context, subjectId string, session *entity.Session, authChanges <-chan *entity.Session, updates <-chan struct{}) <-chan []entity.ReviewOutputModel
	SubscribeReviewUpdates(ctx context.Context, subjectId string) (<-chan struct{}, func())
	GetRatingSummary(ctx context.Context, subjectId string) *entity.RatingSummary

	SetReviewStatus(ctx context.Context, reviewId uuid.UUID, status entity.ReviewStatus, session *entity.Session) error
	GetModerationQueue(ctx context.Context, status entity.ReviewStatus, pg *entity.PaginationInput, session *entity.Session) ([]entity.ReviewOutputModel, error)
	GetReview(ctx context.Context, reviewId uuid.UUID, session *entity.Session) (*entity.ReviewOutputModel, error)
}

type Contact interface {
	CreateContactSubmission(ctx context.Context, input *entity.CreateContactInput) (*entity.ContactOutputModel, error)

	SetContactStatus(ctx context.Context, id uuid.UUID, status entity.ContactStatus, session *entity.Session) error
	GetContactSubmissions(ctx context.Context, status entity.ContactStatus, pg *entity.PaginationInput, session *entity.Session) ([]entity.ContactOutputModel, error)
}

type Services struct {
	Diagnostics Diagnostics
	Review      Review
	Contact     Contact
}

func NewServices(repos *repo.Repositories) *Services {
	return &Services{
		Review:      NewReviewService(repos),
		Contact:     NewContactService(repos),
		Diagnostics: NewDiagnosticsService(repos),
	}
}
