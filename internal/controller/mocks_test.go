package controller

import (
	"context"

	"review-lifecycle-api/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockDiagnostics struct {
	mock.Mock
}

func (m *MockDiagnostics) Ping() error {
	return m.Called().Error(0)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) SubmitReview(ctx context.Context, session *entity.Session, input *entity.CreateReviewInput) (uuid.UUID, error) {
	args := m.Called(ctx, session, input)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockReviewService) ListVisibleReviews(ctx context.Context, subjectId string, session *entity.Session) []entity.ReviewOutputModel {
	args := m.Called(ctx, subjectId, session)
	return args.Get(0).([]entity.ReviewOutputModel)
}

func (m *MockReviewService) FollowVisibleReviews(ctx context.Context, subjectId string, session *entity.Session, authChanges <-chan *entity.Session, updates <-chan struct{}) <-chan []entity.ReviewOutputModel {
	args := m.Called(ctx, subjectId, session, authChanges, updates)
	return args.Get(0).(<-chan []entity.ReviewOutputModel)
}

func (m *MockReviewService) SubscribeReviewUpdates(ctx context.Context, subjectId string) (<-chan struct{}, func()) {
	args := m.Called(ctx, subjectId)
	return args.Get(0).(<-chan struct{}), args.Get(1).(func())
}

func (m *MockReviewService) GetRatingSummary(ctx context.Context, subjectId string) *entity.RatingSummary {
	args := m.Called(ctx, subjectId)
	return args.Get(0).(*entity.RatingSummary)
}

func (m *MockReviewService) SetReviewStatus(ctx context.Context, reviewId uuid.UUID, status entity.ReviewStatus, session *entity.Session) error {
	return m.Called(ctx, reviewId, status, session).Error(0)
}

func (m *MockReviewService) GetModerationQueue(ctx context.Context, status entity.ReviewStatus, pg *entity.PaginationInput, session *entity.Session) ([]entity.ReviewOutputModel, error) {
	args := m.Called(ctx, status, pg, session)
	reviews, _ := args.Get(0).([]entity.ReviewOutputModel)
	return reviews, args.Error(1)
}

func (m *MockReviewService) GetReview(ctx context.Context, reviewId uuid.UUID, session *entity.Session) (*entity.ReviewOutputModel, error) {
	args := m.Called(ctx, reviewId, session)
	review, _ := args.Get(0).(*entity.ReviewOutputModel)
	return review, args.Error(1)
}

type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) CreateContactSubmission(ctx context.Context, input *entity.CreateContactInput) (*entity.ContactOutputModel, error) {
	args := m.Called(ctx, input)
	submission, _ := args.Get(0).(*entity.ContactOutputModel)
	return submission, args.Error(1)
}

func (m *MockContactService) SetContactStatus(ctx context.Context, id uuid.UUID, status entity.ContactStatus, session *entity.Session) error {
	return m.Called(ctx, id, status, session).Error(0)
}

func (m *MockContactService) GetContactSubmissions(ctx context.Context, status entity.ContactStatus, pg *entity.PaginationInput, session *entity.Session) ([]entity.ContactOutputModel, error) {
	args := m.Called(ctx, status, pg, session)
	submissions, _ := args.Get(0).([]entity.ContactOutputModel)
	return submissions, args.Error(1)
}
