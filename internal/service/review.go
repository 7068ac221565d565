package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"review-lifecycle-api/internal/common"
	"review-lifecycle-api/internal/entity"
	"review-lifecycle-api/internal/repo"
	"review-lifecycle-api/internal/repo/repo_errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const submitTimeout = 10 * time.Second

type ReviewService struct {
	reviewRepo   repo.Review
	identityRepo repo.Identity
	profileRepo  repo.Profile
	reviewCache  repo.ReviewCache
	notifier     repo.ReviewNotifier

	gate     *ModerationGate[entity.ReviewStatus]
	inFlight singleflight.Group
}

func NewReviewService(repos *repo.Repositories) *ReviewService {
	s := &ReviewService{
		reviewRepo:   repos.Review,
		identityRepo: repos.Identity,
		profileRepo:  repos.Profile,
		reviewCache:  repos.ReviewCache,
		notifier:     repos.ReviewNotifier,
	}
	s.gate = NewModerationGate[entity.ReviewStatus](
		repos.Identity,
		entity.ReviewPending,
		[]entity.ReviewStatus{entity.ReviewPending, entity.ReviewApproved, entity.ReviewRejected},
		ErrReviewNotFound,
		s.writeStatus,
	)

	return s
}

// SubmitReview stores a new pending review written by the session user.
// Checks run in a fixed order: session, verified email, rating, content
// length, title length. Identical submissions that arrive while one is still
// being stored share its result instead of creating a second review.
func (s *ReviewService) SubmitReview(ctx context.Context, session *entity.Session, input *entity.CreateReviewInput) (uuid.UUID, error) {
	user, err := requireVerifiedUser(ctx, s.identityRepo, session)
	if err != nil {
		return uuid.Nil, err
	}

	review, err := normalizeReviewInput(input)
	if err != nil {
		return uuid.Nil, err
	}
	review.AuthorId = user.Id

	// the shared insert is not tied to the caller that happened to start it
	inserted := s.inFlight.DoChan(submissionKey(review), func() (any, error) {
		insertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), submitTimeout)
		defer cancel()

		return s.reviewRepo.CreateReview(insertCtx, review)
	})

	var result singleflight.Result
	select {
	case <-ctx.Done():
		return uuid.Nil, ctx.Err()
	case result = <-inserted:
	}

	id, err, shared := result.Val, result.Err, result.Shared
	if err != nil {
		log.WithError(err).WithField("subject_id", review.SubjectId).Error("failed to store review")
		return uuid.Nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	log.WithFields(log.Fields{
		"review_id":  id,
		"subject_id": review.SubjectId,
		"author_id":  review.AuthorId,
		"shared":     shared,
	}).Info("review submitted for moderation")

	return id.(uuid.UUID), nil
}

func normalizeReviewInput(input *entity.CreateReviewInput) (*entity.CreateReviewInput, error) {
	subjectId := strings.TrimSpace(input.SubjectId)
	if subjectId == "" {
		return nil, ErrSubjectRequired
	}

	if input.Rating < common.MinReviewRating || input.Rating > common.MaxReviewRating {
		return nil, ErrInvalidRating
	}

	content := strings.TrimSpace(input.Content)
	if utf8.RuneCountInString(content) < common.MinReviewContentLength {
		return nil, ErrContentTooShort
	}

	var title *string
	if input.Title != nil {
		if t := strings.TrimSpace(*input.Title); t != "" {
			if utf8.RuneCountInString(t) > common.MaxReviewTitleLength {
				return nil, ErrTitleTooLong
			}
			title = &t
		}
	}

	return &entity.CreateReviewInput{
		SubjectId: subjectId,
		Rating:    input.Rating,
		Title:     title,
		Content:   content,
	}, nil
}

func submissionKey(r *entity.CreateReviewInput) string {
	title := ""
	if r.Title != nil {
		title = *r.Title
	}

	return strings.Join([]string{r.AuthorId.String(), r.SubjectId, strconv.Itoa(r.Rating), title, r.Content}, "\x00")
}

// ListVisibleReviews returns what the viewer may see for a subject: the
// viewer's own pending reviews first, then every approved review, each group
// newest first. A nil session sees approved reviews only. Store failures are
// logged and degrade to fewer (or no) reviews, never to an error.
func (s *ReviewService) ListVisibleReviews(ctx context.Context, subjectId string, session *entity.Session) []entity.ReviewOutputModel {
	var (
		wg       sync.WaitGroup
		approved []entity.Review
		pending  []entity.Review
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		approved = s.approvedReviews(ctx, subjectId)
	}()

	if session != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			pending, err = s.reviewRepo.GetAuthorSubjectReviewsByStatus(ctx, subjectId, session.UserId, entity.ReviewPending)
			if err != nil {
				log.WithError(err).WithFields(log.Fields{
					"subject_id": subjectId,
					"viewer_id":  session.UserId,
				}).Warn("failed to load viewer's pending reviews")
				pending = nil
			}
		}()
	}

	wg.Wait()

	reviews := make([]entity.Review, 0, len(pending)+len(approved))
	reviews = append(reviews, pending...)
	reviews = append(reviews, approved...)

	return mapReviews(reviews, s.profilesFor(ctx, reviews))
}

func (s *ReviewService) approvedReviews(ctx context.Context, subjectId string) []entity.Review {
	logger := log.WithField("subject_id", subjectId)

	cached, ok, err := s.reviewCache.GetApproved(ctx, subjectId)
	if err != nil {
		logger.WithError(err).Warn("review cache unavailable, reading from store")
	} else if ok {
		return cached
	}

	// read before the store so a concurrent invalidation voids this fill
	generation, genErr := s.reviewCache.Generation(ctx, subjectId)

	reviews, err := s.reviewRepo.GetSubjectReviewsByStatus(ctx, subjectId, entity.ReviewApproved)
	if err != nil {
		logger.WithError(err).Warn("failed to load approved reviews")
		return nil
	}

	if genErr != nil {
		logger.WithError(genErr).Debug("review cache unavailable, not caching approved reviews")
		return reviews
	}
	if err := s.reviewCache.SetApproved(ctx, subjectId, generation, reviews); err != nil {
		logger.WithError(err).Debug("failed to cache approved reviews")
	}

	return reviews
}

// profilesFor looks up the authors of the given reviews in one call. A failed
// lookup leaves every author anonymous.
func (s *ReviewService) profilesFor(ctx context.Context, reviews []entity.Review) map[uuid.UUID]entity.Profile {
	if len(reviews) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]struct{}, len(reviews))
	ids := make([]uuid.UUID, 0, len(reviews))
	for _, r := range reviews {
		if _, ok := seen[r.AuthorId]; ok {
			continue
		}
		seen[r.AuthorId] = struct{}{}
		ids = append(ids, r.AuthorId)
	}

	profiles, err := s.profileRepo.GetProfiles(ctx, ids)
	if err != nil {
		log.WithError(err).Warn("failed to load reviewer profiles")
		return nil
	}

	return profiles
}

// SetReviewStatus lets an admin put a review into any status. On success the
// cached public list of the subject is dropped and listeners are notified.
func (s *ReviewService) SetReviewStatus(ctx context.Context, reviewId uuid.UUID, status entity.ReviewStatus, session *entity.Session) error {
	if err := s.gate.SetStatus(ctx, reviewId, status, session); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"review_id": reviewId,
		"status":    status,
		"actor_id":  session.UserId,
	}).Info("review status updated")

	return nil
}

func (s *ReviewService) writeStatus(ctx context.Context, id uuid.UUID, status entity.ReviewStatus, respondedAt *time.Time) error {
	subjectId, err := s.reviewRepo.UpdateReviewStatusById(ctx, id, status, respondedAt)
	if err != nil {
		return err
	}

	logger := log.WithFields(log.Fields{"subject_id": subjectId, "review_id": id})
	// entries also expire on their own, a failed invalidation only delays visibility
	if err := s.reviewCache.Invalidate(ctx, subjectId); err != nil {
		logger.WithError(err).Warn("failed to invalidate cached reviews")
	}
	if err := s.notifier.PublishReviewUpdate(ctx, subjectId); err != nil {
		logger.WithError(err).Warn("failed to publish review update")
	}

	return nil
}

// GetModerationQueue lists reviews in the given status for the back office.
func (s *ReviewService) GetModerationQueue(ctx context.Context, status entity.ReviewStatus, pg *entity.PaginationInput, session *entity.Session) ([]entity.ReviewOutputModel, error) {
	if err := s.gate.Authorize(ctx, session); err != nil {
		return nil, err
	}
	if err := s.gate.CheckStatus(status); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.GetReviewsByStatus(ctx, status, pg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return mapReviews(reviews, s.profilesFor(ctx, reviews)), nil
}

// GetReview shows a single review of any status to an admin.
func (s *ReviewService) GetReview(ctx context.Context, reviewId uuid.UUID, session *entity.Session) (*entity.ReviewOutputModel, error) {
	if err := s.gate.Authorize(ctx, session); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.GetReviewById(ctx, reviewId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrReviewNotFound
		}

		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	reviews := []entity.Review{*review}
	out := mapReviews(reviews, s.profilesFor(ctx, reviews))[0]

	return &out, nil
}

// GetRatingSummary averages approved ratings. It reports an empty summary
// when the store cannot be read.
func (s *ReviewService) GetRatingSummary(ctx context.Context, subjectId string) *entity.RatingSummary {
	summary, err := s.reviewRepo.GetSubjectRatingSummary(ctx, subjectId)
	if err != nil {
		log.WithError(err).WithField("subject_id", subjectId).Warn("failed to load rating summary")
		return &entity.RatingSummary{SubjectId: subjectId}
	}

	return summary
}

func (s *ReviewService) SubscribeReviewUpdates(ctx context.Context, subjectId string) (<-chan struct{}, func()) {
	return s.notifier.SubscribeReviewUpdates(ctx, subjectId)
}
