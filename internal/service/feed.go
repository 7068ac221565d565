package service

import (
	"context"

	"review-lifecycle-api/internal/entity"
)

// FollowVisibleReviews keeps a viewer's list of a subject's reviews current.
// It emits the list once, then again after every session change received on
// authChanges (nil means signed out) and after every signal on updates. The
// output channel is closed when ctx is done or both inputs are closed.
func (s *ReviewService) FollowVisibleReviews(
	ctx context.Context,
	subjectId string,
	session *entity.Session,
	authChanges <-chan *entity.Session,
	updates <-chan struct{},
) <-chan []entity.ReviewOutputModel {
	out := make(chan []entity.ReviewOutputModel)

	go func() {
		defer close(out)

		emit := func() bool {
			reviews := s.ListVisibleReviews(ctx, subjectId, session)
			select {
			case out <- reviews:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}

		for authChanges != nil || updates != nil {
			select {
			case <-ctx.Done():
				return
			case next, ok := <-authChanges:
				if !ok {
					authChanges = nil
					continue
				}
				session = next
			case _, ok := <-updates:
				if !ok {
					updates = nil
					continue
				}
			}

			if !emit() {
				return
			}
		}
	}()

	return out
}
