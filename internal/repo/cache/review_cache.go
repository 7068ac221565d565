package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"review-lifecycle-api/internal/entity"

	"github.com/redis/go-redis/v9"
)

const (
	approvedKeyPrefix   = "reviews:approved:"
	generationKeyPrefix = "reviews:generation:"
)

// ReviewCache keeps the public, viewer-independent list of approved reviews
// per subject. Every invalidation bumps a per-subject generation counter, and
// a fill is only stored when the generation it was read under is still
// current, so a list loaded before a moderation write never replaces the
// invalidation.
type ReviewCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewReviewCache(rdb *redis.Client, ttl time.Duration) *ReviewCache {
	return &ReviewCache{rdb: rdb, ttl: ttl}
}

func approvedKey(subjectId string) string {
	return approvedKeyPrefix + subjectId
}

func generationKey(subjectId string) string {
	return generationKeyPrefix + subjectId
}

func readGeneration(ctx context.Context, rdb redis.Cmdable, subjectId string) (int64, error) {
	generation, err := rdb.Get(ctx, generationKey(subjectId)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	return generation, err
}

// GetApproved reports false when nothing is cached for the subject.
func (c *ReviewCache) GetApproved(ctx context.Context, subjectId string) ([]entity.Review, bool, error) {
	raw, err := c.rdb.Get(ctx, approvedKey(subjectId)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var reviews []entity.Review
	if err := json.Unmarshal(raw, &reviews); err != nil {
		return nil, false, err
	}

	return reviews, true, nil
}

// Generation must be read before the store read whose result is passed to
// SetApproved.
func (c *ReviewCache) Generation(ctx context.Context, subjectId string) (int64, error) {
	return readGeneration(ctx, c.rdb, subjectId)
}

// SetApproved stores the list unless the subject was invalidated after
// generation was read. A skipped fill is not an error.
func (c *ReviewCache) SetApproved(ctx context.Context, subjectId string, generation int64, reviews []entity.Review) error {
	if reviews == nil {
		reviews = []entity.Review{}
	}

	raw, err := json.Marshal(reviews)
	if err != nil {
		return err
	}

	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, subjectId)
		if err != nil {
			return err
		}
		if current != generation {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, approvedKey(subjectId), raw, c.ttl)
			return nil
		})
		return err
	}, generationKey(subjectId))
	// invalidated between the check and the write
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}

	return err
}

func (c *ReviewCache) Invalidate(ctx context.Context, subjectId string) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(subjectId))
		pipe.Del(ctx, approvedKey(subjectId))
		return nil
	})

	return err
}
