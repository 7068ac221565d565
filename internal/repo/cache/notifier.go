package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const updatesChannelPrefix = "reviews:updates:"

// ReviewNotifier fans review moderation events out to every API instance
// over redis pub/sub.
type ReviewNotifier struct {
	rdb *redis.Client
}

func NewReviewNotifier(rdb *redis.Client) *ReviewNotifier {
	return &ReviewNotifier{rdb: rdb}
}

func updatesChannel(subjectId string) string {
	return updatesChannelPrefix + subjectId
}

func (n *ReviewNotifier) PublishReviewUpdate(ctx context.Context, subjectId string) error {
	return n.rdb.Publish(ctx, updatesChannel(subjectId), subjectId).Err()
}

// SubscribeReviewUpdates returns a channel that receives a signal for every
// update published for the subject. Signals are coalesced: a slow reader sees
// at least one signal after the last update, not one per update. The
// returned function stops the subscription and closes the channel.
func (n *ReviewNotifier) SubscribeReviewUpdates(ctx context.Context, subjectId string) (<-chan struct{}, func()) {
	ctx, cancel := context.WithCancel(ctx)
	pubsub := n.rdb.Subscribe(ctx, updatesChannel(subjectId))
	updates := make(chan struct{}, 1)

	go func() {
		defer close(updates)
		defer func() {
			if err := pubsub.Close(); err != nil {
				log.WithError(err).WithField("subject_id", subjectId).Debug("closing review updates subscription")
			}
		}()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-messages:
				if !ok {
					return
				}
				select {
				case updates <- struct{}{}:
				default:
				}
			}
		}
	}()

	return updates, cancel
}
