package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/totegamma/jobtrack/internal/domain"
)

const channelPrefix = "jobtrack:"

// Channel is the pub/sub channel carrying one owner's change events.
func Channel(ownerID string) string {
	return channelPrefix + ownerID
}

type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) Publish(ctx context.Context, ownerID string, event domain.Event) error {

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, Channel(ownerID), jsonstr).Err()
	if err != nil {
		return err

	}

	return nil
}

// Realtime forwards the owner's events to output until ctx is done.
func (s *SignalService) Realtime(ctx context.Context, ownerID string, output chan<- domain.Event) {
	pubsub := s.rdb.Subscribe(ctx, Channel(ownerID))
	defer pubsub.Close()

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var event domain.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.WarnContext(
					ctx, "dropping malformed event",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}
			select {
			case output <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}
