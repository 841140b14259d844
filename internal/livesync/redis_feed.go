package livesync

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/DhavalSuthar-24/crease/pkg/logger"
)

// latestTTL keeps the last snapshot around for late joiners of a quiet match.
const latestTTL = 6 * time.Hour

// RedisFeed publishes snapshots on a per-match channel and keeps the latest
// one under a key so a new follower can render before the next ball.
type RedisFeed struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedisFeed wraps client.
func NewRedisFeed(client *redis.Client, log *logger.Logger) *RedisFeed {
	return &RedisFeed{client: client, log: log}
}

// Channel is the pub/sub channel for a match.
func Channel(matchID string) string { return "match:" + matchID + ":live" }

// LatestKey holds the most recent payload for a match.
func LatestKey(matchID string) string { return "match:" + matchID + ":latest" }

// Publish stores payload as the latest snapshot and broadcasts it.
func (f *RedisFeed) Publish(ctx context.Context, matchID string, payload []byte) error {
	pipe := f.client.TxPipeline()
	pipe.Set(ctx, LatestKey(matchID), payload, latestTTL)
	pipe.Publish(ctx, Channel(matchID), payload)
	_, err := pipe.Exec(ctx)
	return err
}

// Latest returns the last published payload, or nil if none is cached.
func (f *RedisFeed) Latest(ctx context.Context, matchID string) ([]byte, error) {
	b, err := f.client.Get(ctx, LatestKey(matchID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return b, err
}

// Subscribe streams payloads for matchID until ctx ends. The returned
// channel is closed when the subscription stops.
func (f *RedisFeed) Subscribe(ctx context.Context, matchID string) (<-chan []byte, error) {
	ps := f.client.Subscribe(ctx, Channel(matchID))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	out := make(chan []byte, 16)
	go func() {
		defer close(out)
		defer ps.Close()
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				default:
					f.log.ForMatch(matchID).Warn("live feed: dropping message for slow follower")
				}
			}
		}
	}()
	return out, nil
}

// Ping checks the connection.
func (f *RedisFeed) Ping(ctx context.Context) error {
	return f.client.Ping(ctx).Err()
}
