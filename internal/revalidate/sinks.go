package revalidate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anonto42/ui-crate/backend/internal/models"
	"github.com/anonto42/ui-crate/backend/internal/repositories"
	"github.com/redis/go-redis/v9"
)

// ProfileInvalidator drops cached profile data.
type ProfileInvalidator interface {
	Invalidate(ctx context.Context, profileIDs ...string) error
}

// CacheSink evicts the cached profile identities named by an event.
type CacheSink struct {
	cache ProfileInvalidator
}

func NewCacheSink(cache ProfileInvalidator) *CacheSink {
	return &CacheSink{cache: cache}
}

func (s *CacheSink) Name() string { return "profile-cache" }

func (s *CacheSink) Handle(ctx context.Context, ev Event) error {
	return s.cache.Invalidate(ctx, ev.ProfileIDs...)
}

type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// PublishSink publishes events as JSON on a Redis channel consumed by the
// page regenerator.
type PublishSink struct {
	client  publisher
	channel string
}

func NewPublishSink(client publisher, channel string) *PublishSink {
	return &PublishSink{client: client, channel: channel}
}

func (s *PublishSink) Name() string { return "redis-publish" }

func (s *PublishSink) Handle(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return s.client.Publish(ctx, s.channel, data).Err()
}

// LogSink records every event in the revalidation log.
type LogSink struct {
	repo repositories.RevalidationRepository
}

func NewLogSink(repo repositories.RevalidationRepository) *LogSink {
	return &LogSink{repo: repo}
}

func (s *LogSink) Name() string { return "revalidation-log" }

func (s *LogSink) Handle(ctx context.Context, ev Event) error {
	return s.repo.Record(ctx, &models.RevalidationRecord{
		Reason:     ev.Reason,
		ActorID:    ev.ActorID,
		Paths:      ev.Paths,
		ProfileIDs: ev.ProfileIDs,
		CreatedAt:  ev.At,
	})
}
