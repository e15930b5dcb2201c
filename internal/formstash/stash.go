// Package formstash keeps rejected form submissions around for exactly one
// follow-up page load. When a comment fails validation the handler stashes
// the raw text plus the error, redirects back to the entity page, and the
// next render of that page consumes the entry so a refresh starts clean.
package formstash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"gamesarchive/internal/httpapi/models"
)

// Entry is one stashed submission.
type Entry struct {
	Comment string `json:"comment"`
	Error   string `json:"error"`
}

// Client is the slice of the redis API the stash needs. *redis.Client
// satisfies it; tests substitute an in-memory fake.
type Client interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
}

// Stash stores entries in redis under a per-user, per-entity key with a TTL
// so abandoned submissions age out on their own.
type Stash struct {
	client Client
	ttl    time.Duration
}

func New(client Client, ttl time.Duration) *Stash {
	return &Stash{client: client, ttl: ttl}
}

func key(userID string, kind models.EntityKind, entityID int64) string {
	return fmt.Sprintf("formstash:%s:%s:%d", userID, kind, entityID)
}

// Put stores the entry, replacing any earlier stash for the same entity.
func (s *Stash) Put(ctx context.Context, userID string, kind models.EntityKind, entityID int64, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key(userID, kind, entityID), payload, s.ttl).Err()
}

// Take returns the stashed entry and removes it in the same round trip.
// A miss returns (nil, nil).
func (s *Stash) Take(ctx context.Context, userID string, kind models.EntityKind, entityID int64) (*Entry, error) {
	payload, err := s.client.GetDel(ctx, key(userID, kind, entityID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entry Entry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
