// Package ports defines the outbound interfaces of the application
// layer. Infrastructure implementations are injected at wiring time;
// handlers only ever see these contracts.
package ports

import (
	"context"

	"saju-backend/domain/events"
	"saju-backend/domain/insight"
)

// InsightRepository is the persisted per-user insight cache. Entries
// are keyed by (user, date key) and immutable once written.
type InsightRepository interface {
	// Get returns the stored insight for the key, or nil on a clean
	// miss. A read failure is an error, never a miss.
	Get(ctx context.Context, userID, dateKey string) (*insight.Insight, error)

	// Put stores a freshly generated insight. Concurrent writers for
	// the same key are allowed; the last write persists.
	Put(ctx context.Context, userID, dateKey string, ins *insight.Insight) error

	// ListRecent returns up to limit insights for the user, newest
	// first.
	ListRecent(ctx context.Context, userID string, limit int) ([]insight.Insight, error)
}

// ProfileRepository reads and writes the personalization slice of a
// user's profile document.
type ProfileRepository interface {
	// GetBirthProfile returns the user's birth profile, or nil when
	// the user has no profile document. Absence is not an error.
	GetBirthProfile(ctx context.Context, userID string) (*insight.BirthProfile, error)

	// PutBirthProfile upserts the user's birth profile.
	PutBirthProfile(ctx context.Context, userID string, profile *insight.BirthProfile) error
}

// TextGenerator produces the insight text for a fully constructed
// prompt. Implementations own the retry budget, per-attempt timeout,
// and output validation.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// EventPublisher publishes domain events to the event bus. Publish
// failures must not fail the originating request.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}

// Cache is a volatile in-process cache, used to short-circuit repeat
// reads within a warm container. It is an optimization layer only;
// the document store remains the source of truth.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
