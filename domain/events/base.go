package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the base interface for all domain events.
// Events represent something that has happened in the past.
type DomainEvent interface {
	GetEventID() string
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetEventID() string      { return e.EventID }
func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// InsightGenerated is raised after a daily insight has been generated
// and persisted. Downstream consumers use it to schedule the next
// day's notification for the user.
type InsightGenerated struct {
	BaseEvent
	UserID     string `json:"user_id"`
	DateKey    string `json:"date_key"`
	DayElement string `json:"day_element"`
}

// NewInsightGenerated creates an InsightGenerated event.
func NewInsightGenerated(userID, dateKey, dayElement string, timestamp time.Time) InsightGenerated {
	return InsightGenerated{
		BaseEvent: BaseEvent{
			EventID:     uuid.NewString(),
			AggregateID: userID,
			EventType:   "insight.generated",
			Timestamp:   timestamp,
			Version:     1,
		},
		UserID:     userID,
		DateKey:    dateKey,
		DayElement: dayElement,
	}
}

// ProfileUpdated is raised when a user's birth profile changes.
type ProfileUpdated struct {
	BaseEvent
	UserID string `json:"user_id"`
}

// NewProfileUpdated creates a ProfileUpdated event.
func NewProfileUpdated(userID string, timestamp time.Time) ProfileUpdated {
	return ProfileUpdated{
		BaseEvent: BaseEvent{
			EventID:     uuid.NewString(),
			AggregateID: userID,
			EventType:   "profile.updated",
			Timestamp:   timestamp,
			Version:     1,
		},
		UserID: userID,
	}
}
