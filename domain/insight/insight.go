package insight

import (
	"strings"
	"time"
)

// Version tags every stored insight with the generation pipeline
// revision that produced it.
const Version = "v1"

// SourceGenerated marks an insight that was freshly produced by the
// generation provider, as opposed to any future backfilled provenance.
const SourceGenerated = "generated"

// Insight is a user's stored daily reflection. One exists per
// (user, local date, timezone) tuple and it is immutable once written:
// cache entries are permanent history, never updated or deleted.
type Insight struct {
	LocalDate     string    `json:"localDate"`
	TimeZoneID    string    `json:"timeZoneId"`
	DayElement    string    `json:"dayElement"`
	ElementTheme  string    `json:"elementTheme"`
	HeavenlyStem  string    `json:"heavenlyStem"`
	EarthlyBranch string    `json:"earthlyBranch"`
	InsightText   string    `json:"insightText"`
	GeneratedAt   time.Time `json:"generatedAt"`
	Version       string    `json:"version"`
	Source        string    `json:"source"`
}

// BirthProfile is the personalization slice of a user's stored profile.
// Every field is optional by contract: a user may never have completed
// onboarding, or may have skipped the birth date step.
type BirthProfile struct {
	BirthDate       *time.Time `json:"birthDate,omitempty"`
	PersonalAnchors []string   `json:"personalAnchors,omitempty"`
}

// DateKey derives the storage key component for an insight from its
// local date and timezone. Timezone identifiers contain path
// separators ("America/Los_Angeles") which would be misread as
// hierarchy in a composite key, so they are replaced before use.
func DateKey(localDate, timeZoneID string) string {
	return localDate + "_" + strings.ReplaceAll(timeZoneID, "/", "-")
}
