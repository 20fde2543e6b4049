package queries

import (
	apperrors "saju-backend/pkg/errors"
	"saju-backend/pkg/utils"
)

// GetDailyInsight asks for the caller's insight for a local calendar
// day. On a cache miss the handler generates, persists, and returns a
// fresh one; repeat requests for the same key return the stored
// document unchanged.
type GetDailyInsight struct {
	UserID     string
	TimeZoneID string
	LocalDate  string
}

// Validate implements bus.Query
func (q GetDailyInsight) Validate() error {
	if q.UserID == "" {
		return apperrors.NewUnauthenticated("missing caller identity")
	}
	if q.TimeZoneID == "" {
		return apperrors.NewInvalidArgument("timeZoneId is required")
	}
	if q.LocalDate == "" {
		return apperrors.NewInvalidArgument("localDate is required")
	}
	if _, ok := utils.ParseLocalDate(q.LocalDate); !ok {
		return apperrors.NewInvalidArgument("localDate must match YYYY-MM-DD")
	}
	return nil
}
