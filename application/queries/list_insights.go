package queries

import (
	apperrors "saju-backend/pkg/errors"
)

// maxHistoryLimit caps how many stored insights one request may page.
const maxHistoryLimit = 30

// ListInsights asks for the caller's recent insight history, newest
// first.
type ListInsights struct {
	UserID string
	Limit  int
}

// Validate implements bus.Query
func (q ListInsights) Validate() error {
	if q.UserID == "" {
		return apperrors.NewUnauthenticated("missing caller identity")
	}
	if q.Limit < 0 || q.Limit > maxHistoryLimit {
		return apperrors.NewInvalidArgument("limit must be between 0 and 30")
	}
	return nil
}

// EffectiveLimit returns the requested page size, defaulted when unset.
func (q ListInsights) EffectiveLimit() int {
	if q.Limit == 0 {
		return 7
	}
	return q.Limit
}
