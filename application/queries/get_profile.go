package queries

import (
	apperrors "saju-backend/pkg/errors"
)

// GetProfile asks for the caller's birth profile.
type GetProfile struct {
	UserID string
}

// Validate implements bus.Query
func (q GetProfile) Validate() error {
	if q.UserID == "" {
		return apperrors.NewUnauthenticated("missing caller identity")
	}
	return nil
}
