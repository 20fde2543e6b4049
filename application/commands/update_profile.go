package commands

import (
	"time"

	apperrors "saju-backend/pkg/errors"
)

// maxPersonalAnchors bounds the personalization tag list at the write
// boundary, matching the cap applied when building prompts.
const maxPersonalAnchors = 10

// UpdateProfile upserts the caller's birth profile. Both fields are
// optional; clearing the birth date is a valid update.
type UpdateProfile struct {
	UserID          string
	BirthDate       *time.Time
	PersonalAnchors []string
}

// Validate implements bus.Command
func (c UpdateProfile) Validate() error {
	if c.UserID == "" {
		return apperrors.NewUnauthenticated("missing caller identity")
	}
	if len(c.PersonalAnchors) > maxPersonalAnchors {
		return apperrors.NewInvalidArgument("too many personal anchors")
	}
	if c.BirthDate != nil && c.BirthDate.After(time.Now()) {
		return apperrors.NewInvalidArgument("birth date cannot be in the future")
	}
	return nil
}
