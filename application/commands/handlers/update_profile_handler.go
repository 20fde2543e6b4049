package handlers

import (
	"context"
	"fmt"
	"time"

	"saju-backend/application/commands"
	"saju-backend/application/commands/bus"
	"saju-backend/application/ports"
	"saju-backend/domain/events"
	"saju-backend/domain/insight"

	"go.uber.org/zap"
)

// UpdateProfileHandler upserts a user's birth profile and announces
// the change.
type UpdateProfileHandler struct {
	profiles  ports.ProfileRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewUpdateProfileHandler creates a new handler
func NewUpdateProfileHandler(
	profiles ports.ProfileRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *UpdateProfileHandler {
	return &UpdateProfileHandler{
		profiles:  profiles,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle implements bus.CommandHandler
func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(commands.UpdateProfile)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}

	profile := &insight.BirthProfile{
		BirthDate:       c.BirthDate,
		PersonalAnchors: c.PersonalAnchors,
	}

	if err := h.profiles.PutBirthProfile(ctx, c.UserID, profile); err != nil {
		return err
	}

	if pubErr := h.publisher.Publish(ctx, events.NewProfileUpdated(c.UserID, time.Now().UTC())); pubErr != nil {
		h.logger.Warn("failed to publish profile.updated event",
			zap.String("user_id", c.UserID),
			zap.Error(pubErr),
		)
	}

	h.logger.Info("profile updated",
		zap.String("user_id", c.UserID),
		zap.Bool("has_birth_date", c.BirthDate != nil),
	)

	return nil
}
