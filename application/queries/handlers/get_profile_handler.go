package handlers

import (
	"context"
	"fmt"

	"saju-backend/application/ports"
	"saju-backend/application/queries"
	"saju-backend/application/queries/bus"
	"saju-backend/domain/insight"
)

// GetProfileHandler returns a user's birth profile. A user without a
// stored profile gets an empty one, not an error, so the client can
// render the onboarding state.
type GetProfileHandler struct {
	profiles ports.ProfileRepository
}

// NewGetProfileHandler creates a new handler
func NewGetProfileHandler(profiles ports.ProfileRepository) *GetProfileHandler {
	return &GetProfileHandler{profiles: profiles}
}

// Handle implements bus.QueryHandler
func (h *GetProfileHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetProfile)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	profile, err := h.profiles.GetBirthProfile(ctx, q.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &insight.BirthProfile{}
	}

	return profile, nil
}
