package handlers

import (
	"encoding/json"
	"net/http"

	"saju-backend/application/commands"
	commandbus "saju-backend/application/commands/bus"
	"saju-backend/application/queries"
	querybus "saju-backend/application/queries/bus"
	"saju-backend/domain/insight"
	"saju-backend/pkg/auth"
	"saju-backend/pkg/common"
	apperrors "saju-backend/pkg/errors"
	"saju-backend/pkg/utils"

	"go.uber.org/zap"
)

// ProfileHandler handles birth profile HTTP requests
type ProfileHandler struct {
	commandBus *commandbus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *apperrors.ErrorHandler
	logger     *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(
	commandBus *commandbus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errorHandler,
		logger:     logger,
	}
}

// UpdateProfileRequest represents the request body for a profile update
type UpdateProfileRequest struct {
	BirthDate       *string  `json:"birthDate,omitempty" validate:"omitempty,len=10"`
	PersonalAnchors []string `json:"personalAnchors,omitempty" validate:"omitempty,max=10,dive,min=1,max=50"`
}

// ProfileResponse is the wire form of a birth profile. BirthDate is a
// YYYY-MM-DD string or null.
type ProfileResponse struct {
	BirthDate       *string  `json:"birthDate"`
	PersonalAnchors []string `json:"personalAnchors"`
}

func toProfileResponse(profile *insight.BirthProfile) ProfileResponse {
	resp := ProfileResponse{
		PersonalAnchors: profile.PersonalAnchors,
	}
	if resp.PersonalAnchors == nil {
		resp.PersonalAnchors = []string{}
	}
	if profile.BirthDate != nil {
		formatted := profile.BirthDate.Format("2006-01-02")
		resp.BirthDate = &formatted
	}
	return resp
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewUnauthenticated("missing caller identity"))
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetProfile{UserID: userCtx.UserID})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	profile, ok := result.(*insight.BirthProfile)
	if !ok {
		h.errors.Handle(w, r, apperrors.NewInternalError("unexpected query result"))
		return
	}

	common.RespondJSON(w, http.StatusOK, toProfileResponse(profile))
}

// UpdateProfile handles PUT /profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewUnauthenticated("missing caller identity"))
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, apperrors.NewInvalidArgument("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, apperrors.NewInvalidArgument(err.Error()))
		return
	}

	cmd := commands.UpdateProfile{
		UserID:          userCtx.UserID,
		PersonalAnchors: req.PersonalAnchors,
	}
	if req.BirthDate != nil {
		parsed, ok := utils.ParseLocalDate(*req.BirthDate)
		if !ok {
			h.errors.Handle(w, r, apperrors.NewInvalidArgument("birthDate must match YYYY-MM-DD"))
			return
		}
		cmd.BirthDate = &parsed
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.logger.Info("profile updated", zap.String("user_id", userCtx.UserID))

	anchors := cmd.PersonalAnchors
	if anchors == nil {
		anchors = []string{}
	}
	common.RespondJSON(w, http.StatusOK, ProfileResponse{
		BirthDate:       req.BirthDate,
		PersonalAnchors: anchors,
	})
}
