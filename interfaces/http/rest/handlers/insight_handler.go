package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"saju-backend/application/queries"
	querybus "saju-backend/application/queries/bus"
	"saju-backend/domain/insight"
	"saju-backend/pkg/auth"
	"saju-backend/pkg/common"
	apperrors "saju-backend/pkg/errors"
	"saju-backend/pkg/utils"

	"go.uber.org/zap"
)

// InsightHandler handles insight-related HTTP requests
type InsightHandler struct {
	queryBus *querybus.QueryBus
	errors   *apperrors.ErrorHandler
	logger   *zap.Logger
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(queryBus *querybus.QueryBus, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *InsightHandler {
	return &InsightHandler{
		queryBus: queryBus,
		errors:   errorHandler,
		logger:   logger,
	}
}

// DailyInsightRequest represents the request body for a daily insight
type DailyInsightRequest struct {
	TimeZoneID string `json:"timeZoneId" validate:"required,timezone"`
	LocalDate  string `json:"localDate" validate:"required,len=10"`
}

// InsightResponse is the wire form of a stored insight. GeneratedAt is
// epoch milliseconds, which round-trips the stored value exactly.
type InsightResponse struct {
	LocalDate     string `json:"localDate"`
	TimeZoneID    string `json:"timeZoneId"`
	DayElement    string `json:"dayElement"`
	ElementTheme  string `json:"elementTheme"`
	HeavenlyStem  string `json:"heavenlyStem"`
	EarthlyBranch string `json:"earthlyBranch"`
	InsightText   string `json:"insightText"`
	GeneratedAt   int64  `json:"generatedAt"`
	Version       string `json:"version"`
	Source        string `json:"source"`
}

func toInsightResponse(ins *insight.Insight) InsightResponse {
	return InsightResponse{
		LocalDate:     ins.LocalDate,
		TimeZoneID:    ins.TimeZoneID,
		DayElement:    ins.DayElement,
		ElementTheme:  ins.ElementTheme,
		HeavenlyStem:  ins.HeavenlyStem,
		EarthlyBranch: ins.EarthlyBranch,
		InsightText:   ins.InsightText,
		GeneratedAt:   ins.GeneratedAt.UnixMilli(),
		Version:       ins.Version,
		Source:        ins.Source,
	}
}

// GetDailyInsight handles POST /insights/daily
func (h *InsightHandler) GetDailyInsight(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewUnauthenticated("missing caller identity"))
		return
	}

	var req DailyInsightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, apperrors.NewInvalidArgument("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, apperrors.NewInvalidArgument(err.Error()))
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetDailyInsight{
		UserID:     userCtx.UserID,
		TimeZoneID: req.TimeZoneID,
		LocalDate:  req.LocalDate,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	ins, ok := result.(*insight.Insight)
	if !ok {
		h.errors.Handle(w, r, apperrors.NewInternalError("unexpected query result"))
		return
	}

	common.RespondJSON(w, http.StatusOK, toInsightResponse(ins))
}

// ListInsights handles GET /insights
func (h *InsightHandler) ListInsights(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, apperrors.NewUnauthenticated("missing caller identity"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			h.errors.Handle(w, r, apperrors.NewInvalidArgument("limit must be an integer"))
			return
		}
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListInsights{
		UserID: userCtx.UserID,
		Limit:  limit,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	items, ok := result.([]insight.Insight)
	if !ok {
		h.errors.Handle(w, r, apperrors.NewInternalError("unexpected query result"))
		return
	}

	responses := make([]InsightResponse, 0, len(items))
	for i := range items {
		responses = append(responses, toInsightResponse(&items[i]))
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"insights": responses,
		"count":    len(responses),
	})
}
