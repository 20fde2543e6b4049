package handlers

import (
	"context"
	"fmt"

	"saju-backend/application/ports"
	"saju-backend/application/queries"
	"saju-backend/application/queries/bus"

	"go.uber.org/zap"
)

// ListInsightsHandler returns a user's recent insight history.
type ListInsightsHandler struct {
	insights ports.InsightRepository
	logger   *zap.Logger
}

// NewListInsightsHandler creates a new handler
func NewListInsightsHandler(insights ports.InsightRepository, logger *zap.Logger) *ListInsightsHandler {
	return &ListInsightsHandler{
		insights: insights,
		logger:   logger,
	}
}

// Handle implements bus.QueryHandler
func (h *ListInsightsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ListInsights)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	items, err := h.insights.ListRecent(ctx, q.UserID, q.EffectiveLimit())
	if err != nil {
		return nil, err
	}

	h.logger.Debug("listed insight history",
		zap.String("user_id", q.UserID),
		zap.Int("count", len(items)),
	)

	return items, nil
}
