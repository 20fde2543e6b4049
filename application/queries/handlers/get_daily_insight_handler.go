package handlers

import (
	"context"
	"fmt"
	"time"

	appinsight "saju-backend/application/insight"
	"saju-backend/application/ports"
	"saju-backend/application/queries"
	"saju-backend/application/queries/bus"
	"saju-backend/domain/events"
	"saju-backend/domain/insight"
	"saju-backend/domain/saju"
	apperrors "saju-backend/pkg/errors"
	"saju-backend/pkg/observability"
	"saju-backend/pkg/utils"

	"go.uber.org/zap"
)

// dateWindowDays is how far a requested local date may sit from the
// current UTC day. Two days tolerates the full UTC-12..UTC+14 offset
// spread while rejecting arbitrary historical or future queries.
const dateWindowDays = 2

// GetDailyInsightHandler orchestrates daily insight requests:
// validate, consult the cache, and on a miss build the personalized
// prompt, generate, persist, and return. Concurrent misses for one key
// may both generate and write; the content is near-deterministic and
// the last write persists, so no single-flight guard is applied.
type GetDailyInsightHandler struct {
	insights  ports.InsightRepository
	profiles  ports.ProfileRepository
	generator ports.TextGenerator
	publisher ports.EventPublisher
	cache     ports.Cache
	metrics   *observability.Metrics
	tracer    *observability.Tracer
	logger    *zap.Logger
	now       func() time.Time
}

// NewGetDailyInsightHandler creates the orchestrating handler.
func NewGetDailyInsightHandler(
	insights ports.InsightRepository,
	profiles ports.ProfileRepository,
	generator ports.TextGenerator,
	publisher ports.EventPublisher,
	cache ports.Cache,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *GetDailyInsightHandler {
	return &GetDailyInsightHandler{
		insights:  insights,
		profiles:  profiles,
		generator: generator,
		publisher: publisher,
		cache:     cache,
		metrics:   metrics,
		tracer:    tracer,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the handler's clock. Test hook.
func (h *GetDailyInsightHandler) WithClock(now func() time.Time) *GetDailyInsightHandler {
	h.now = now
	return h
}

// Handle implements bus.QueryHandler
func (h *GetDailyInsightHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetDailyInsight)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	localDate, ok := utils.ParseLocalDate(q.LocalDate)
	if !ok {
		return nil, apperrors.NewInvalidArgument("localDate must match YYYY-MM-DD")
	}
	if utils.DaysApart(localDate, h.now()) > dateWindowDays {
		return nil, apperrors.NewInvalidArgument("localDate is outside the allowed window")
	}

	dateKey := insight.DateKey(q.LocalDate, q.TimeZoneID)

	if cached := h.fromWarmCache(ctx, q.UserID, dateKey); cached != nil {
		h.metrics.CountCacheHit(ctx, true)
		return cached, nil
	}

	stored, err := h.insights.Get(ctx, q.UserID, dateKey)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		h.metrics.CountCacheHit(ctx, true)
		h.toWarmCache(ctx, q.UserID, dateKey, stored)
		return stored, nil
	}
	h.metrics.CountCacheHit(ctx, false)

	// Cache miss: build the personalization context. A user without a
	// birth record gets an unpersonalized insight, not an error.
	profile, err := h.profiles.GetBirthProfile(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	pillar := saju.ComputeDayPillar(localDate)

	var personalization string
	if profile != nil {
		personalization = appinsight.BuildPersonalizationContext(profile.BirthDate, profile.PersonalAnchors, pillar.Element)
	}

	prompt := appinsight.BuildPrompt(q.LocalDate, pillar, personalization)

	var text string
	genStart := time.Now()
	err = h.tracer.TraceFunction(ctx, "generate_insight", func(ctx context.Context) error {
		var genErr error
		text, genErr = h.generator.Generate(ctx, prompt)
		return genErr
	})
	if err != nil {
		h.metrics.CountGenerationFailure(ctx)
		return nil, err
	}
	h.metrics.RecordGenerationLatency(ctx, time.Since(genStart))

	fresh := &insight.Insight{
		LocalDate:     q.LocalDate,
		TimeZoneID:    q.TimeZoneID,
		DayElement:    pillar.Element.String(),
		ElementTheme:  pillar.Element.Theme(),
		HeavenlyStem:  pillar.Stem(),
		EarthlyBranch: pillar.Branch(),
		InsightText:   text,
		GeneratedAt:   h.now().UTC(),
		Version:       insight.Version,
		Source:        insight.SourceGenerated,
	}

	err = h.tracer.TraceFunction(ctx, "persist_insight", func(ctx context.Context) error {
		return h.insights.Put(ctx, q.UserID, dateKey, fresh)
	})
	if err != nil {
		// Persistence failure is fatal to the request: the stored
		// document and the response must never diverge.
		return nil, err
	}

	if pubErr := h.publisher.Publish(ctx, events.NewInsightGenerated(q.UserID, dateKey, fresh.DayElement, fresh.GeneratedAt)); pubErr != nil {
		h.logger.Warn("failed to publish insight.generated event",
			zap.String("user_id", q.UserID),
			zap.String("date_key", dateKey),
			zap.Error(pubErr),
		)
	}

	h.toWarmCache(ctx, q.UserID, dateKey, fresh)

	h.logger.Info("daily insight generated",
		zap.String("user_id", q.UserID),
		zap.String("date_key", dateKey),
		zap.String("day_element", fresh.DayElement),
		zap.Bool("personalized", personalization != ""),
	)

	return fresh, nil
}

func warmCacheKey(userID, dateKey string) string {
	return "insight:" + userID + ":" + dateKey
}

func (h *GetDailyInsightHandler) fromWarmCache(ctx context.Context, userID, dateKey string) *insight.Insight {
	if h.cache == nil {
		return nil
	}
	if v, ok := h.cache.Get(ctx, warmCacheKey(userID, dateKey)); ok {
		if ins, ok := v.(*insight.Insight); ok {
			return ins
		}
	}
	return nil
}

func (h *GetDailyInsightHandler) toWarmCache(ctx context.Context, userID, dateKey string, ins *insight.Insight) {
	if h.cache == nil {
		return
	}
	// Insights are immutable, so a warm-container copy can never go
	// stale; the TTL only bounds memory.
	_ = h.cache.Set(ctx, warmCacheKey(userID, dateKey), ins, 3600)
}
