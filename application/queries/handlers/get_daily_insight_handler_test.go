package handlers

import (
	"context"
	"strings"
	"testing"
	"time"

	"saju-backend/application/queries"
	"saju-backend/domain/events"
	"saju-backend/domain/insight"
	apperrors "saju-backend/pkg/errors"
	"saju-backend/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockInsightRepo struct {
	mock.Mock
}

func (m *mockInsightRepo) Get(ctx context.Context, userID, dateKey string) (*insight.Insight, error) {
	args := m.Called(ctx, userID, dateKey)
	if ins := args.Get(0); ins != nil {
		return ins.(*insight.Insight), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInsightRepo) Put(ctx context.Context, userID, dateKey string, ins *insight.Insight) error {
	args := m.Called(ctx, userID, dateKey, ins)
	return args.Error(0)
}

func (m *mockInsightRepo) ListRecent(ctx context.Context, userID string, limit int) ([]insight.Insight, error) {
	args := m.Called(ctx, userID, limit)
	if items := args.Get(0); items != nil {
		return items.([]insight.Insight), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) GetBirthProfile(ctx context.Context, userID string) (*insight.BirthProfile, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.(*insight.BirthProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) PutBirthProfile(ctx context.Context, userID string, profile *insight.BirthProfile) error {
	args := m.Called(ctx, userID, profile)
	return args.Error(0)
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

const (
	testUserID  = "user-123"
	testZone    = "America/Los_Angeles"
	testDate    = "2024-02-10"
	testDateKey = "2024-02-10_America-Los_Angeles"
	longText    = "Quiet attention to small tasks may bring a sense of steadiness today. Moments of rest can often open room for new thoughts."
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)
	}
}

func newHandler(insights *mockInsightRepo, profiles *mockProfileRepo, gen *mockGenerator, pub *mockPublisher) *GetDailyInsightHandler {
	logger := zap.NewNop()
	metrics := observability.NewMetrics(nil, "SajuBackend/Test", false, logger)
	tracer := observability.NewTracer("test")

	return NewGetDailyInsightHandler(insights, profiles, gen, pub, nil, metrics, tracer, logger).
		WithClock(fixedClock())
}

func validQuery() queries.GetDailyInsight {
	return queries.GetDailyInsight{
		UserID:     testUserID,
		TimeZoneID: testZone,
		LocalDate:  testDate,
	}
}

func TestCacheHitReturnsStoredInsightWithoutGenerating(t *testing.T) {
	insights := new(mockInsightRepo)
	profiles := new(mockProfileRepo)
	gen := new(mockGenerator)
	pub := new(mockPublisher)

	originalGeneratedAt := time.Date(2024, time.February, 10, 6, 0, 0, 0, time.UTC)
	stored := &insight.Insight{
		LocalDate:   testDate,
		TimeZoneID:  testZone,
		InsightText: longText,
		GeneratedAt: originalGeneratedAt,
		Version:     insight.Version,
		Source:      insight.SourceGenerated,
	}
	insights.On("Get", mock.Anything, testUserID, testDateKey).Return(stored, nil)

	h := newHandler(insights, profiles, gen, pub)
	result, err := h.Handle(context.Background(), validQuery())

	require.NoError(t, err)
	got := result.(*insight.Insight)
	assert.Equal(t, stored, got)
	assert.Equal(t, originalGeneratedAt, got.GeneratedAt)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	insights.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCacheMissGeneratesPersistsAndPublishes(t *testing.T) {
	insights := new(mockInsightRepo)
	profiles := new(mockProfileRepo)
	gen := new(mockGenerator)
	pub := new(mockPublisher)

	insights.On("Get", mock.Anything, testUserID, testDateKey).Return(nil, nil)
	profiles.On("GetBirthProfile", mock.Anything, testUserID).Return(nil, nil)
	gen.On("Generate", mock.Anything, mock.Anything).Return(longText, nil)
	insights.On("Put", mock.Anything, testUserID, testDateKey, mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)

	h := newHandler(insights, profiles, gen, pub)
	result, err := h.Handle(context.Background(), validQuery())

	require.NoError(t, err)
	got := result.(*insight.Insight)
	assert.Equal(t, longText, got.InsightText)
	assert.Equal(t, testDate, got.LocalDate)
	assert.Equal(t, testZone, got.TimeZoneID)
	// 2024-02-10 is a Ren-Yin water day
	assert.Equal(t, "Water", got.DayElement)
	assert.Equal(t, "Ren", got.HeavenlyStem)
	assert.Equal(t, "Yin", got.EarthlyBranch)
	assert.Equal(t, insight.Version, got.Version)
	assert.Equal(t, insight.SourceGenerated, got.Source)

	insights.AssertCalled(t, "Put", mock.Anything, testUserID, testDateKey, mock.Anything)
	pub.AssertCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestMissingBirthProfileStillGenerates(t *testing.T) {
	insights := new(mockInsightRepo)
	profiles := new(mockProfileRepo)
	gen := new(mockGenerator)
	pub := new(mockPublisher)

	insights.On("Get", mock.Anything, testUserID, testDateKey).Return(nil, nil)
	profiles.On("GetBirthProfile", mock.Anything, testUserID).Return(nil, nil)
	var capturedPrompt string
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		capturedPrompt = p
		return true
	})).Return(longText, nil)
	insights.On("Put", mock.Anything, testUserID, testDateKey, mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)

	h := newHandler(insights, profiles, gen, pub)
	_, err := h.Handle(context.Background(), validQuery())

	require.NoError(t, err)
	assert.NotContains(t, capturedPrompt, "About the reader")
}

func TestBirthProfilePersonalizesPrompt(t *testing.T) {
	insights := new(mockInsightRepo)
	profiles := new(mockProfileRepo)
	gen := new(mockGenerator)
	pub := new(mockPublisher)

	bd := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)
	profile := &insight.BirthProfile{
		BirthDate:       &bd,
		PersonalAnchors: []string{"career", "health"},
	}

	insights.On("Get", mock.Anything, testUserID, testDateKey).Return(nil, nil)
	profiles.On("GetBirthProfile", mock.Anything, testUserID).Return(profile, nil)
	var capturedPrompt string
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		capturedPrompt = p
		return true
	})).Return(longText, nil)
	insights.On("Put", mock.Anything, testUserID, testDateKey, mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)

	h := newHandler(insights, profiles, gen, pub)
	_, err := h.Handle(context.Background(), validQuery())

	require.NoError(t, err)
	assert.Contains(t, capturedPrompt, "About the reader")
	assert.Contains(t, capturedPrompt, "career, health")
}

func TestDateOutsideWindowRejected(t *testing.T) {
	h := newHandler(new(mockInsightRepo), new(mockProfileRepo), new(mockGenerator), new(mockPublisher))

	q := validQuery()
	q.LocalDate = "2024-02-13" // three days ahead of the fixed clock

	_, err := h.Handle(context.Background(), q)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidArgument))
}

func TestDateExactlyTwoDaysAwayAccepted(t *testing.T) {
	insights := new(mockInsightRepo)
	profiles := new(mockProfileRepo)
	gen := new(mockGenerator)
	pub := new(mockPublisher)

	dateKey := "2024-02-12_America-Los_Angeles"
	insights.On("Get", mock.Anything, testUserID, dateKey).Return(nil, nil)
	profiles.On("GetBirthProfile", mock.Anything, testUserID).Return(nil, nil)
	gen.On("Generate", mock.Anything, mock.Anything).Return(longText, nil)
	insights.On("Put", mock.Anything, testUserID, dateKey, mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)

	h := newHandler(insights, profiles, gen, pub)

	q := validQuery()
	q.LocalDate = "2024-02-12"

	_, err := h.Handle(context.Background(), q)

	assert.NoError(t, err)
}

func TestMalformedDateRejectedByQueryValidation(t *testing.T) {
	q := queries.GetDailyInsight{
		UserID:     testUserID,
		TimeZoneID: testZone,
		LocalDate:  "2024-2-10",
	}

	err := q.Validate()

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidArgument))
}

func TestStorageReadFailureIsNotTreatedAsMiss(t *testing.T) {
	insights := new(mockInsightRepo)
	profiles := new(mockProfileRepo)
	gen := new(mockGenerator)
	pub := new(mockPublisher)

	insights.On("Get", mock.Anything, testUserID, testDateKey).
		Return(nil, apperrors.NewStorageError("failed to read insight"))

	h := newHandler(insights, profiles, gen, pub)
	_, err := h.Handle(context.Background(), validQuery())

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStorage))
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerationFailurePropagatesUnchanged(t *testing.T) {
	for _, tc := range []struct {
		name string
		err  error
		want apperrors.ErrorType
	}{
		{"timeout", apperrors.NewDeadlineExceeded("generation timed out"), apperrors.ErrorTypeDeadlineExceeded},
		{"provider error", apperrors.NewGenerationFailed("generation failed"), apperrors.ErrorTypeGenerationFailed},
	} {
		t.Run(tc.name, func(t *testing.T) {
			insights := new(mockInsightRepo)
			profiles := new(mockProfileRepo)
			gen := new(mockGenerator)
			pub := new(mockPublisher)

			insights.On("Get", mock.Anything, testUserID, testDateKey).Return(nil, nil)
			profiles.On("GetBirthProfile", mock.Anything, testUserID).Return(nil, nil)
			gen.On("Generate", mock.Anything, mock.Anything).Return("", tc.err)

			h := newHandler(insights, profiles, gen, pub)
			_, err := h.Handle(context.Background(), validQuery())

			assert.True(t, apperrors.IsType(err, tc.want))
			insights.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestPersistFailureIsFatal(t *testing.T) {
	insights := new(mockInsightRepo)
	profiles := new(mockProfileRepo)
	gen := new(mockGenerator)
	pub := new(mockPublisher)

	insights.On("Get", mock.Anything, testUserID, testDateKey).Return(nil, nil)
	profiles.On("GetBirthProfile", mock.Anything, testUserID).Return(nil, nil)
	gen.On("Generate", mock.Anything, mock.Anything).Return(longText, nil)
	insights.On("Put", mock.Anything, testUserID, testDateKey, mock.Anything).
		Return(apperrors.NewStorageError("failed to store insight"))

	h := newHandler(insights, profiles, gen, pub)
	_, err := h.Handle(context.Background(), validQuery())

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStorage))
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	insights := new(mockInsightRepo)
	profiles := new(mockProfileRepo)
	gen := new(mockGenerator)
	pub := new(mockPublisher)

	insights.On("Get", mock.Anything, testUserID, testDateKey).Return(nil, nil)
	profiles.On("GetBirthProfile", mock.Anything, testUserID).Return(nil, nil)
	gen.On("Generate", mock.Anything, mock.Anything).Return(longText, nil)
	insights.On("Put", mock.Anything, testUserID, testDateKey, mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, mock.Anything).Return(apperrors.NewInternalError("bus unavailable"))

	h := newHandler(insights, profiles, gen, pub)
	result, err := h.Handle(context.Background(), validQuery())

	require.NoError(t, err)
	assert.True(t, strings.Contains(result.(*insight.Insight).InsightText, "steadiness"))
}
