package comfort_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/comfort"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/couchcryptid/thermal-comfort-service/internal/observability"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockPublisher struct {
	mu        sync.Mutex
	published []domain.Assessment
	err       error
}

func (m *mockPublisher) Publish(_ context.Context, a domain.Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, a)
	return nil
}

// linear mirrors the shipped sample model.
func linear() domain.PredictorFunc {
	return func(_ context.Context, f domain.FeatureVector) (float64, error) {
		return -10.105 + 0.32*f.Temperature + 0.012*f.Humidity + 0.9*f.MET + 0.85*f.CLO, nil
	}
}

func constant(pmv float64) domain.PredictorFunc {
	return func(context.Context, domain.FeatureVector) (float64, error) { return pmv, nil }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seatedShirt() domain.Selection {
	return domain.Selection{
		Temperature: 25,
		Humidity:    50,
		Clothing:    []string{"Shirt"},
		Activity:    "Seated, quiet",
	}
}

// --- tests ---

func TestService_Assess_HappyPath(t *testing.T) {
	fixed := time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { domain.SetClock(nil) })

	metrics := observability.NewMetricsForTesting()
	pub := &mockPublisher{}
	svc := comfort.New(domain.DefaultCatalog(), linear(), pub, discardLogger(), metrics)

	got, err := svc.Assess(context.Background(), seatedShirt())
	require.NoError(t, err)

	want := domain.Assessment{
		ID:         got.ID,
		Selection:  seatedShirt(),
		Features:   domain.FeatureVector{Temperature: 25, Humidity: 50, MET: 1.0, CLO: 0.61},
		Result:     domain.PmvResult{Value: got.Result.Value, Sensation: domain.Neutral},
		AssessedAt: fixed,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("assessment mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, -0.0865, got.Result.Value, 1e-9)
	assert.Equal(t, "-0.09", domain.FormatPMV(got.Result.Value))

	require.Len(t, pub.published, 1)
	assert.Equal(t, got.ID, pub.published[0].ID)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Assessments.WithLabelValues("neutral")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.EventsPublished.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ModelLoaded))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.EventsEnabled))
}

func TestService_Assess_Sensations(t *testing.T) {
	tests := []struct {
		pmv  float64
		want domain.Sensation
	}{
		{3.5, domain.Hot},
		{2.5, domain.Warm},
		{1.0, domain.SlightlyWarm},
		{0.0, domain.Neutral},
		{-1.0, domain.SlightlyCool},
		{-2.5, domain.Cool},
		{-3.0, domain.Cold},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			svc := comfort.New(domain.DefaultCatalog(), constant(tt.pmv), nil, discardLogger(), observability.NewMetricsForTesting())
			a, err := svc.Assess(context.Background(), seatedShirt())
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Result.Sensation)
		})
	}
}

func TestService_Assess_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		sel  domain.Selection
	}{
		{"too cold", domain.Selection{Temperature: -20, Humidity: 50, Activity: "Sleeping"}},
		{"too hot", domain.Selection{Temperature: 50.5, Humidity: 50, Activity: "Sleeping"}},
		{"negative humidity", domain.Selection{Temperature: 20, Humidity: -1, Activity: "Sleeping"}},
		{"humidity above 100", domain.Selection{Temperature: 20, Humidity: 101, Activity: "Sleeping"}},
		{"nan temperature", domain.Selection{Temperature: math.NaN(), Humidity: 50, Activity: "Sleeping"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := observability.NewMetricsForTesting()
			pub := &mockPublisher{}
			svc := comfort.New(domain.DefaultCatalog(), linear(), pub, discardLogger(), metrics)

			_, err := svc.Assess(context.Background(), tt.sel)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrOutOfRange)
			assert.Empty(t, pub.published)
			assert.Equal(t, float64(1), testutil.ToFloat64(metrics.AssessmentErrors.WithLabelValues("out_of_range")))
		})
	}
}

func TestService_Assess_BoundsInclusive(t *testing.T) {
	svc := comfort.New(domain.DefaultCatalog(), linear(), nil, discardLogger(), observability.NewMetricsForTesting())
	for _, sel := range []domain.Selection{
		{Temperature: domain.MinTemperature, Humidity: domain.MinHumidity, Activity: "Sleeping"},
		{Temperature: domain.MaxTemperature, Humidity: domain.MaxHumidity, Activity: "Sleeping"},
	} {
		_, err := svc.Assess(context.Background(), sel)
		assert.NoError(t, err)
	}
}

func TestService_Assess_InvalidSelection(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	calls := 0
	predictor := domain.PredictorFunc(func(context.Context, domain.FeatureVector) (float64, error) {
		calls++
		return 0, nil
	})
	svc := comfort.New(domain.DefaultCatalog(), predictor, nil, discardLogger(), metrics)

	sel := seatedShirt()
	sel.Clothing = []string{"Shirt", "Space Suit"}
	_, err := svc.Assess(context.Background(), sel)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)
	assert.Contains(t, err.Error(), "Space Suit")
	assert.Equal(t, 0, calls, "predictor must not run on invalid input")
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.AssessmentErrors.WithLabelValues("invalid_selection")))
}

func TestService_Assess_PredictorError(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	boom := errors.New("model exploded")
	predictor := domain.PredictorFunc(func(context.Context, domain.FeatureVector) (float64, error) {
		return 0, boom
	})
	pub := &mockPublisher{}
	svc := comfort.New(domain.DefaultCatalog(), predictor, pub, discardLogger(), metrics)

	_, err := svc.Assess(context.Background(), seatedShirt())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, pub.published)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.AssessmentErrors.WithLabelValues("predict")))
}

func TestService_Assess_NonFinitePrediction(t *testing.T) {
	for _, pmv := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		metrics := observability.NewMetricsForTesting()
		svc := comfort.New(domain.DefaultCatalog(), constant(pmv), nil, discardLogger(), metrics)

		_, err := svc.Assess(context.Background(), seatedShirt())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidPrediction)
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.AssessmentErrors.WithLabelValues("invalid_prediction")))
	}
}

func TestService_Assess_PublishFailureDoesNotFail(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	pub := &mockPublisher{err: errors.New("broker down")}
	svc := comfort.New(domain.DefaultCatalog(), linear(), pub, discardLogger(), metrics)

	a, err := svc.Assess(context.Background(), seatedShirt())
	require.NoError(t, err)
	assert.Equal(t, domain.Neutral, a.Result.Sensation)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.EventsPublished.WithLabelValues("error")))
}

func TestService_Assess_Deterministic(t *testing.T) {
	svc := comfort.New(domain.DefaultCatalog(), linear(), nil, discardLogger(), observability.NewMetricsForTesting())

	sel := domain.Selection{
		Temperature: 22,
		Humidity:    65,
		Clothing:    []string{"Socks", "Shirt", "Thick Trousers"},
		Activity:    "Typing",
	}
	first, err := svc.Assess(context.Background(), sel)
	require.NoError(t, err)

	sel.Clothing = []string{"Thick Trousers", "Shirt", "Socks"}
	second, err := svc.Assess(context.Background(), sel)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Features, second.Features)
	assert.Equal(t, first.Result, second.Result)
}

func TestService_NoPredictor(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	svc := comfort.New(domain.DefaultCatalog(), nil, nil, discardLogger(), metrics)

	assert.ErrorIs(t, svc.CheckReadiness(context.Background()), comfort.ErrNotReady)
	_, err := svc.Assess(context.Background(), seatedShirt())
	assert.ErrorIs(t, err, comfort.ErrNotReady)
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.ModelLoaded))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.EventsEnabled))
}

func TestService_Ready(t *testing.T) {
	svc := comfort.New(domain.DefaultCatalog(), linear(), nil, discardLogger(), observability.NewMetricsForTesting())
	assert.NoError(t, svc.CheckReadiness(context.Background()))
	assert.Same(t, domain.DefaultCatalog(), svc.Catalog())
}
