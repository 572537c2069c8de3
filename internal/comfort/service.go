package comfort

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/couchcryptid/thermal-comfort-service/internal/observability"
)

// ErrNotReady is returned by Assess when no predictor is attached.
var ErrNotReady = errors.New("no predictor attached")

// Publisher receives every completed assessment.
type Publisher interface {
	Publish(ctx context.Context, a domain.Assessment) error
}

// Service runs one assessment per request: validate, aggregate, predict,
// classify, publish.
type Service struct {
	catalog   *domain.Catalog
	predictor domain.Predictor
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Service. Pass a nil publisher to disable assessment events.
func New(catalog *domain.Catalog, predictor domain.Predictor, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	s := &Service{
		catalog:   catalog,
		predictor: predictor,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
	if predictor != nil {
		metrics.ModelLoaded.Set(1)
	}
	if publisher != nil {
		metrics.EventsEnabled.Set(1)
	}
	return s
}

// Catalog returns the garment and activity tables the service resolves against.
func (s *Service) Catalog() *domain.Catalog { return s.catalog }

// CheckReadiness returns nil once a predictor is attached.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.predictor == nil {
		return ErrNotReady
	}
	return nil
}

// Assess turns a selection into a classified assessment. It returns either a
// complete assessment or an error; nothing is published on failure.
func (s *Service) Assess(ctx context.Context, sel domain.Selection) (domain.Assessment, error) {
	if s.predictor == nil {
		return domain.Assessment{}, ErrNotReady
	}

	if err := domain.ValidateEnvironment(sel.Temperature, sel.Humidity); err != nil {
		s.metrics.AssessmentErrors.WithLabelValues("out_of_range").Inc()
		return domain.Assessment{}, err
	}

	features, err := s.catalog.Aggregate(sel)
	if err != nil {
		s.metrics.AssessmentErrors.WithLabelValues("invalid_selection").Inc()
		return domain.Assessment{}, err
	}

	start := time.Now()
	pmv, err := s.predictor.Predict(ctx, features)
	s.metrics.PredictDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.AssessmentErrors.WithLabelValues("predict").Inc()
		s.logger.Error("prediction failed", "error", err, "features", features.Values())
		return domain.Assessment{}, fmt.Errorf("predict: %w", err)
	}
	if math.IsNaN(pmv) || math.IsInf(pmv, 0) {
		s.metrics.AssessmentErrors.WithLabelValues("invalid_prediction").Inc()
		s.logger.Error("model returned non-finite value", "pmv", pmv, "features", features.Values())
		return domain.Assessment{}, fmt.Errorf("%w: model returned %g", domain.ErrInvalidPrediction, pmv)
	}

	a := domain.NewAssessment(sel, features, pmv)
	s.metrics.Assessments.WithLabelValues(a.Result.Sensation.Key()).Inc()
	s.metrics.PMV.Observe(pmv)
	s.logger.Debug("assessment complete",
		"id", a.ID,
		"pmv", pmv,
		"sensation", a.Result.Sensation.Key(),
	)

	s.publish(ctx, a)
	return a, nil
}

// publish hands the assessment to the event stream. Failures are logged and
// counted but never fail the request.
func (s *Service) publish(ctx context.Context, a domain.Assessment) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, a); err != nil {
		s.metrics.EventsPublished.WithLabelValues("error").Inc()
		s.logger.Warn("publish assessment failed", "error", err, "id", a.ID)
		return
	}
	s.metrics.EventsPublished.WithLabelValues("success").Inc()
}
