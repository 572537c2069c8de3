package main

import (
	"context"
	"fmt"
	"math"

	"github.com/couchcryptid/thermal-comfort-service/internal/adapter/artifact"
	kafkaadapter "github.com/couchcryptid/thermal-comfort-service/internal/adapter/kafka"
	"github.com/couchcryptid/thermal-comfort-service/internal/adapter/modelserver"
	"github.com/couchcryptid/thermal-comfort-service/internal/comfort"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

// stack is the assessment service plus the resources it owns.
type stack struct {
	service *comfort.Service
	writer  *kafkaadapter.Writer
}

// buildStack loads the predictor, checks it with one warm-up prediction and
// wires the comfort service. A model that cannot be loaded or fails the
// warm-up is a startup error.
func (a *app) buildStack(ctx context.Context) (*stack, error) {
	metrics := a.newMetrics()

	predictor, err := a.loadPredictor()
	if err != nil {
		return nil, err
	}
	if size := a.cfg.PredictionCacheSize; size > 0 {
		predictor = modelserver.NewCachedPredictor(predictor, size, metrics)
	}

	catalog := domain.DefaultCatalog()
	if err := warmUp(ctx, catalog, predictor); err != nil {
		return nil, err
	}

	s := &stack{}
	var publisher comfort.Publisher
	if a.cfg.EventsEnabled {
		s.writer = kafkaadapter.NewWriter(a.cfg, a.logger)
		publisher = s.writer
		a.logger.Info("assessment events enabled", "topic", a.cfg.KafkaTopic, "brokers", a.cfg.KafkaBrokers)
	}

	s.service = comfort.New(catalog, predictor, publisher, a.logger, metrics)
	return s, nil
}

func (a *app) loadPredictor() (domain.Predictor, error) {
	if a.cfg.ModelURL != "" {
		a.logger.Debug("using remote model server", "url", a.cfg.ModelURL, "timeout", a.cfg.ModelTimeout)
		return modelserver.NewClient(a.cfg.ModelURL, a.cfg.ModelTimeout, a.logger), nil
	}

	model, err := artifact.Load(a.cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	a.logger.Debug("model loaded", "path", a.cfg.ModelPath, "kind", model.Kind())
	return model, nil
}

// warmUp predicts once at the default conditions.
func warmUp(ctx context.Context, catalog *domain.Catalog, p domain.Predictor) error {
	features, err := catalog.Aggregate(domain.Selection{
		Temperature: domain.DefaultTemperature,
		Humidity:    domain.DefaultHumidity,
		Activity:    catalog.DefaultActivity().Name(),
	})
	if err != nil {
		return fmt.Errorf("warm-up: %w", err)
	}
	pmv, err := p.Predict(ctx, features)
	if err != nil {
		return fmt.Errorf("warm-up prediction: %w", err)
	}
	if math.IsNaN(pmv) || math.IsInf(pmv, 0) {
		return fmt.Errorf("warm-up prediction: %w: %v", domain.ErrInvalidPrediction, pmv)
	}
	return nil
}

func (s *stack) close(a *app) {
	if s.writer == nil {
		return
	}
	if err := s.writer.Close(); err != nil {
		a.logger.Error("kafka writer close error", "error", err)
	}
}
