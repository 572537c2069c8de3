package domain

import "context"

// Predictor estimates PMV from a feature vector. Implementations are loaded
// once and must return the same value for the same vector.
type Predictor interface {
	Predict(ctx context.Context, features FeatureVector) (float64, error)
}

// PredictorFunc adapts a plain function to Predictor.
type PredictorFunc func(ctx context.Context, features FeatureVector) (float64, error)

// Predict calls f.
func (f PredictorFunc) Predict(ctx context.Context, features FeatureVector) (float64, error) {
	return f(ctx, features)
}
