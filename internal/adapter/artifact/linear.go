package artifact

import (
	"context"
	"fmt"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

// Linear predicts intercept + Σ coefficient[i] * feature[i].
type Linear struct {
	intercept    float64
	coefficients [4]float64
}

func newLinear(file File) (*Linear, error) {
	if len(file.Coefficients) != len(domain.FeatureNames) {
		return nil, fmt.Errorf("linear artifact has %d coefficients, want %d", len(file.Coefficients), len(domain.FeatureNames))
	}
	m := &Linear{intercept: file.Intercept}
	copy(m.coefficients[:], file.Coefficients)
	return m, nil
}

// Kind implements Model.
func (m *Linear) Kind() string { return KindLinear }

// Predict implements domain.Predictor.
func (m *Linear) Predict(_ context.Context, features domain.FeatureVector) (float64, error) {
	score := m.intercept
	for i, x := range features.Values() {
		score += m.coefficients[i] * x
	}
	return score, nil
}
