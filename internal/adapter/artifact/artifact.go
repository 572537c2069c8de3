// Package artifact loads serialized regression models from disk.
//
// An artifact is a JSON document:
//
//	{
//	  "kind": "linear" | "gradient_boosting",
//	  "features": ["temperature", "humidity", "met", "clo"],
//	  ...kind-specific fields
//	}
//
// The feature list must match the order of domain.FeatureVector exactly; an
// artifact trained on a different column order is rejected at load time
// rather than silently mispredicting.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

// Model kinds understood by Decode.
const (
	KindLinear           = "linear"
	KindGradientBoosting = "gradient_boosting"
)

// File is the on-disk artifact layout.
type File struct {
	Kind     string   `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Features []string `json:"features"`

	// Linear models.
	Intercept    float64   `json:"intercept,omitempty"`
	Coefficients []float64 `json:"coefficients,omitempty"`

	// Gradient boosting models.
	Init         float64 `json:"init,omitempty"`
	LearningRate float64 `json:"learning_rate,omitempty"`
	Trees        []Tree  `json:"trees,omitempty"`
}

// Model is a loaded artifact ready to predict.
type Model interface {
	domain.Predictor
	// Kind returns the artifact kind, e.g. "linear".
	Kind() string
}

// Load reads and validates the artifact at path.
func Load(path string) (Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model artifact: %w", err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load model artifact %s: %w", path, err)
	}
	return m, nil
}

// Decode parses and validates an artifact from r.
func Decode(r io.Reader) (Model, error) {
	var file File
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if err := checkFeatures(file.Features); err != nil {
		return nil, err
	}

	switch file.Kind {
	case KindLinear:
		return newLinear(file)
	case KindGradientBoosting:
		return newGradientBoosting(file)
	case "":
		return nil, errors.New("artifact kind is missing")
	default:
		return nil, fmt.Errorf("unsupported artifact kind %q", file.Kind)
	}
}

// Write encodes file as indented JSON at path.
func Write(path string, file File) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

func checkFeatures(features []string) error {
	if len(features) != len(domain.FeatureNames) {
		return fmt.Errorf("artifact declares %d features, want %d", len(features), len(domain.FeatureNames))
	}
	for i, name := range domain.FeatureNames {
		if features[i] != name {
			return fmt.Errorf("artifact feature %d is %q, want %q", i, features[i], name)
		}
	}
	return nil
}
