package artifact

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

// Node is one entry of a flattened regression tree. A node whose Left is -1
// is a leaf carrying Value; otherwise samples with
// x[Feature] <= Threshold go to Left and the rest to Right.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// Tree is a regression tree with the root at index 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// GradientBoosting predicts init + learning_rate * Σ tree(x).
type GradientBoosting struct {
	init         float64
	learningRate float64
	trees        []Tree
}

func newGradientBoosting(file File) (*GradientBoosting, error) {
	if len(file.Trees) == 0 {
		return nil, errors.New("gradient boosting artifact has no trees")
	}
	if !(file.LearningRate > 0) || math.IsInf(file.LearningRate, 0) {
		return nil, fmt.Errorf("gradient boosting artifact has invalid learning_rate %g", file.LearningRate)
	}
	for i, tree := range file.Trees {
		if err := tree.validate(); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return &GradientBoosting{
		init:         file.Init,
		learningRate: file.LearningRate,
		trees:        file.Trees,
	}, nil
}

// Kind implements Model.
func (m *GradientBoosting) Kind() string { return KindGradientBoosting }

// Trees returns the number of boosting stages.
func (m *GradientBoosting) Trees() int { return len(m.trees) }

// Predict implements domain.Predictor.
func (m *GradientBoosting) Predict(_ context.Context, features domain.FeatureVector) (float64, error) {
	x := features.Values()
	sum := 0.0
	for _, tree := range m.trees {
		sum += tree.eval(x)
	}
	return m.init + m.learningRate*sum, nil
}

func (t Tree) eval(x [4]float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Left < 0 {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// validate checks node references. Children must point forward so evaluation
// always terminates.
func (t Tree) validate() error {
	if len(t.Nodes) == 0 {
		return errors.New("empty tree")
	}
	for i, n := range t.Nodes {
		if n.Left < 0 {
			continue
		}
		if n.Feature < 0 || n.Feature >= len(domain.FeatureNames) {
			return fmt.Errorf("node %d: feature index %d out of range", i, n.Feature)
		}
		if n.Left <= i || n.Left >= len(t.Nodes) || n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d: children (%d, %d) out of range", i, n.Left, n.Right)
		}
	}
	return nil
}
