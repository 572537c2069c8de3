package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/thermal-comfort-service/internal/adapter/artifact"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, file artifact.File) artifact.Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, artifact.Write(path, file))
	m, err := artifact.Load(path)
	require.NoError(t, err)
	return m
}

func TestChainTree_Layout(t *testing.T) {
	tree := chainTree(0, 0, 4, 4, 1)
	require.Len(t, tree.Nodes, 7)

	assert.Equal(t, artifact.Node{Feature: 0, Threshold: 1, Left: 1, Right: 2}, tree.Nodes[0])
	assert.Equal(t, artifact.Node{Left: -1, Right: -1, Value: 0.5}, tree.Nodes[1])
	assert.Equal(t, artifact.Node{Feature: 0, Threshold: 3, Left: 5, Right: 6}, tree.Nodes[4])
	assert.Equal(t, artifact.Node{Left: -1, Right: -1, Value: 3.5}, tree.Nodes[6])
}

func TestBoostedFile_ApproximatesLinear(t *testing.T) {
	catalog := domain.DefaultCatalog()
	const bins = 32
	linear := load(t, linearFile())
	boosted := load(t, boostedFile(catalog, bins))
	assert.Equal(t, artifact.KindGradientBoosting, boosted.Kind())

	// Each tree is off by at most half a bin of its feature's slope.
	tolerance := 0.0
	for f, r := range featureRanges(catalog) {
		tolerance += abs(coefficients[f]) * (r[1] - r[0]) / bins / 2
	}

	ctx := context.Background()
	refs, err := references(ctx, catalog, linear)
	require.NoError(t, err)
	for _, ref := range refs {
		features, err := catalog.Aggregate(ref.Selection)
		require.NoError(t, err)
		got, err := boosted.Predict(ctx, features)
		require.NoError(t, err)
		assert.InDelta(t, ref.PMV, got, tolerance, "%+v", ref.Selection)
	}
}

func TestReferences_Grid(t *testing.T) {
	catalog := domain.DefaultCatalog()
	refs, err := references(context.Background(), catalog, load(t, linearFile()))
	require.NoError(t, err)
	require.Len(t, refs, len(referenceTemperatures)*len(referenceOutfits)*len(referenceActivities))

	first := refs[0]
	assert.Equal(t, domain.Selection{Temperature: 10, Humidity: 50, Activity: "Sleeping"}, first.Selection)
	assert.InDelta(t, -5.675, first.PMV, 1e-9)
	assert.Equal(t, "cold", first.Sensation)
}

func TestReferences_MatchShippedFile(t *testing.T) {
	catalog := domain.DefaultCatalog()
	refs, err := references(context.Background(), catalog, load(t, linearFile()))
	require.NoError(t, err)

	shipped, err := artifact.LoadReferences("../../models/pmv_linear.reference.json")
	require.NoError(t, err)
	require.Len(t, shipped, len(refs))
	for i := range refs {
		assert.Equal(t, shipped[i].Selection, refs[i].Selection)
		assert.InDelta(t, shipped[i].PMV, refs[i].PMV, 1e-9)
		assert.Equal(t, shipped[i].Sensation, refs[i].Sensation)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
