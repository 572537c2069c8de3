// Command genmodel writes a model artifact and its reference predictions.
//
// The linear artifact carries the shipped coefficients. The gradient boosting
// artifact approximates the same response with one piecewise-constant tree per
// feature, which exercises the tree evaluator against a known surface.
//
// Usage:
//
//	go run ./cmd/genmodel \
//	  -kind linear \
//	  -out models/pmv_linear.json \
//	  -references models/pmv_linear.reference.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/couchcryptid/thermal-comfort-service/internal/adapter/artifact"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

// Linear PMV response over (temperature, humidity, met, clo).
var (
	intercept    = -10.105
	coefficients = [4]float64{0.32, 0.012, 0.9, 0.85}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	kind := flag.String("kind", artifact.KindLinear, "artifact kind: linear or gradient_boosting")
	out := flag.String("out", "", "output path for the model artifact")
	refsOut := flag.String("references", "", "output path for reference predictions (optional)")
	bins := flag.Int("bins", 32, "leaves per tree for gradient_boosting")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	catalog := domain.DefaultCatalog()

	var file artifact.File
	switch *kind {
	case artifact.KindLinear:
		file = linearFile()
	case artifact.KindGradientBoosting:
		if *bins < 2 {
			return fmt.Errorf("-bins must be at least 2, got %d", *bins)
		}
		file = boostedFile(catalog, *bins)
	default:
		return fmt.Errorf("unknown kind %q", *kind)
	}

	if err := artifact.Write(*out, file); err != nil {
		return err
	}
	log.Printf("wrote %s artifact %s", file.Kind, *out)

	if *refsOut == "" {
		return nil
	}

	model, err := artifact.Load(*out)
	if err != nil {
		return fmt.Errorf("reload %s: %w", *out, err)
	}
	refs, err := references(context.Background(), catalog, model)
	if err != nil {
		return err
	}
	if err := artifact.WriteReferences(*refsOut, refs); err != nil {
		return err
	}
	log.Printf("wrote %d references %s", len(refs), *refsOut)
	return nil
}

func linearFile() artifact.File {
	return artifact.File{
		Kind:         artifact.KindLinear,
		Name:         "pmv-linear-v1",
		Features:     domain.FeatureNames[:],
		Intercept:    intercept,
		Coefficients: coefficients[:],
	}
}

// boostedFile builds one chain-shaped tree per feature. Each tree splits the
// feature's range into equal bins and returns the linear contribution at the
// bin midpoint.
func boostedFile(catalog *domain.Catalog, bins int) artifact.File {
	ranges := featureRanges(catalog)
	trees := make([]artifact.Tree, len(ranges))
	for f, r := range ranges {
		trees[f] = chainTree(f, r[0], r[1], bins, coefficients[f])
	}
	return artifact.File{
		Kind:         artifact.KindGradientBoosting,
		Name:         fmt.Sprintf("pmv-binned-%d", bins),
		Features:     domain.FeatureNames[:],
		Init:         intercept,
		LearningRate: 1,
		Trees:        trees,
	}
}

// featureRanges returns [lo, hi] for each feature in vector order.
func featureRanges(catalog *domain.Catalog) [4][2]float64 {
	minMET, maxMET := catalog.Activities()[0].MET(), 0.0
	for _, a := range catalog.Activities() {
		minMET = min(minMET, a.MET())
		maxMET = max(maxMET, a.MET())
	}
	all := domain.NewGarmentSet(catalog.Garments()...)
	return [4][2]float64{
		{domain.MinTemperature, domain.MaxTemperature},
		{domain.MinHumidity, domain.MaxHumidity},
		{minMET, maxMET},
		{0, all.TotalCLO()},
	}
}

// chainTree lays out bins-1 splits, each with a leaf on the left and the next
// split on the right. Node 2j splits at the upper edge of bin j.
func chainTree(feature int, lo, hi float64, bins int, coef float64) artifact.Tree {
	width := (hi - lo) / float64(bins)
	nodes := make([]artifact.Node, 0, 2*bins-1)
	leaf := func(bin int) artifact.Node {
		mid := lo + width*(float64(bin)+0.5)
		return artifact.Node{Left: -1, Right: -1, Value: coef * mid}
	}
	for j := 0; j < bins-1; j++ {
		split := len(nodes)
		nodes = append(nodes,
			artifact.Node{Feature: feature, Threshold: lo + width*float64(j+1), Left: split + 1, Right: split + 2},
			leaf(j),
		)
	}
	nodes = append(nodes, leaf(bins-1))
	return artifact.Tree{Nodes: nodes}
}

// referenceTemperatures, referenceOutfits and referenceActivities span the
// reference grid at 50% humidity.
var (
	referenceTemperatures = []float64{10, 18, 22, 25, 28, 32, 38}
	referenceOutfits      = [][]string{
		nil,
		{"Shirt", "Full Cotton Pant"},
		{"Winter Jacket", "Thick Trousers", "Woolen Caps"},
	}
	referenceActivities = []string{"Sleeping", "Seated, quiet", "Walking (4.3 km/h)"}
)

func references(ctx context.Context, catalog *domain.Catalog, p domain.Predictor) ([]artifact.Reference, error) {
	refs := make([]artifact.Reference, 0, len(referenceTemperatures)*len(referenceOutfits)*len(referenceActivities))
	for _, t := range referenceTemperatures {
		for _, outfit := range referenceOutfits {
			for _, activity := range referenceActivities {
				sel := domain.Selection{Temperature: t, Humidity: 50, Clothing: outfit, Activity: activity}
				features, err := catalog.Aggregate(sel)
				if err != nil {
					return nil, err
				}
				pmv, err := p.Predict(ctx, features)
				if err != nil {
					return nil, fmt.Errorf("predict %+v: %w", sel, err)
				}
				refs = append(refs, artifact.Reference{
					Selection: sel,
					PMV:       pmv,
					Sensation: domain.Classify(pmv).Key(),
				})
			}
		}
	}
	return refs, nil
}
