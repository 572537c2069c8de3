// Command validate checks a PMV model before it is deployed: the artifact
// loads, agrees with its recorded reference predictions, stays finite across
// the whole input domain, warms with temperature, and reaches every sensation
// bucket. It can check a local artifact or a running model server.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -model models/pmv_linear.json \
//	  -references models/pmv_linear.reference.json
//
//	go run ./cmd/validate -model-url http://localhost:8000
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/adapter/artifact"
	"github.com/couchcryptid/thermal-comfort-service/internal/adapter/modelserver"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/fatih/color"
)

type options struct {
	modelPath  string
	modelURL   string
	references string
	timeout    time.Duration
	tolerance  float64
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name    string
	skipped bool
	errors  []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// maxReported caps the detailed errors printed per phase.
const maxReported = 20

func main() {
	var opts options
	flag.StringVar(&opts.modelPath, "model", "", "path to a model artifact")
	flag.StringVar(&opts.modelURL, "model-url", "", "base URL of a model server (instead of -model)")
	flag.StringVar(&opts.references, "references", "", "reference predictions to compare against (optional)")
	flag.DurationVar(&opts.timeout, "timeout", 5*time.Second, "model server request timeout")
	flag.Float64Var(&opts.tolerance, "tolerance", 1e-6, "allowed PMV difference from the references")
	flag.Parse()

	if (opts.modelPath == "") == (opts.modelURL == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -model or -model-url is required")
		flag.Usage()
		os.Exit(2)
	}

	if code := run(context.Background(), os.Stdout, opts); code != 0 {
		os.Exit(code)
	}
}

func run(ctx context.Context, w io.Writer, opts options) int {
	fmt.Fprintln(w, "=== PMV Model Validation ===")
	fmt.Fprintln(w)

	predictor, desc, err := openPredictor(opts)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}
	fmt.Fprintf(w, "Model: %s\n", desc)

	var refs []artifact.Reference
	if opts.references != "" {
		refs, err = artifact.LoadReferences(opts.references)
		if err != nil {
			fmt.Fprintf(w, "FATAL: %v\n", err)
			return 1
		}
	}

	catalog := domain.DefaultCatalog()
	grid := newGrid(catalog)
	preds, err := predictGrid(ctx, predictor, grid)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateReferences(ctx, catalog, predictor, refs, opts.tolerance),
		validateFinite(grid, preds),
		validateMonotonic(ctx, catalog, predictor),
		validateCoverage(preds),
	}

	fmt.Fprintln(w)
	allPassed := true
	for _, p := range phases {
		var status string
		switch {
		case p.skipped:
			status = color.YellowString("SKIP")
		case p.passed():
			status = color.GreenString("PASS")
		default:
			status = color.RedString("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Predictions: %d grid points, %d references\n", len(grid), len(refs))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == maxReported {
				fmt.Fprintf(w, "  ... %d more\n", len(p.errors)-maxReported)
				break
			}
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

func openPredictor(opts options) (domain.Predictor, string, error) {
	if opts.modelURL != "" {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		return modelserver.NewClient(opts.modelURL, opts.timeout, logger), "model server " + opts.modelURL, nil
	}
	m, err := artifact.Load(opts.modelPath)
	if err != nil {
		return nil, "", fmt.Errorf("load model: %w", err)
	}
	return m, fmt.Sprintf("%s artifact %s", m.Kind(), opts.modelPath), nil
}

// ── Input grid ──

// newGrid spans the accepted temperature and humidity ranges for every
// activity, with no clothing, each garment alone, and the full wardrobe.
func newGrid(catalog *domain.Catalog) []domain.FeatureVector {
	outfits := []domain.GarmentSet{{}}
	for _, g := range catalog.Garments() {
		outfits = append(outfits, domain.NewGarmentSet(g))
	}
	outfits = append(outfits, domain.NewGarmentSet(catalog.Garments()...))

	var grid []domain.FeatureVector
	for t := domain.MinTemperature; t <= domain.MaxTemperature; t += 5 {
		for _, h := range []float64{domain.MinHumidity, 50, domain.MaxHumidity} {
			for _, a := range catalog.Activities() {
				for _, o := range outfits {
					grid = append(grid, domain.NewFeatureVector(t, h, o, a))
				}
			}
		}
	}
	return grid
}

func predictGrid(ctx context.Context, p domain.Predictor, grid []domain.FeatureVector) ([]float64, error) {
	preds := make([]float64, len(grid))
	for i, x := range grid {
		pmv, err := p.Predict(ctx, x)
		if err != nil {
			return nil, fmt.Errorf("predict %+v: %w", x, err)
		}
		preds[i] = pmv
	}
	return preds, nil
}

// ── Phase 1: Reference Predictions ──

func validateReferences(ctx context.Context, catalog *domain.Catalog, p domain.Predictor, refs []artifact.Reference, tolerance float64) *phase {
	ph := &phase{name: "Phase 1: Reference Predictions"}
	if len(refs) == 0 {
		ph.skipped = true
		return ph
	}
	for i, ref := range refs {
		features, err := catalog.Aggregate(ref.Selection)
		if err != nil {
			ph.errorf("reference %d: %v", i, err)
			continue
		}
		pmv, err := p.Predict(ctx, features)
		if err != nil {
			ph.errorf("reference %d: predict: %v", i, err)
			continue
		}
		if math.Abs(pmv-ref.PMV) > tolerance {
			ph.errorf("reference %d (%s): pmv expected %g, got %g", i, describe(ref.Selection), ref.PMV, pmv)
		}
		if got := domain.Classify(pmv).Key(); got != ref.Sensation {
			ph.errorf("reference %d (%s): sensation expected %s, got %s", i, describe(ref.Selection), ref.Sensation, got)
		}
	}
	return ph
}

func describe(sel domain.Selection) string {
	return fmt.Sprintf("%g °C, %g %%, %s, %d garments", sel.Temperature, sel.Humidity, sel.Activity, len(sel.Clothing))
}

// ── Phase 2: Finite Output ──

func validateFinite(grid []domain.FeatureVector, preds []float64) *phase {
	p := &phase{name: "Phase 2: Finite Output (input domain)"}
	for i, pmv := range preds {
		if math.IsNaN(pmv) || math.IsInf(pmv, 0) {
			p.errorf("%+v: pmv is %g", grid[i], pmv)
		}
	}
	return p
}

// ── Phase 3: Temperature Monotonicity ──
// A warmer room never feels cooler when everything else is held fixed.

func validateMonotonic(ctx context.Context, catalog *domain.Catalog, pred domain.Predictor) *phase {
	p := &phase{name: "Phase 3: Temperature Monotonicity"}

	all := domain.NewGarmentSet(catalog.Garments()...)
	for _, a := range catalog.Activities() {
		for _, outfit := range []domain.GarmentSet{{}, all} {
			prev := math.Inf(-1)
			for t := domain.MinTemperature; t <= domain.MaxTemperature; t++ {
				x := domain.NewFeatureVector(t, domain.DefaultHumidity, outfit, a)
				pmv, err := pred.Predict(ctx, x)
				if err != nil {
					p.errorf("%+v: predict: %v", x, err)
					break
				}
				if pmv < prev {
					p.errorf("%s, %.2f clo: pmv drops from %g to %g at %g °C", a.Name(), outfit.TotalCLO(), prev, pmv, t)
				}
				prev = pmv
			}
		}
	}
	return p
}

// ── Phase 4: Sensation Coverage ──

func validateCoverage(preds []float64) *phase {
	p := &phase{name: "Phase 4: Sensation Coverage"}
	counts := map[domain.Sensation]int{}
	for _, pmv := range preds {
		counts[domain.Classify(pmv)]++
	}
	for _, s := range domain.Sensations() {
		if counts[s] == 0 {
			p.errorf("no input in the domain predicts %s", s)
		}
	}
	return p
}
