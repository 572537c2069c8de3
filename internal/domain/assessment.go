package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
)

// PmvResult is a predicted PMV and its bucket on the sensation scale.
type PmvResult struct {
	Value     float64   `json:"pmv"`
	Sensation Sensation `json:"sensation"`
}

// NewPmvResult classifies a predicted value.
func NewPmvResult(pmv float64) PmvResult {
	return PmvResult{Value: pmv, Sensation: Classify(pmv)}
}

// Assessment is one completed request: what was asked, what the model saw,
// and what came back.
type Assessment struct {
	ID         string        `json:"id"`
	Selection  Selection     `json:"selection"`
	Features   FeatureVector `json:"features"`
	Result     PmvResult     `json:"result"`
	AssessedAt time.Time     `json:"assessed_at"`
}

// NewAssessment assembles an assessment and stamps it with the package clock.
func NewAssessment(sel Selection, features FeatureVector, pmv float64) Assessment {
	return Assessment{
		ID:         assessmentID(sel),
		Selection:  sel,
		Features:   features,
		Result:     NewPmvResult(pmv),
		AssessedAt: clock.Now().UTC(),
	}
}

// assessmentID hashes the inputs so identical submissions share an ID.
// Clothing is hashed as the set the catalog resolves: order and repeats do
// not matter.
func assessmentID(sel Selection) string {
	clothing := slices.Clone(sel.Clothing)
	sort.Strings(clothing)
	clothing = slices.Compact(clothing)

	input := fmt.Sprintf("%g|%g|%s|%s", sel.Temperature, sel.Humidity, sel.Activity, strings.Join(clothing, ","))
	hash := sha256.Sum256([]byte(input))
	return "pmv-" + hex.EncodeToString(hash[:8])
}

// FormatPMV renders a PMV value with two decimals.
func FormatPMV(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// FormatCLO renders a clothing total with two decimals.
func FormatCLO(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// FormatMET renders a metabolic rate as listed in the catalog, keeping at
// least one decimal ("1.0", "2.6").
func FormatMET(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
