package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/comfort"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

const maxBodyBytes = 64 << 10

type assessmentResponse struct {
	ID         string               `json:"id"`
	PMV        float64              `json:"pmv"`
	Sensation  domain.Sensation     `json:"sensation"`
	Label      string               `json:"label"`
	Marker     string               `json:"marker"`
	Display    displayFields        `json:"display"`
	Selection  domain.Selection     `json:"selection"`
	Features   domain.FeatureVector `json:"features"`
	AssessedAt time.Time            `json:"assessed_at"`
}

type displayFields struct {
	PMV string `json:"pmv"`
	CLO string `json:"clo"`
	MET string `json:"met"`
}

type catalogItem struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type catalogResponse struct {
	Garments        []catalogItem `json:"garments"`
	Activities      []catalogItem `json:"activities"`
	DefaultActivity string        `json:"default_activity"`
	Bounds          boundsInfo    `json:"bounds"`
}

type boundsInfo struct {
	Temperature [2]float64 `json:"temperature"`
	Humidity    [2]float64 `json:"humidity"`
}

func newAssessmentResponse(a domain.Assessment) assessmentResponse {
	return assessmentResponse{
		ID:        a.ID,
		PMV:       a.Result.Value,
		Sensation: a.Result.Sensation,
		Label:     a.Result.Sensation.String(),
		Marker:    a.Result.Sensation.Marker(),
		Display: displayFields{
			PMV: domain.FormatPMV(a.Result.Value),
			CLO: domain.FormatCLO(a.Features.CLO),
			MET: domain.FormatMET(a.Features.MET),
		},
		Selection:  a.Selection,
		Features:   a.Features,
		AssessedAt: a.AssessedAt,
	}
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var sel domain.Selection
	if err := dec.Decode(&sel); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	a, err := s.assessor.Assess(r.Context(), sel)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("assessment failed", "error", err)
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newAssessmentResponse(a))
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	c := s.assessor.Catalog()
	resp := catalogResponse{
		DefaultActivity: c.DefaultActivity().Name(),
		Bounds: boundsInfo{
			Temperature: [2]float64{domain.MinTemperature, domain.MaxTemperature},
			Humidity:    [2]float64{domain.MinHumidity, domain.MaxHumidity},
		},
	}
	for _, g := range c.Garments() {
		resp.Garments = append(resp.Garments, catalogItem{Name: g.Name(), Value: g.CLO()})
	}
	for _, act := range c.Activities() {
		resp.Activities = append(resp.Activities, catalogItem{Name: act.Name(), Value: act.MET()})
	}
	writeJSON(w, http.StatusOK, resp)
}

// statusFor maps assessment errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrOutOfRange), errors.Is(err, domain.ErrInvalidSelection):
		return http.StatusBadRequest
	case errors.Is(err, comfort.ErrNotReady):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
