package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

//go:embed templates/form.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

type formView struct {
	Temperature string
	Humidity    string
	Bounds      boundsInfo
	Garments    []garmentOption
	Activities  []activityOption
	Result      *resultView
	Error       string
}

type garmentOption struct {
	Name    string
	CLO     string
	Checked bool
}

type activityOption struct {
	Name     string
	MET      string
	Selected bool
}

type resultView struct {
	PMV       string
	Label     string
	Marker    string
	Sensation string
	CLO       string
	MET       string
}

// newFormView builds the form state for the given inputs. An empty activity
// selects the catalog default.
func newFormView(c *domain.Catalog, temperature, humidity string, clothing []string, activity string) formView {
	if activity == "" {
		activity = c.DefaultActivity().Name()
	}
	v := formView{
		Temperature: temperature,
		Humidity:    humidity,
		Bounds: boundsInfo{
			Temperature: [2]float64{domain.MinTemperature, domain.MaxTemperature},
			Humidity:    [2]float64{domain.MinHumidity, domain.MaxHumidity},
		},
	}
	for _, g := range c.Garments() {
		v.Garments = append(v.Garments, garmentOption{
			Name:    g.Name(),
			CLO:     domain.FormatCLO(g.CLO()),
			Checked: slices.Contains(clothing, g.Name()),
		})
	}
	for _, a := range c.Activities() {
		v.Activities = append(v.Activities, activityOption{
			Name:     a.Name(),
			MET:      domain.FormatMET(a.MET()),
			Selected: a.Name() == activity,
		})
	}
	return v
}

func (s *Server) handleForm(w http.ResponseWriter, _ *http.Request) {
	view := newFormView(s.assessor.Catalog(),
		strconv.FormatFloat(domain.DefaultTemperature, 'f', 1, 64),
		strconv.FormatFloat(domain.DefaultHumidity, 'f', 1, 64),
		nil, "")
	s.renderForm(w, http.StatusOK, view)
}

func (s *Server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	rawTemp := strings.TrimSpace(r.PostFormValue("temperature"))
	rawHumidity := strings.TrimSpace(r.PostFormValue("humidity"))
	clothing := r.PostForm["clothing"]
	activity := r.PostFormValue("activity")
	view := newFormView(s.assessor.Catalog(), rawTemp, rawHumidity, clothing, activity)

	sel, err := parseSelection(rawTemp, rawHumidity, clothing, activity)
	if err != nil {
		view.Error = err.Error()
		s.renderForm(w, http.StatusBadRequest, view)
		return
	}

	a, err := s.assessor.Assess(r.Context(), sel)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("assessment failed", "error", err)
		}
		view.Error = err.Error()
		s.renderForm(w, status, view)
		return
	}

	view.Result = &resultView{
		PMV:       domain.FormatPMV(a.Result.Value),
		Label:     a.Result.Sensation.String(),
		Marker:    a.Result.Sensation.Marker(),
		Sensation: a.Result.Sensation.Key(),
		CLO:       domain.FormatCLO(a.Features.CLO),
		MET:       domain.FormatMET(a.Features.MET),
	}
	s.renderForm(w, http.StatusOK, view)
}

func parseSelection(rawTemp, rawHumidity string, clothing []string, activity string) (domain.Selection, error) {
	temperature, err := strconv.ParseFloat(rawTemp, 64)
	if err != nil {
		return domain.Selection{}, fmt.Errorf("temperature must be a number, got %q", rawTemp)
	}
	humidity, err := strconv.ParseFloat(rawHumidity, 64)
	if err != nil {
		return domain.Selection{}, fmt.Errorf("humidity must be a number, got %q", rawHumidity)
	}
	return domain.Selection{
		Temperature: temperature,
		Humidity:    humidity,
		Clothing:    clothing,
		Activity:    activity,
	}, nil
}

// renderForm executes into a buffer first so a template error never sends a
// half-written page.
func (s *Server) renderForm(w http.ResponseWriter, status int, view formView) {
	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, view); err != nil {
		s.logger.Error("render form failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
