// Package render writes assessments and the catalog for terminal output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Output formats accepted by the CLI.
const (
	TextOut = "text"
	JSONOut = "json"
)

// Colors per side of the scale.
var (
	HotColor     = color.New(color.FgRed, color.Bold)
	WarmColor    = color.New(color.FgYellow)
	NeutralColor = color.New(color.FgGreen)
	CoolColor    = color.New(color.FgCyan)
	ColdColor    = color.New(color.FgBlue, color.Bold)
)

// SensationColor returns the console color for a sensation.
func SensationColor(s domain.Sensation) *color.Color {
	switch s {
	case domain.Hot:
		return HotColor
	case domain.Warm, domain.SlightlyWarm:
		return WarmColor
	case domain.Neutral:
		return NeutralColor
	case domain.SlightlyCool, domain.Cool:
		return CoolColor
	default:
		return ColdColor
	}
}

// PlainLabel returns the marker and label, e.g. "🟥 Slightly Warm".
func PlainLabel(s domain.Sensation) string {
	return s.Marker() + " " + s.String()
}

// ColorLabel returns PlainLabel colored for the console.
func ColorLabel(s domain.Sensation) string {
	return SensationColor(s).Sprint(PlainLabel(s))
}

// ValidOutput reports whether format is a supported output format.
func ValidOutput(format string) bool {
	return format == TextOut || format == JSONOut
}

// WriteAssessment dispatches on the output format.
func WriteAssessment(w io.Writer, a domain.Assessment, format string) error {
	switch format {
	case JSONOut:
		return writeAssessmentJSON(w, a)
	case TextOut, "":
		return writeAssessmentText(w, a)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeAssessmentText(w io.Writer, a domain.Assessment) error {
	clothing := "none"
	if len(a.Selection.Clothing) > 0 {
		clothing = strings.Join(a.Selection.Clothing, ", ")
	}
	_, err := fmt.Fprintf(w,
		"PMV:        %s\nSensation:  %s\nTotal CLO:  %s\nMET:        %s (%s)\nClothing:   %s\n",
		domain.FormatPMV(a.Result.Value),
		ColorLabel(a.Result.Sensation),
		domain.FormatCLO(a.Features.CLO),
		domain.FormatMET(a.Features.MET),
		a.Selection.Activity,
		clothing,
	)
	return err
}

func writeAssessmentJSON(w io.Writer, a domain.Assessment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}

// WriteCatalog prints the garment and activity tables.
func WriteCatalog(w io.Writer, c *domain.Catalog) error {
	garments := tablewriter.NewWriter(w)
	garments.Header([]string{"#", "Garment", "CLO"})
	garments.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var rows [][]string
	for i, g := range c.Garments() {
		rows = append(rows, []string{fmt.Sprint(i + 1), g.Name(), domain.FormatCLO(g.CLO())})
	}
	if err := garments.Bulk(rows); err != nil {
		return err
	}
	if err := garments.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	activities := tablewriter.NewWriter(w)
	activities.Header([]string{"#", "Activity", "MET"})
	activities.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	rows = rows[:0]
	for i, a := range c.Activities() {
		rows = append(rows, []string{fmt.Sprint(i + 1), a.Name(), domain.FormatMET(a.MET())})
	}
	if err := activities.Bulk(rows); err != nil {
		return err
	}
	return activities.Render()
}
