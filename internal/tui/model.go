// Package tui is the interactive terminal form: temperature and humidity
// inputs, a clothing multi-select, an activity single-select and a Predict
// button.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

// Assessor runs one assessment. *comfort.Service satisfies it.
type Assessor interface {
	Assess(ctx context.Context, sel domain.Selection) (domain.Assessment, error)
	Catalog() *domain.Catalog
}

// Field identifies a focusable form element.
type Field int

const (
	FieldTemperature Field = iota
	FieldHumidity
	FieldClothing
	FieldActivity
	FieldPredict
	fieldCount
)

// defaultListHeight is the number of list rows shown when the terminal size
// is unknown.
const defaultListHeight = 8

// AssessmentMsg carries the outcome of a Predict press.
type AssessmentMsg struct {
	Assessment domain.Assessment
	Err        error
}

// Model is the bubbletea model for the form.
type Model struct {
	ctx      context.Context
	assessor Assessor
	keys     KeyMap
	help     help.Model
	theme    Theme

	temperature textinput.Model
	humidity    textinput.Model

	garments   []domain.Garment
	activities []domain.Activity
	clothing   domain.GarmentSet
	activity   int

	focus          Field
	garmentCursor  int
	garmentOffset  int
	activityCursor int
	activityOffset int
	listHeight     int

	result  *domain.Assessment
	err     error
	running bool
}

// New builds a form with the default temperature, humidity and activity.
func New(ctx context.Context, assessor Assessor) Model {
	catalog := assessor.Catalog()

	temperature := textinput.New()
	temperature.Placeholder = "°C"
	temperature.CharLimit = 8
	temperature.Width = 8
	temperature.SetValue(strconv.FormatFloat(domain.DefaultTemperature, 'f', 1, 64))
	temperature.Focus()

	humidity := textinput.New()
	humidity.Placeholder = "%"
	humidity.CharLimit = 8
	humidity.Width = 8
	humidity.SetValue(strconv.FormatFloat(domain.DefaultHumidity, 'f', 1, 64))

	activities := catalog.Activities()
	def := catalog.DefaultActivity()
	selected := 0
	for i, a := range activities {
		if a == def {
			selected = i
		}
	}

	return Model{
		ctx:            ctx,
		assessor:       assessor,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		theme:          DefaultTheme,
		temperature:    temperature,
		humidity:       humidity,
		garments:       catalog.Garments(),
		activities:     activities,
		activity:       selected,
		activityCursor: selected,
		listHeight:     defaultListHeight,
	}
}

// Focus returns the focused field.
func (m Model) Focus() Field { return m.focus }

// Clothing returns the selected garments.
func (m Model) Clothing() domain.GarmentSet { return m.clothing }

// Activity returns the selected activity.
func (m Model) Activity() domain.Activity { return m.activities[m.activity] }

// Result returns the last successful assessment, if any.
func (m Model) Result() (domain.Assessment, bool) {
	if m.result == nil {
		return domain.Assessment{}, false
	}
	return *m.result, true
}

// Err returns the last validation or assessment error.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Leave room for the inputs, button, result and help.
		m.listHeight = max(3, min(defaultListHeight, (msg.Height-16)/2))
		m.help.Width = msg.Width
		m.garmentOffset = scrollTo(m.garmentCursor, m.garmentOffset, m.listHeight)
		m.activityOffset = scrollTo(m.activityCursor, m.activityOffset, m.listHeight)
		return m, nil

	case AssessmentMsg:
		m.running = false
		if msg.Err != nil {
			m.err = msg.Err
			m.result = nil
			return m, nil
		}
		m.err = nil
		a := msg.Assessment
		m.result = &a
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m.setFocus((m.focus + 1) % fieldCount), nil
	case key.Matches(msg, m.keys.Prev):
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount), nil
	}

	switch m.focus {
	case FieldTemperature, FieldHumidity:
		switch {
		case key.Matches(msg, m.keys.Up):
			return m.setFocus((m.focus + fieldCount - 1) % fieldCount), nil
		case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Predict):
			return m.setFocus(m.focus + 1), nil
		}
		return m.updateInputs(msg)

	case FieldClothing:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.garmentCursor = max(0, m.garmentCursor-1)
		case key.Matches(msg, m.keys.Down):
			m.garmentCursor = min(len(m.garments)-1, m.garmentCursor+1)
		case key.Matches(msg, m.keys.Toggle):
			g := m.garments[m.garmentCursor]
			if m.clothing.Contains(g) {
				m.clothing = m.clothing.Without(g)
			} else {
				m.clothing = m.clothing.With(g)
			}
		}
		m.garmentOffset = scrollTo(m.garmentCursor, m.garmentOffset, m.listHeight)

	case FieldActivity:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.activityCursor = max(0, m.activityCursor-1)
		case key.Matches(msg, m.keys.Down):
			m.activityCursor = min(len(m.activities)-1, m.activityCursor+1)
		case key.Matches(msg, m.keys.Toggle):
			m.activity = m.activityCursor
		}
		m.activityOffset = scrollTo(m.activityCursor, m.activityOffset, m.listHeight)

	case FieldPredict:
		if key.Matches(msg, m.keys.Predict) || key.Matches(msg, m.keys.Toggle) {
			return m.predict()
		}
	}
	return m, nil
}

// predict validates the numeric inputs and runs the assessment as a command.
func (m Model) predict() (tea.Model, tea.Cmd) {
	if m.running {
		return m, nil
	}
	sel, err := m.selection()
	if err != nil {
		m.err = err
		m.result = nil
		return m, nil
	}
	m.running = true
	m.err = nil

	ctx, assessor := m.ctx, m.assessor
	return m, func() tea.Msg {
		a, err := assessor.Assess(ctx, sel)
		return AssessmentMsg{Assessment: a, Err: err}
	}
}

func (m Model) selection() (domain.Selection, error) {
	temperature, err := parseNumber("temperature", m.temperature.Value())
	if err != nil {
		return domain.Selection{}, err
	}
	humidity, err := parseNumber("humidity", m.humidity.Value())
	if err != nil {
		return domain.Selection{}, err
	}
	return domain.Selection{
		Temperature: temperature,
		Humidity:    humidity,
		Clothing:    m.clothing.Names(),
		Activity:    m.activities[m.activity].Name(),
	}, nil
}

func parseNumber(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", field, raw)
	}
	return v, nil
}

func (m Model) setFocus(f Field) Model {
	m.focus = f
	m.temperature.Blur()
	m.humidity.Blur()
	switch f {
	case FieldTemperature:
		m.temperature.Focus()
	case FieldHumidity:
		m.humidity.Focus()
	}
	return m
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FieldTemperature:
		m.temperature, cmd = m.temperature.Update(msg)
	case FieldHumidity:
		m.humidity, cmd = m.humidity.Update(msg)
	}
	return m, cmd
}

// scrollTo returns the list offset that keeps cursor inside a window of
// height rows.
func scrollTo(cursor, offset, height int) int {
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+height {
		return cursor - height + 1
	}
	return offset
}
