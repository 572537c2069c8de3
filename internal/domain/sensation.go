package domain

import "fmt"

// Sensation is a bucket of the ASHRAE 7-point thermal sensation scale,
// ordered from coldest to hottest.
type Sensation int

const (
	Cold Sensation = iota
	Cool
	SlightlyCool
	Neutral
	SlightlyWarm
	Warm
	Hot
)

var sensationInfo = [...]struct {
	label  string
	key    string
	marker string
}{
	Cold:         {"Cold", "cold", "🧊"},
	Cool:         {"Cool", "cool", "❄️"},
	SlightlyCool: {"Slightly Cool", "slightly_cool", "🟦"},
	Neutral:      {"Neutral", "neutral", "🟦"},
	SlightlyWarm: {"Slightly Warm", "slightly_warm", "🟥"},
	Warm:         {"Warm", "warm", "🌡️"},
	Hot:          {"Hot", "hot", "🔥"},
}

// Sensations returns every bucket from coldest to hottest.
func Sensations() []Sensation {
	return []Sensation{Cold, Cool, SlightlyCool, Neutral, SlightlyWarm, Warm, Hot}
}

// Classify maps a PMV value onto the scale. Boundary values belong to the
// bucket further from neutral: 1 is SlightlyWarm, -1 is SlightlyCool.
// NaN fails every comparison and lands in Cold.
func Classify(pmv float64) Sensation {
	switch {
	case pmv >= 3:
		return Hot
	case pmv >= 2:
		return Warm
	case pmv >= 1:
		return SlightlyWarm
	case pmv > -1:
		return Neutral
	case pmv > -2:
		return SlightlyCool
	case pmv > -3:
		return Cool
	default:
		return Cold
	}
}

func (s Sensation) valid() bool { return s >= Cold && s <= Hot }

// String returns the human label, e.g. "Slightly Warm".
func (s Sensation) String() string {
	if !s.valid() {
		return fmt.Sprintf("Sensation(%d)", int(s))
	}
	return sensationInfo[s].label
}

// Key returns a snake_case identifier suitable for metric labels.
func (s Sensation) Key() string {
	if !s.valid() {
		return "unknown"
	}
	return sensationInfo[s].key
}

// Marker returns the icon shown next to the label.
func (s Sensation) Marker() string {
	if !s.valid() {
		return ""
	}
	return sensationInfo[s].marker
}

// MarshalText encodes the sensation as its snake_case key.
func (s Sensation) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("marshal sensation: invalid value %d", int(s))
	}
	return []byte(s.Key()), nil
}

// UnmarshalText accepts either the key or the human label.
func (s *Sensation) UnmarshalText(text []byte) error {
	v := string(text)
	for _, candidate := range Sensations() {
		if v == candidate.Key() || v == candidate.String() {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unmarshal sensation: unknown value %q", v)
}
