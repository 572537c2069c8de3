package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		pmv  float64
		want Sensation
	}{
		{3.0, Hot},
		{2.999, Warm},
		{2.0, Warm},
		{1.999, SlightlyWarm},
		{1.0, SlightlyWarm},
		{0.999, Neutral},
		{0.0, Neutral},
		{-0.999, Neutral},
		{-1.0, SlightlyCool},
		{-1.999, SlightlyCool},
		{-2.0, Cool},
		{-2.999, Cool},
		{-3.0, Cold},
		{-3.001, Cold},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.pmv), "pmv=%v", tt.pmv)
	}
}

func TestClassify_Extremes(t *testing.T) {
	assert.Equal(t, Hot, Classify(1e9))
	assert.Equal(t, Hot, Classify(math.Inf(1)))
	assert.Equal(t, Cold, Classify(-1e9))
	assert.Equal(t, Cold, Classify(math.Inf(-1)))
	assert.Equal(t, Cold, Classify(math.NaN()))
}

func TestClassify_Monotonic(t *testing.T) {
	prev := Classify(-5)
	for pmv := -5.0; pmv <= 5.0; pmv += 0.01 {
		got := Classify(pmv)
		assert.GreaterOrEqual(t, int(got), int(prev), "pmv=%v", pmv)
		prev = got
	}
}

func TestSensation_Labels(t *testing.T) {
	assert.Equal(t, "Hot", Hot.String())
	assert.Equal(t, "Slightly Warm", SlightlyWarm.String())
	assert.Equal(t, "Slightly Cool", SlightlyCool.String())
	assert.Equal(t, "slightly_cool", SlightlyCool.Key())
	assert.Equal(t, "🔥", Hot.Marker())
	assert.Equal(t, "🧊", Cold.Marker())
	assert.Equal(t, "🟦", Neutral.Marker())
	assert.Equal(t, "Sensation(42)", Sensation(42).String())
	assert.Equal(t, "unknown", Sensation(42).Key())
	assert.Len(t, Sensations(), 7)
}

func TestSensation_Text(t *testing.T) {
	data, err := json.Marshal(map[string]Sensation{"s": SlightlyWarm})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"slightly_warm"}`, string(data))

	var s Sensation
	require.NoError(t, s.UnmarshalText([]byte("Slightly Warm")))
	assert.Equal(t, SlightlyWarm, s)
	require.NoError(t, s.UnmarshalText([]byte("cool")))
	assert.Equal(t, Cool, s)

	assert.Error(t, s.UnmarshalText([]byte("tepid")))

	_, err = Sensation(-1).MarshalText()
	assert.Error(t, err)
}
