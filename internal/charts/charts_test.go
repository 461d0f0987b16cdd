package charts

import (
	"encoding/xml"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wellFormed parses the markup to make sure it is valid XML.
func wellFormed(t *testing.T, svg string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(svg))
	for {
		_, err := dec.Token()
		if err != nil {
			require.Equal(t, "EOF", err.Error(), svg)
			return
		}
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-20))
	assert.Equal(t, 100.0, Clamp(140))
	assert.Equal(t, 55.5, Clamp(55.5))
	assert.Equal(t, 0.0, Clamp(math.NaN()))
}

func TestScoreColor(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, ColorGood},
		{80, ColorGood},
		{79.9, ColorFair},
		{60, ColorFair},
		{59, ColorPoor},
		{0, ColorPoor},
		{150, ColorGood},
		{-5, ColorPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreColor(tt.score), "score %v", tt.score)
	}
}

func TestScoreRing(t *testing.T) {
	svg := ScoreRing(82, 120)
	wellFormed(t, svg)
	assert.Contains(t, svg, `width="120"`)
	assert.Contains(t, svg, ">82</text>")
	assert.Contains(t, svg, ColorGood)
	assert.Contains(t, svg, "Excellent")
	assert.Contains(t, svg, "transition")
}

func TestScoreRing_Clamps(t *testing.T) {
	over := ScoreRing(250, 100)
	assert.Contains(t, over, ">100</text>")
	assert.Contains(t, over, `stroke-dashoffset="0"`)

	under := ScoreRing(-10, 100)
	assert.Contains(t, under, ">0</text>")
	assert.Contains(t, under, ColorPoor)

	assert.Equal(t, ScoreRing(42, 0), ScoreRing(42, 120))
}

func TestScoreRing_Deterministic(t *testing.T) {
	assert.Equal(t, ScoreRing(67, 90), ScoreRing(67, 90))
	assert.Contains(t, ScoreRing(67, 90), ColorFair)
}

func TestRadar(t *testing.T) {
	svg := Radar([]Axis{
		{Label: "Keywords", Value: 90},
		{Label: "Format", Value: 70},
		{Label: "Skills & Tools", Value: 120},
		{Label: "Experience", Value: 85},
	}, 240)
	wellFormed(t, svg)
	assert.Equal(t, 5, strings.Count(svg, "<polygon"))
	assert.Contains(t, svg, "Skills &amp; Tools")
	assert.Equal(t, 4, strings.Count(svg, "<line"))
}

func TestRadar_TooFewAxes(t *testing.T) {
	svg := Radar([]Axis{{Label: "a", Value: 10}, {Label: "b", Value: 20}}, 200)
	wellFormed(t, svg)
	assert.NotContains(t, svg, "<polygon")
}

func TestDonut(t *testing.T) {
	svg := Donut([]Segment{
		{Label: "Applied", Value: 3},
		{Label: "Interview", Value: 1, Color: "#123456"},
		{Label: "Ignored", Value: -4},
		{Label: "Empty", Value: 0},
	}, 160)
	wellFormed(t, svg)
	assert.Equal(t, 3, strings.Count(svg, "<circle"))
	assert.Contains(t, svg, "#123456")
	assert.NotContains(t, svg, "Ignored")
}

func TestDonut_NonFiniteValues(t *testing.T) {
	svg := Donut([]Segment{
		{Label: "Applied", Value: 3},
		{Label: "Broken", Value: math.Inf(1)},
		{Label: "Unknown", Value: math.NaN()},
	}, 160)
	wellFormed(t, svg)
	assert.Equal(t, 2, strings.Count(svg, "<circle"))
	assert.NotContains(t, svg, "NaN")
	assert.NotContains(t, svg, "Inf")
}

func TestSparkline_NonFiniteValues(t *testing.T) {
	svg := Sparkline([]float64{math.Inf(1), math.NaN(), math.Inf(-1)}, 120, 32)
	wellFormed(t, svg)
	assert.NotContains(t, svg, "NaN")
	assert.NotContains(t, svg, "Inf")
}

func TestDonut_NoTotal(t *testing.T) {
	svg := Donut(nil, 100)
	wellFormed(t, svg)
	assert.Equal(t, 1, strings.Count(svg, "<circle"))
}

func TestSparkline(t *testing.T) {
	svg := Sparkline([]float64{40, 55, 72, 85}, 120, 32)
	wellFormed(t, svg)
	assert.Contains(t, svg, "<polyline")
	assert.Equal(t, 4, len(strings.Fields(between(svg, `points="`, `"`))))
	assert.Contains(t, svg, `fill="`+ColorGood+`"`)
}

func TestSparkline_ClampsAndEdges(t *testing.T) {
	svg := Sparkline([]float64{-50, 500}, 100, 20)
	pts := strings.Fields(between(svg, `points="`, `"`))
	require.Len(t, pts, 2)
	assert.Equal(t, "2,18", pts[0])
	assert.Equal(t, "98,2", pts[1])

	empty := Sparkline(nil, 100, 20)
	wellFormed(t, empty)
	assert.NotContains(t, empty, "<polyline")

	single := Sparkline([]float64{50}, 100, 20)
	assert.Contains(t, single, `points="50,10"`)
}

func between(s, start, end string) string {
	i := strings.Index(s, start)
	if i < 0 {
		return ""
	}
	s = s[i+len(start):]
	j := strings.Index(s, end)
	if j < 0 {
		return ""
	}
	return s[:j]
}
