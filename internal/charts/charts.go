// Package charts renders score visualisations as standalone SVG documents.
// Every function is pure: the same inputs always give the same markup.
package charts

import (
	"fmt"
	"html"
	"math"
	"strings"
)

// Band colours.
const (
	ColorGood  = "#22c55e"
	ColorFair  = "#f59e0b"
	ColorPoor  = "#ef4444"
	ColorTrack = "#e5e7eb"
	ColorText  = "#111827"
	ColorMuted = "#6b7280"
)

const transition = "transition: stroke-dashoffset 1s ease-out"

// Clamp limits a score to 0..100.
func Clamp(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(0, math.Min(100, score))
}

// ScoreColor maps a score to its band colour: 80 and up is green, 60 and up
// amber, anything lower red.
func ScoreColor(score float64) string {
	switch s := Clamp(score); {
	case s >= 80:
		return ColorGood
	case s >= 60:
		return ColorFair
	default:
		return ColorPoor
	}
}

// ScoreLabel is the word shown under a score ring.
func ScoreLabel(score float64) string {
	switch s := Clamp(score); {
	case s >= 80:
		return "Excellent"
	case s >= 60:
		return "Good"
	case s >= 40:
		return "Fair"
	default:
		return "Needs work"
	}
}

func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func open(b *strings.Builder, width, height float64) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		num(width), num(height), num(width), num(height))
}

// ScoreRing draws a circular progress ring with the score in the middle.
// Non-positive sizes fall back to 120.
func ScoreRing(score float64, size int) string {
	if size <= 0 {
		size = 120
	}
	s := Clamp(score)
	dim := float64(size)
	stroke := math.Max(4, dim/12)
	r := (dim - stroke) / 2
	c := dim / 2
	circumference := 2 * math.Pi * r
	offset := circumference * (1 - s/100)
	color := ScoreColor(s)

	var b strings.Builder
	open(&b, dim, dim)
	fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s"/>`,
		num(c), num(c), num(r), ColorTrack, num(stroke))
	fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-dasharray="%s" stroke-dashoffset="%s" transform="rotate(-90 %s %s)" style="%s"/>`,
		num(c), num(c), num(r), color, num(stroke), num(circumference), num(offset), num(c), num(c), transition)
	fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" dominant-baseline="central" font-size="%s" font-weight="bold" fill="%s">%d</text>`,
		num(c), num(c), num(dim/4), ColorText, int(math.Round(s)))
	fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" font-size="%s" fill="%s">%s</text>`,
		num(c), num(c+dim/5), num(dim/12), ColorMuted, ScoreLabel(s))
	b.WriteString(`</svg>`)
	return b.String()
}

// Axis is one spoke of a radar chart.
type Axis struct {
	Label string
	Value float64
}

// Radar draws a radar (spider) chart of 0..100 values. Fewer than three axes
// cannot form a polygon and yield an empty chart.
func Radar(axes []Axis, size int) string {
	if size <= 0 {
		size = 240
	}
	dim := float64(size)
	c := dim / 2
	radius := dim/2 - dim/8

	var b strings.Builder
	open(&b, dim, dim)
	if len(axes) < 3 {
		b.WriteString(`</svg>`)
		return b.String()
	}

	point := func(i int, scale float64) (float64, float64) {
		angle := 2*math.Pi*float64(i)/float64(len(axes)) - math.Pi/2
		return c + radius*scale*math.Cos(angle), c + radius*scale*math.Sin(angle)
	}
	polygon := func(scale func(i int) float64) string {
		pts := make([]string, len(axes))
		for i := range axes {
			x, y := point(i, scale(i))
			pts[i] = num(x) + "," + num(y)
		}
		return strings.Join(pts, " ")
	}

	for _, level := range []float64{0.25, 0.5, 0.75, 1} {
		fmt.Fprintf(&b, `<polygon points="%s" fill="none" stroke="%s"/>`,
			polygon(func(int) float64 { return level }), ColorTrack)
	}
	var total float64
	for i, a := range axes {
		x, y := point(i, 1)
		fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`, num(c), num(c), num(x), num(y), ColorTrack)
		lx, ly := point(i, 1.15)
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" dominant-baseline="central" font-size="%s" fill="%s">%s</text>`,
			num(lx), num(ly), num(math.Max(8, dim/24)), ColorMuted, html.EscapeString(a.Label))
		total += Clamp(a.Value)
	}
	color := ScoreColor(total / float64(len(axes)))
	fmt.Fprintf(&b, `<polygon points="%s" fill="%s" fill-opacity="0.25" stroke="%s" stroke-width="2"/>`,
		polygon(func(i int) float64 { return Clamp(axes[i].Value) / 100 }), color, color)
	b.WriteString(`</svg>`)
	return b.String()
}

// Segment is one slice of a donut chart.
type Segment struct {
	Label string
	Value float64
	Color string // optional; a palette colour is used when empty
}

var palette = []string{"#6366f1", "#22c55e", "#f59e0b", "#ef4444", "#06b6d4", "#a855f7"}

// Donut draws proportional arcs for positive, finite segment values. A donut
// with no positive total is drawn as an empty track.
func Donut(segments []Segment, size int) string {
	if size <= 0 {
		size = 160
	}
	dim := float64(size)
	stroke := math.Max(6, dim/8)
	r := (dim - stroke) / 2
	c := dim / 2
	circumference := 2 * math.Pi * r

	var total float64
	for _, s := range segments {
		if drawable(s.Value) {
			total += s.Value
		}
	}

	var b strings.Builder
	open(&b, dim, dim)
	fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s"/>`,
		num(c), num(c), num(r), ColorTrack, num(stroke))
	if total > 0 {
		var start float64
		for i, s := range segments {
			if !drawable(s.Value) {
				continue
			}
			length := circumference * s.Value / total
			color := s.Color
			if color == "" {
				color = palette[i%len(palette)]
			}
			fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s" stroke-dasharray="%s %s" stroke-dashoffset="%s" transform="rotate(-90 %s %s)"><title>%s</title></circle>`,
				num(c), num(c), num(r), html.EscapeString(color), num(stroke), num(length), num(circumference-length), num(-start), num(c), num(c), html.EscapeString(s.Label))
			start += length
		}
	}
	b.WriteString(`</svg>`)
	return b.String()
}

// drawable reports whether a donut segment value has an arc. NaN fails the
// comparison.
func drawable(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Sparkline draws a polyline of the values scaled into width x height, with
// the last point marked in its score colour. Values are clamped to 0..100.
func Sparkline(values []float64, width, height int) string {
	if width <= 0 {
		width = 120
	}
	if height <= 0 {
		height = 32
	}
	w, h := float64(width), float64(height)
	pad := 2.0

	var b strings.Builder
	open(&b, w, h)
	if len(values) == 0 {
		b.WriteString(`</svg>`)
		return b.String()
	}

	step := 0.0
	if len(values) > 1 {
		step = (w - 2*pad) / float64(len(values)-1)
	}
	pts := make([]string, len(values))
	var lastX, lastY float64
	for i, v := range values {
		x := pad + step*float64(i)
		if len(values) == 1 {
			x = w / 2
		}
		y := h - pad - (h-2*pad)*Clamp(v)/100
		pts[i] = num(x) + "," + num(y)
		lastX, lastY = x, y
	}
	last := values[len(values)-1]
	fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="1.5" stroke-linejoin="round"/>`,
		strings.Join(pts, " "), ColorMuted)
	fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="2.5" fill="%s"/>`, num(lastX), num(lastY), ScoreColor(last))
	b.WriteString(`</svg>`)
	return b.String()
}
