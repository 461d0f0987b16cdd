package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/jobdesk/internal/charts"
)

func (s *Server) svgResponse(w http.ResponseWriter, svg string) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write([]byte(svg))
}

// intParam reads an optional non-negative integer query parameter.
func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 2000 {
		return 0, &ErrValidation{Field: name, Message: "must be an integer between 0 and 2000"}
	}
	return n, nil
}

// finite parses a number, refusing NaN and infinities.
func finite(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return v, nil
}

// floatList parses "12,40.5,73".
func floatList(name, raw string) ([]float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := finite(p)
		if err != nil {
			return nil, &ErrValidation{Field: name, Message: fmt.Sprintf("invalid number %q", p)}
		}
		out = append(out, v)
	}
	return out, nil
}

// labelled parses "Skills:80,Format:65" into label/value pairs.
func labelled(name, raw string) ([]string, []float64, error) {
	var labels []string
	var values []float64
	for _, p := range strings.Split(raw, ",") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		label, value, ok := strings.Cut(p, ":")
		if !ok {
			return nil, nil, &ErrValidation{Field: name, Message: fmt.Sprintf("want label:value, got %q", p)}
		}
		v, err := finite(value)
		if err != nil {
			return nil, nil, &ErrValidation{Field: name, Message: fmt.Sprintf("invalid number %q", value)}
		}
		labels = append(labels, strings.TrimSpace(label))
		values = append(values, v)
	}
	return labels, values, nil
}

func (s *Server) handleScoreRing(w http.ResponseWriter, r *http.Request) {
	score, err := finite(r.URL.Query().Get("score"))
	if err != nil {
		s.fail(w, &ErrValidation{Field: "score", Message: "must be a number"})
		return
	}
	size, err := intParam(r, "size")
	if err != nil {
		s.fail(w, err)
		return
	}
	s.svgResponse(w, charts.ScoreRing(score, size))
}

func (s *Server) handleSparkline(w http.ResponseWriter, r *http.Request) {
	values, err := floatList("values", r.URL.Query().Get("values"))
	if err != nil {
		s.fail(w, err)
		return
	}
	width, err := intParam(r, "width")
	if err != nil {
		s.fail(w, err)
		return
	}
	height, err := intParam(r, "height")
	if err != nil {
		s.fail(w, err)
		return
	}
	s.svgResponse(w, charts.Sparkline(values, width, height))
}

func (s *Server) handleDonut(w http.ResponseWriter, r *http.Request) {
	labels, values, err := labelled("segments", r.URL.Query().Get("segments"))
	if err != nil {
		s.fail(w, err)
		return
	}
	size, err := intParam(r, "size")
	if err != nil {
		s.fail(w, err)
		return
	}
	segments := make([]charts.Segment, len(labels))
	for i := range labels {
		segments[i] = charts.Segment{Label: labels[i], Value: values[i]}
	}
	s.svgResponse(w, charts.Donut(segments, size))
}

func (s *Server) handleRadar(w http.ResponseWriter, r *http.Request) {
	labels, values, err := labelled("axes", r.URL.Query().Get("axes"))
	if err != nil {
		s.fail(w, err)
		return
	}
	size, err := intParam(r, "size")
	if err != nil {
		s.fail(w, err)
		return
	}
	axes := make([]charts.Axis, len(labels))
	for i := range labels {
		axes[i] = charts.Axis{Label: labels[i], Value: values[i]}
	}
	s.svgResponse(w, charts.Radar(axes, size))
}
