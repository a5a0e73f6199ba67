// Package render visualizes fuel level samples.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/robotalks/fuel.go/pkg/protocol"
)

// FullScale is the raw reading of a full tank.
const FullScale = 32768

// Percent converts a raw fuel level into percentage.
func Percent(raw uint16) float64 {
	return float64(raw) / FullScale * 100
}

// Point is the presentation form of a sample.
type Point struct {
	Timestamp uint16  `json:"timestamp"`
	FuelLevel uint16  `json:"fuel_level"`
	Percent   float64 `json:"percent"`
}

// Points converts samples into points.
func Points(samples []protocol.Sample) []Point {
	points := make([]Point, len(samples))
	for n, s := range samples {
		points[n] = Point{Timestamp: s.Timestamp, FuelLevel: s.FuelLevel, Percent: Percent(s.FuelLevel)}
	}
	return points
}

// Summary aggregates percentages of a sample set.
type Summary struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
}

// Summarize computes the summary of samples.
func Summarize(samples []protocol.Sample) (s Summary) {
	s.Count = len(samples)
	if s.Count == 0 {
		return
	}
	var sum float64
	for n, sample := range samples {
		p := Percent(sample.FuelLevel)
		if n == 0 || p < s.Min {
			s.Min = p
		}
		if n == 0 || p > s.Max {
			s.Max = p
		}
		sum += p
	}
	s.Avg = sum / float64(s.Count)
	return
}

// Config represents chart settings.
type Config struct {
	// Width is the bar width for 100%.
	Width int
	// Low is the percentage under which a bar is drawn as warning.
	Low float64
	// Critical is the percentage under which a bar is drawn as critical.
	Critical float64
}

// DefaultConfig is used when no config is specified.
var DefaultConfig = Config{
	Width:    50,
	Low:      25,
	Critical: 10,
}

// Chart draws samples as horizontal bars.
type Chart struct {
	Config Config

	normal   *color.Color
	low      *color.Color
	critical *color.Color
}

// NewChart creates a Chart.
func NewChart(conf Config) *Chart {
	if conf.Width <= 0 {
		conf.Width = DefaultConfig.Width
	}
	return &Chart{
		Config:   conf,
		normal:   color.New(color.FgGreen),
		low:      color.New(color.FgYellow),
		critical: color.New(color.FgRed, color.Bold),
	}
}

// Render writes one line per sample followed by a summary line.
func (c *Chart) Render(w io.Writer, samples []protocol.Sample) error {
	for _, p := range Points(samples) {
		filled := int(p.Percent/100*float64(c.Config.Width) + 0.5)
		if filled > c.Config.Width {
			filled = c.Config.Width
		}
		bar := c.colorOf(p.Percent).Sprint(strings.Repeat("#", filled))
		if _, err := fmt.Fprintf(w, "%5ds %6.2f%% |%s%s|\n", p.Timestamp, p.Percent,
			bar, strings.Repeat(" ", c.Config.Width-filled)); err != nil {
			return err
		}
	}
	s := Summarize(samples)
	_, err := fmt.Fprintf(w, "samples=%d min=%.2f%% max=%.2f%% avg=%.2f%%\n", s.Count, s.Min, s.Max, s.Avg)
	return err
}

// HandleSamples renders samples to stdout.
func (c *Chart) HandleSamples(samples []protocol.Sample) error {
	return c.Render(color.Output, samples)
}

func (c *Chart) colorOf(percent float64) *color.Color {
	switch {
	case percent < c.Config.Critical:
		return c.critical
	case percent < c.Config.Low:
		return c.low
	}
	return c.normal
}

// JSON writes samples as a JSON array of points.
func JSON(w io.Writer, samples []protocol.Sample) error {
	return json.NewEncoder(w).Encode(Points(samples))
}

// JSONWriter renders samples as JSON lines.
type JSONWriter struct {
	Writer io.Writer
}

// HandleSamples implements monitor.SampleHandler.
func (j *JSONWriter) HandleSamples(samples []protocol.Sample) error {
	return JSON(j.Writer, samples)
}
