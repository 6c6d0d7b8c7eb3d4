// Package render draws reduced series to PNG files: histograms with gonum/plot
// and time-series lines with go-chart. Experiments are overlaid in one image,
// each with its own color and legend entry.
package render

import (
	"os"

	"github.com/ovunctuzel/road-rage/internal/stats"
)

type Options struct {
	// Dir receives one <metric>.png per reported metric.
	Dir string
	// Bins is the number of histogram bins.
	Bins int
	// Normalize scales every histogram to unit area.
	Normalize bool
	// Width and Height of the images in pixels.
	Width  int
	Height int
}

func DefaultOptions(dir string) Options {
	return Options{
		Dir:       dir,
		Bins:      100,
		Normalize: true,
		Width:     768,
		Height:    480,
	}
}

// PNGSink is a stats.Sink writing one image per metric.
type PNGSink struct {
	opt Options
}

var _ stats.Sink = (*PNGSink)(nil)

func NewPNGSink(opt Options) (*PNGSink, error) {
	if err := os.MkdirAll(opt.Dir, 0o755); err != nil {
		return nil, err
	}
	if opt.Bins <= 0 {
		opt.Bins = DefaultOptions(opt.Dir).Bins
	}
	return &PNGSink{opt: opt}, nil
}

func (s *PNGSink) OnHistogram(m stats.Metric, results []stats.Result) error {
	return s.histogram(m, results)
}

func (s *PNGSink) OnTimeSeries(m stats.Metric, lines []stats.Line) error {
	return s.lines(m, lines)
}

func (s *PNGSink) Close() error { return nil }
