package stats

import (
	"fmt"
	"io"
	"strings"
)

// TextSink prints the console report: a title per metric and experiment
// followed by the summary statistics.
type TextSink struct {
	w io.Writer
}

func NewTextSink(w io.Writer) *TextSink { return &TextSink{w: w} }

func (t *TextSink) OnHistogram(m Metric, results []Result) error {
	for _, res := range results {
		title := m.Label
		if len(results) > 1 {
			title = fmt.Sprintf("%s [%s]", m.Label, res.Experiment)
		}
		s := res.Summary
		_, err := fmt.Fprintf(t.w, "%s\n%s\n  Average = %s\n  Variance = %s\n  Min = %s\n  Max = %s\n\n",
			title, strings.Repeat("-", len(title)),
			ff(s.Average), ff(s.Variance), ff(s.Min), ff(s.Max))
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *TextSink) OnTimeSeries(m Metric, lines []Line) error {
	if _, err := fmt.Fprintf(t.w, "%s\n%s\n", m.Label, strings.Repeat("-", len(m.Label))); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(t.w, "  %s: %d points\n", l.Experiment, len(l.Points)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(t.w)
	return err
}

func (t *TextSink) Close() error { return nil }

func ff(v float64) string { return fmt.Sprintf("%.6f", v) }
