package stats

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
)

type SummaryRow struct {
	Metric     string
	Experiment Experiment

	N        int
	Average  float64
	Variance float64
	Min      float64
	Max      float64
}

// SummaryCSVWriter writes one row per metric and experiment. It ignores time
// series.
type SummaryCSVWriter struct {
	f *os.File
	w *csv.Writer
}

func NewSummaryCSVWriter(path string) (*SummaryCSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)

	hdr := []string{
		"metric",
		"experiment",
		"n",
		"average",
		"variance",
		"min",
		"max",
	}
	if err := w.Write(hdr); err != nil {
		_ = f.Close()
		return nil, err
	}
	w.Flush()
	return &SummaryCSVWriter{f: f, w: w}, nil
}

func (s *SummaryCSVWriter) WriteRow(r SummaryRow) error {
	row := []string{
		r.Metric,
		string(r.Experiment),
		strconv.Itoa(r.N),
		ff(r.Average),
		ff(r.Variance),
		ff(r.Min),
		ff(r.Max),
	}
	return s.w.Write(row)
}

func (s *SummaryCSVWriter) OnHistogram(m Metric, results []Result) error {
	for _, res := range results {
		err := s.WriteRow(SummaryRow{
			Metric:     m.Name,
			Experiment: res.Experiment,
			N:          res.Summary.N,
			Average:    res.Summary.Average,
			Variance:   res.Summary.Variance,
			Min:        res.Summary.Min,
			Max:        res.Summary.Max,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *SummaryCSVWriter) OnTimeSeries(Metric, []Line) error { return nil }

func (s *SummaryCSVWriter) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		_ = s.f.Close()
		return err
	}
	return s.f.Close()
}
