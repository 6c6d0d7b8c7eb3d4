package stats

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
)

// TimeSeriesCSVWriter dumps active-count lines as experiment,time,count rows.
type TimeSeriesCSVWriter struct {
	f *os.File
	w *csv.Writer
}

func NewTimeSeriesCSVWriter(path string) (*TimeSeriesCSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)

	if err := w.Write([]string{"experiment", "time", "count"}); err != nil {
		_ = f.Close()
		return nil, err
	}
	w.Flush()

	return &TimeSeriesCSVWriter{f: f, w: w}, nil
}

func (r *TimeSeriesCSVWriter) OnHistogram(Metric, []Result) error { return nil }

func (r *TimeSeriesCSVWriter) OnTimeSeries(_ Metric, lines []Line) error {
	for _, l := range lines {
		for _, p := range l.Points {
			row := []string{
				string(l.Experiment),
				strconv.Itoa(p.Time),
				strconv.Itoa(p.Count),
			}
			if err := r.w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *TimeSeriesCSVWriter) Close() error {
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		_ = r.f.Close()
		return err
	}
	return r.f.Close()
}
