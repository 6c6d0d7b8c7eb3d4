package render

import (
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ovunctuzel/road-rage/internal/stats"
)

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
	}
}

func (s *PNGSink) lines(m stats.Metric, lines []stats.Line) (err error) {
	series := make([]chart.Series, 0, len(lines))
	xr := &chart.ContinuousRange{}
	yr := &chart.ContinuousRange{}
	first := true
	for i, l := range lines {
		if len(l.Points) == 0 {
			continue
		}
		xs := make([]float64, 0, len(l.Points)+1)
		ys := make([]float64, 0, len(l.Points)+1)
		for _, p := range l.Points {
			x, y := float64(p.Time), float64(p.Count)
			xs = append(xs, x)
			ys = append(ys, y)
			if first || x < xr.Min {
				xr.Min = x
			}
			if first || x > xr.Max {
				xr.Max = x
			}
			if y > yr.Max {
				yr.Max = y
			}
			if y < yr.Min {
				yr.Min = y
			}
			first = false
		}
		// a single point has no extent; draw it as a short flat segment
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
			if xs[1] > xr.Max {
				xr.Max = xs[1]
			}
		}
		series = append(series, chart.ContinuousSeries{
			Name:    string(l.Experiment),
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(chart.GetDefaultColor(i)),
		})
	}
	if len(series) == 0 {
		return &stats.EmptySeriesError{Metric: m.Name}
	}
	if xr.Max <= xr.Min {
		xr.Max = xr.Min + 1
	}
	if yr.Max <= yr.Min {
		yr.Max = yr.Min + 1
	}

	ch := chart.Chart{
		Title:  m.Label,
		Width:  s.opt.Width,
		Height: s.opt.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 12},
		},
		XAxis:  chart.XAxis{Name: "time", Range: xr},
		YAxis:  chart.YAxis{Name: "active " + m.Object, Range: yr},
		Series: series,
	}
	if len(series) > 1 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}

	f, err := os.Create(filepath.Join(s.opt.Dir, m.Name+".png"))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return ch.Render(chart.PNG, f)
}
