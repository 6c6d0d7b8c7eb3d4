package render

import (
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/ovunctuzel/road-rage/internal/stats"
)

func (s *PNGSink) histogram(m stats.Metric, results []stats.Result) error {
	p := plot.New()
	p.Title.Text = m.Label
	p.X.Label.Text = m.Label
	p.Y.Label.Text = "Number of " + m.Object + " in this range"

	overlay := len(results) > 1
	for i, res := range results {
		h, err := plotter.NewHist(plotter.Values(res.Display), s.opt.Bins)
		if err != nil {
			return err
		}
		if s.opt.Normalize {
			h.Normalize(1)
		}
		c := plotutil.Color(i)
		h.LineStyle.Color = c
		if overlay {
			// keep the other experiments visible underneath
			h.FillColor = translucent(c)
		} else {
			h.FillColor = c
		}
		p.Add(h)
		if overlay {
			p.Legend.Add(string(res.Experiment), h)
		}
	}
	p.Legend.Top = true

	return p.Save(pixels(s.opt.Width), pixels(s.opt.Height), filepath.Join(s.opt.Dir, m.Name+".png"))
}

func translucent(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0x60}
}

// pixels converts a pixel count to a vg length at the default 96 dpi of the
// PNG backend.
func pixels(n int) vg.Length {
	return vg.Length(float64(n) * 72 / 96)
}
