package fdcheck

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// savePlot writes a log-log plot of both error curves. Zero entries are
// dropped; a log axis cannot carry them.
func (r *Result) savePlot(file string) error {
	p := plot.New()
	p.Title.Text = "derivative check"
	p.X.Label.Text = "h"
	p.Y.Label.Text = "error"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true

	e0 := make(plotter.XYs, 0, len(r.H))
	e1 := make(plotter.XYs, 0, len(r.H))
	for i := range r.H {
		if r.E0[i] > 0 {
			e0 = append(e0, plotter.XY{X: r.H[i], Y: r.E0[i]})
		}
		if r.E1[i] > 0 {
			e1 = append(e1, plotter.XY{X: r.H[i], Y: r.E1[i]})
		}
	}
	var curves []interface{}
	if len(e0) > 0 {
		curves = append(curves, "E0(h)", e0)
	}
	if len(e1) > 0 {
		curves = append(curves, "E1(h)", e1)
	}
	if len(curves) == 0 {
		return nil
	}
	if err := plotutil.AddLinePoints(p, curves...); err != nil {
		return fmt.Errorf("fdcheck: building plot: %v", err)
	}
	if err := p.Save(6*vg.Inch, 4.5*vg.Inch, file); err != nil {
		return fmt.Errorf("fdcheck: saving plot: %v", err)
	}
	return nil
}
