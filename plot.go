package stoppower

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Fixed artifact names, overwritten unconditionally on every run.
const (
	MainFigureBase = "muon_bethe_bloch_final_analysis"
	ZoomFigureBase = "muon_minimum_high_resolution"
)

var (
	dataColor   = color.RGBA{B: 200, A: 255}
	theoryColor = color.RGBA{R: 220, A: 255}
	markColor   = color.RGBA{R: 220, A: 255}
	refColor    = color.RGBA{R: 0x2e, G: 0x8b, B: 0x57, A: 255}
)

// RenderFigures writes the 2×2 diagnostic figure and the minimum-region zoom
// figure, each as PNG and PDF, into cfg.OutDir. Returns the written paths.
func RenderFigures(a *Analysis, cfg Config) ([]string, error) {
	panels, err := mainPanels(a)
	if err != nil {
		return nil, err
	}
	zoom, err := zoomPlot(a, cfg.Resolution)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, ext := range []string{"png", "pdf"} {
		path := filepath.Join(cfg.OutDir, MainFigureBase+"."+ext)
		if err := writeTiled(panels, 18*vg.Inch, 14*vg.Inch, path, ext); err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	for _, ext := range []string{"png", "pdf"} {
		path := filepath.Join(cfg.OutDir, ZoomFigureBase+"."+ext)
		if err := zoom.Save(12*vg.Inch, 8*vg.Inch, path); err != nil {
			return nil, fmt.Errorf("saving %s: %w", path, err)
		}
		files = append(files, path)
	}
	return files, nil
}

// mainPanels builds the 2×2 grid: full log-log overlay, minimum region,
// relativistic region, and ratio-to-minimum.
func mainPanels(a *Analysis) ([][]*plot.Plot, error) {
	overview, err := overviewPanel(a)
	if err != nil {
		return nil, err
	}
	minimum, err := minimumPanel(a)
	if err != nil {
		return nil, err
	}
	relativistic, err := relativisticPanel(a)
	if err != nil {
		return nil, err
	}
	ratio, err := ratioPanel(a)
	if err != nil {
		return nil, err
	}
	return [][]*plot.Plot{
		{overview, minimum},
		{relativistic, ratio},
	}, nil
}

func overviewPanel(a *Analysis) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Curva de Bethe-Bloch para Muones en Cobre (1 MeV - 1 PeV)"
	p.X.Label.Text = "Energía (MeV)"
	p.Y.Label.Text = "Pérdida de energía (MeV/mm)"
	logLogAxes(p)

	if a.Smooth.Len() > 0 {
		smooth, err := plotter.NewLine(curveXYs(a.Smooth))
		if err != nil {
			return nil, err
		}
		smooth.Color = dataColor
		smooth.Width = vg.Points(2)
		p.Add(smooth)
		p.Legend.Add("Interpolación suave", smooth)
	}

	theory := make(plotter.XYs, len(a.Theory))
	for i, tp := range a.Theory {
		theory[i] = plotter.XY{X: tp.Energy, Y: tp.Loss}
	}
	theoryLine, err := plotter.NewLine(theory)
	if err != nil {
		return nil, err
	}
	theoryLine.Color = theoryColor
	theoryLine.Width = vg.Points(1.5)
	p.Add(theoryLine)
	p.Legend.Add("Bethe-Bloch teórico", theoryLine)

	data, err := plotter.NewScatter(sampleXYs(a.Samples))
	if err != nil {
		return nil, err
	}
	data.GlyphStyle.Color = dataColor
	data.GlyphStyle.Radius = vg.Points(3)
	p.Add(data)
	p.Legend.Add("Datos simulados (Geant4)", data)

	// Reference energies: minimum expectation and 1 TeV.
	lo, hi := lossExtent(a.Samples)
	for _, e := range []float64{500, 1e6} {
		ref, err := verticalLine(e, lo, hi)
		if err != nil {
			return nil, err
		}
		p.Add(ref)
	}

	p.Legend.Top = true
	return p, nil
}

func minimumPanel(a *Analysis) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Región del Mínimo de Ionización"
	p.X.Label.Text = "Energía (MeV)"
	p.Y.Label.Text = "Pérdida de energía (MeV/mm)"

	band := a.Samples.Select(MinimumSearchRegion.Min, MinimumSearchRegion.Max)
	if smooth, err := SmoothLinear(band, 200); err == nil {
		line, err := plotter.NewLine(curveXYs(smooth))
		if err != nil {
			return nil, err
		}
		line.Color = dataColor
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add("Interpolación suave", line)
	}

	data, err := plotter.NewScatter(sampleXYs(band))
	if err != nil {
		return nil, err
	}
	data.GlyphStyle.Color = dataColor
	data.GlyphStyle.Radius = vg.Points(4)
	p.Add(data)
	p.Legend.Add("Datos simulados", data)

	if err := addMinimumMarker(p, a.Minimum, band); err != nil {
		return nil, err
	}

	p.Legend.Top = true
	return p, nil
}

func relativisticPanel(a *Analysis) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Región Ultra-Relativística (efectos de densidad + radiación)"
	p.X.Label.Text = "Energía (MeV)"
	p.Y.Label.Text = "Pérdida de energía (MeV/mm)"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}

	rel := a.Samples.Select(RelativisticThreshold, math.MaxFloat64)
	if len(rel) == 0 {
		// Nothing at or above the threshold. The panel stays empty, but
		// the log ticks still need a positive axis range.
		p.X.Min, p.X.Max = RelativisticThreshold, theoryEMax
		return p, nil
	}

	if smooth, err := SmoothLogLog(rel, 300); err == nil {
		line, err := plotter.NewLine(curveXYs(smooth))
		if err != nil {
			return nil, err
		}
		line.Color = theoryColor
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add("Interpolación suave", line)
	}

	data, err := plotter.NewScatter(sampleXYs(rel))
	if err != nil {
		return nil, err
	}
	data.GlyphStyle.Color = theoryColor
	data.GlyphStyle.Radius = vg.Points(3)
	p.Add(data)
	p.Legend.Add("Datos simulados", data)

	// Local power-law trends per sub-band; under-populated bands are
	// skipped by FitPowerLaw.
	if len(rel) > 5 {
		for i, region := range TrendRegions {
			fit, err := FitPowerLaw(rel.Select(region.Min, region.Max))
			if err != nil {
				continue
			}
			trend, err := plotter.NewLine(curveXYs(fit.Sample(region.Min, region.Max, 50)))
			if err != nil {
				return nil, err
			}
			trend.Color = plotutil.Color(i)
			trend.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
			trend.Width = vg.Points(1.5)
			p.Add(trend)
			p.Legend.Add(fmt.Sprintf("%s: E^%.4f", region.Name, fit.Slope), trend)
		}
	}

	// Characteristic energies, marked only when sampled exactly.
	for _, ce := range CharacteristicEnergies {
		near := rel.Nearest(ce.Energy)
		if near.Energy != ce.Energy {
			continue
		}
		mark, err := plotter.NewScatter(plotter.XYs{{X: near.Energy, Y: near.Loss}})
		if err != nil {
			return nil, err
		}
		mark.GlyphStyle.Color = color.RGBA{R: 255, G: 215, A: 255}
		mark.GlyphStyle.Radius = vg.Points(5)
		mark.GlyphStyle.Shape = draw.RingGlyph{}
		p.Add(mark)
		p.Legend.Add(ce.Label, mark)
	}

	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

func ratioPanel(a *Analysis) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Aumento Relativístico de las Pérdidas"
	p.X.Label.Text = "Energía (MeV)"
	p.Y.Label.Text = "Ratio respecto al mínimo"
	logLogAxes(p)

	if a.Smooth.Len() > 0 {
		ratio := make(plotter.XYs, a.Smooth.Len())
		for i := range a.Smooth.Energies {
			ratio[i] = plotter.XY{X: a.Smooth.Energies[i], Y: a.Smooth.Losses[i] / a.Minimum.Loss}
		}
		line, err := plotter.NewLine(ratio)
		if err != nil {
			return nil, err
		}
		line.Color = dataColor
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add("Interpolación suave", line)
	}

	pts := make(plotter.XYs, len(a.Samples))
	for i, s := range a.Samples {
		pts[i] = plotter.XY{X: s.Energy, Y: s.Loss / a.Minimum.Loss}
	}
	data, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	data.GlyphStyle.Color = color.RGBA{R: 180, B: 180, A: 255}
	data.GlyphStyle.Radius = vg.Points(3)
	p.Add(data)
	p.Legend.Add("Datos simulados", data)

	// Unity marks the minimum level.
	unity, err := plotter.NewLine(plotter.XYs{
		{X: a.Samples[0].Energy, Y: 1},
		{X: a.Samples[len(a.Samples)-1].Energy, Y: 1},
	})
	if err != nil {
		return nil, err
	}
	unity.Color = color.Black
	p.Add(unity)
	p.Legend.Add("Nivel del mínimo", unity)

	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

// zoomPlot is the standalone high-resolution window around the minimum.
func zoomPlot(a *Analysis, resolution int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Región del Mínimo de Ionización - Alta Resolución\nMuones en Cobre"
	p.X.Label.Text = "Energía (MeV)"
	p.Y.Label.Text = "Pérdida de energía (MeV/mm)"

	band := a.Samples.Select(ZoomRegion.Min, ZoomRegion.Max)
	if smooth, err := SmoothLinear(band, resolution); err == nil {
		line, err := plotter.NewLine(curveXYs(smooth))
		if err != nil {
			return nil, err
		}
		line.Color = dataColor
		line.Width = vg.Points(2.5)
		p.Add(line)
		p.Legend.Add("Interpolación de alta resolución", line)
	}

	data, err := plotter.NewScatter(sampleXYs(band))
	if err != nil {
		return nil, err
	}
	data.GlyphStyle.Color = theoryColor
	data.GlyphStyle.Radius = vg.Points(4)
	p.Add(data)
	p.Legend.Add("Datos simulados", data)

	if err := addMinimumMarker(p, a.Minimum, band); err != nil {
		return nil, err
	}

	p.Legend.Top = true
	return p, nil
}

// addMinimumMarker draws the minimum point plus its reference cross-hairs.
// Outside the band (or with an empty band) only the marker is drawn.
func addMinimumMarker(p *plot.Plot, min Minimum, band Samples) error {
	mark, err := plotter.NewScatter(plotter.XYs{{X: min.Energy, Y: min.Loss}})
	if err != nil {
		return err
	}
	mark.GlyphStyle.Color = markColor
	mark.GlyphStyle.Radius = vg.Points(6)
	mark.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(mark)
	p.Legend.Add(fmt.Sprintf("Mínimo: %.0f MeV", min.Energy), mark)

	if len(band) == 0 {
		return nil
	}
	lo, hi := lossExtent(band)
	vline, err := verticalLine(min.Energy, lo, hi)
	if err != nil {
		return err
	}
	hline, err := plotter.NewLine(plotter.XYs{
		{X: band[0].Energy, Y: min.Loss},
		{X: band[len(band)-1].Energy, Y: min.Loss},
	})
	if err != nil {
		return err
	}
	hline.Color = refColor
	hline.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(vline, hline)
	return nil
}

func verticalLine(x, yLo, yHi float64) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: x, Y: yLo}, {X: x, Y: yHi}})
	if err != nil {
		return nil, err
	}
	l.Color = refColor
	l.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	return l, nil
}

func logLogAxes(p *plot.Plot) {
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
}

func sampleXYs(s Samples) plotter.XYs {
	pts := make(plotter.XYs, len(s))
	for i, p := range s {
		pts[i] = plotter.XY{X: p.Energy, Y: p.Loss}
	}
	return pts
}

func curveXYs(c Curve) plotter.XYs {
	pts := make(plotter.XYs, c.Len())
	for i := range c.Energies {
		pts[i] = plotter.XY{X: c.Energies[i], Y: c.Losses[i]}
	}
	return pts
}

func lossExtent(s Samples) (lo, hi float64) {
	lo, hi = s[0].Loss, s[0].Loss
	for _, p := range s[1:] {
		lo = math.Min(lo, p.Loss)
		hi = math.Max(hi, p.Loss)
	}
	return lo, hi
}

// writeTiled lays the panels out on a single canvas and writes it in the
// given format.
func writeTiled(panels [][]*plot.Plot, w, h vg.Length, path, format string) error {
	img, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return fmt.Errorf("creating %s canvas: %w", format, err)
	}

	rows := len(panels)
	cols := len(panels[0])
	tiles := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 4,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}

	canvases := plot.Align(panels, tiles, draw.New(img))
	for i := range panels {
		for j := range panels[i] {
			panels[i][j].Draw(canvases[i][j])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := img.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
