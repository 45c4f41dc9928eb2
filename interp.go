package stoppower

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// MinSplinePoints is the smallest series a cubic smoothing spline is fitted
// on. Sub-ranges with fewer points skip interpolation and draw raw markers
// only.
const MinSplinePoints = 4

// Curve is a resampled smooth curve for plotting.
type Curve struct {
	Energies []float64
	Losses   []float64
}

// Len reports the number of resampled points.
func (c Curve) Len() int { return len(c.Energies) }

// SmoothLogLog fits a natural cubic spline on (log10 E, log10 loss) and
// resamples it at n points spanning the observed energy range. Fitting in
// log-log space preserves the power-law character of stopping-power data.
// Queries clamp to the boundary values outside the fitted domain.
//
// Returns an error when the series has fewer than MinSplinePoints points or
// contains non-positive coordinates (log-log requires positive data).
func SmoothLogLog(s Samples, n int) (Curve, error) {
	if len(s) < MinSplinePoints {
		return Curve{}, fmt.Errorf("need at least %d points for cubic interpolation, got %d",
			MinSplinePoints, len(s))
	}

	logE := make([]float64, len(s))
	logL := make([]float64, len(s))
	for i, p := range s {
		if p.Energy <= 0 || p.Loss <= 0 {
			return Curve{}, fmt.Errorf("non-positive sample (%g, %g) at index %d", p.Energy, p.Loss, i)
		}
		logE[i] = math.Log10(p.Energy)
		logL[i] = math.Log10(p.Loss)
	}

	var spline interp.NaturalCubic
	if err := spline.Fit(logE, logL); err != nil {
		return Curve{}, fmt.Errorf("fitting log-log spline: %w", err)
	}

	grid := floats.Span(make([]float64, n), logE[0], logE[len(logE)-1])
	curve := Curve{
		Energies: make([]float64, n),
		Losses:   make([]float64, n),
	}
	for i, x := range grid {
		curve.Energies[i] = math.Pow(10, x)
		curve.Losses[i] = math.Pow(10, spline.Predict(x))
	}
	return curve, nil
}

// SmoothLinear fits a natural cubic spline in linear space and resamples it
// at n points. Used for the minimum-region and zoom panels, where the
// original analysis interpolated in linear coordinates.
func SmoothLinear(s Samples, n int) (Curve, error) {
	if len(s) < MinSplinePoints {
		return Curve{}, fmt.Errorf("need at least %d points for cubic interpolation, got %d",
			MinSplinePoints, len(s))
	}

	var spline interp.NaturalCubic
	if err := spline.Fit(s.Energies(), s.Losses()); err != nil {
		return Curve{}, fmt.Errorf("fitting spline: %w", err)
	}

	grid := floats.Span(make([]float64, n), s[0].Energy, s[len(s)-1].Energy)
	curve := Curve{
		Energies: grid,
		Losses:   make([]float64, n),
	}
	for i, x := range grid {
		curve.Losses[i] = spline.Predict(x)
	}
	return curve, nil
}
