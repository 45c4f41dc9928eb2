package stoppower

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MinFitPoints is the smallest series a regional power law is fitted on.
// Bands with fewer points skip the fit entirely; no trend is fabricated.
const MinFitPoints = 3

// PowerLaw is the least-squares fit of log10(loss) = Slope·log10(E) +
// Intercept over an energy band, i.e. dE/dx ∝ E^Slope locally.
type PowerLaw struct {
	Slope     float64
	Intercept float64
	RSquared  float64 // goodness of fit in log-log space (1.0 = perfect)
	Points    int     // samples the fit was computed from
}

// FitPowerLaw performs linear least-squares regression on the log-log
// transformed series. Requires at least MinFitPoints points and strictly
// positive coordinates.
func FitPowerLaw(s Samples) (PowerLaw, error) {
	if len(s) < MinFitPoints {
		return PowerLaw{}, fmt.Errorf("need at least %d points for a power-law fit, got %d",
			MinFitPoints, len(s))
	}

	logE := make([]float64, len(s))
	logL := make([]float64, len(s))
	for i, p := range s {
		if p.Energy <= 0 || p.Loss <= 0 {
			return PowerLaw{}, fmt.Errorf("non-positive sample (%g, %g) at index %d", p.Energy, p.Loss, i)
		}
		logE[i] = math.Log10(p.Energy)
		logL[i] = math.Log10(p.Loss)
	}

	intercept, slope := stat.LinearRegression(logE, logL, nil, false)
	r2 := stat.RSquared(logE, logL, nil, intercept, slope)

	return PowerLaw{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  r2,
		Points:    len(s),
	}, nil
}

// Predict evaluates the fitted power law at energy e [MeV].
func (p PowerLaw) Predict(e float64) float64 {
	return math.Pow(10, p.Slope*math.Log10(e)+p.Intercept)
}

// Sample evaluates the fitted trend on a logarithmic grid of n points
// spanning [eMin, eMax], for overlaying on plots.
func (p PowerLaw) Sample(eMin, eMax float64, n int) Curve {
	if n < 2 {
		n = 2
	}
	grid := floats.LogSpan(make([]float64, n), eMin, eMax)
	curve := Curve{Energies: grid, Losses: make([]float64, n)}
	for i, e := range grid {
		curve.Losses[i] = p.Predict(e)
	}
	return curve
}
