package stoppower

import (
	"math"
	"testing"
)

// powerLawSamples builds loss = c·E^p over the given energies.
func powerLawSamples(c, p float64, energies []float64) Samples {
	s := make(Samples, len(energies))
	for i, e := range energies {
		s[i] = Sample{Energy: e, Loss: c * math.Pow(e, p)}
	}
	return s
}

// TestSmoothLogLog_PowerLaw: exact power-law data is collinear in log-log
// space, so the cubic spline must reproduce it everywhere, not just at the
// knots.
func TestSmoothLogLog_PowerLaw(t *testing.T) {
	samples := powerLawSamples(2.5, -1.3, []float64{1, 10, 100, 1000, 1e4, 1e5})

	curve, err := SmoothLogLog(samples, 101)
	if err != nil {
		t.Fatalf("SmoothLogLog failed: %v", err)
	}
	if curve.Len() != 101 {
		t.Fatalf("resampled %d points, want 101", curve.Len())
	}

	for i := range curve.Energies {
		want := 2.5 * math.Pow(curve.Energies[i], -1.3)
		if rel := math.Abs(curve.Losses[i]-want) / want; rel > 1e-9 {
			t.Errorf("E=%.2f: loss %.8g, want %.8g (rel %.2e)",
				curve.Energies[i], curve.Losses[i], want, rel)
		}
	}

	// Resampling spans exactly the observed domain.
	if got := curve.Energies[0]; math.Abs(got-1) > 1e-9 {
		t.Errorf("curve starts at %g, want 1", got)
	}
	if got := curve.Energies[curve.Len()-1]; math.Abs(got-1e5)/1e5 > 1e-9 {
		t.Errorf("curve ends at %g, want 1e5", got)
	}
}

func TestSmoothLogLog_TooFewPoints(t *testing.T) {
	samples := powerLawSamples(1, 1, []float64{1, 10, 100})

	if _, err := SmoothLogLog(samples, 50); err == nil {
		t.Error("expected error for 3-point series, got none")
	}
}

func TestSmoothLogLog_NonPositive(t *testing.T) {
	samples := Samples{{1, 1}, {10, -2}, {100, 3}, {1000, 4}}

	if _, err := SmoothLogLog(samples, 50); err == nil {
		t.Error("expected error for non-positive loss, got none")
	}
}

// TestSmoothLinear_Knots: an interpolating spline passes through its knots.
func TestSmoothLinear_Knots(t *testing.T) {
	samples := Samples{{100, 1.4}, {300, 1.1}, {700, 1.15}, {1500, 1.25}, {3000, 1.32}}

	curve, err := SmoothLinear(samples, 201)
	if err != nil {
		t.Fatalf("SmoothLinear failed: %v", err)
	}

	// Endpoints are knots of the resampled grid.
	if got := curve.Losses[0]; math.Abs(got-1.4) > 1e-9 {
		t.Errorf("first resampled loss %.6f, want 1.4", got)
	}
	if got := curve.Losses[curve.Len()-1]; math.Abs(got-1.32) > 1e-9 {
		t.Errorf("last resampled loss %.6f, want 1.32", got)
	}

	// Interior values stay within a sane envelope of the data.
	for i, l := range curve.Losses {
		if l < 0.9 || l > 1.6 {
			t.Errorf("resampled point %d: loss %.4f outside data envelope", i, l)
		}
	}
}
