package stoppower

import (
	"math"
	"testing"
)

func TestFindMinimum(t *testing.T) {
	samples := Samples{
		{50, 3.0}, {150, 1.5}, {400, 1.1}, {900, 1.2}, {4000, 1.3}, {9000, 1.4},
	}

	min, err := FindMinimum(samples, MinimumSearchRegion)
	if err != nil {
		t.Fatalf("FindMinimum failed: %v", err)
	}

	if min.Energy != 400 || min.Loss != 1.1 {
		t.Errorf("minimum = (%g, %g), want (400, 1.1)", min.Energy, min.Loss)
	}
	if min.Kinematics.Gamma <= 1 {
		t.Errorf("gamma at minimum = %.4f, want > 1", min.Kinematics.Gamma)
	}
}

// TestFindMinimum_Ties: equal losses resolve to the first occurrence.
func TestFindMinimum_Ties(t *testing.T) {
	samples := Samples{{200, 1.1}, {500, 1.1}, {800, 1.1}}

	min, err := FindMinimum(samples, MinimumSearchRegion)
	if err != nil {
		t.Fatalf("FindMinimum failed: %v", err)
	}
	if min.Energy != 200 {
		t.Errorf("tie resolved to %g MeV, want first occurrence at 200", min.Energy)
	}
}

func TestFindMinimum_EmptyRegion(t *testing.T) {
	samples := Samples{{1, 10}, {10, 5}} // nothing in [100, 5000]

	if _, err := FindMinimum(samples, MinimumSearchRegion); err == nil {
		t.Error("expected error for empty minimum region, got none")
	}
}

// TestRegionalStatistics_SkipsEmptyBands: bands without samples produce no
// row and therefore no division by zero.
func TestRegionalStatistics_SkipsEmptyBands(t *testing.T) {
	samples := Samples{{300, 1.2}, {600, 1.1}, {900, 1.3}} // only "Región del mínimo"

	stats := RegionalStatistics(samples, DetailedRegions, 1.1)

	if len(stats) != 1 {
		t.Fatalf("got %d rows, want 1 (all other bands empty)", len(stats))
	}
	row := stats[0]
	if row.Region.Name != "Región del mínimo" {
		t.Errorf("row for %q, want \"Región del mínimo\"", row.Region.Name)
	}
	for name, v := range map[string]float64{
		"mean": row.Mean, "stddev": row.StdDev, "ratio": row.RatioToMin,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s is %v", name, v)
		}
	}
}

func TestRegionalStatistics_Values(t *testing.T) {
	samples := Samples{{10, 2}, {20, 4}}
	regions := []Region{{Name: "band", Min: 1, Max: 100}}

	stats := RegionalStatistics(samples, regions, 2)
	if len(stats) != 1 {
		t.Fatalf("got %d rows, want 1", len(stats))
	}

	row := stats[0]
	assertClose(t, "mean", row.Mean, 3, 1e-12)
	assertClose(t, "stddev", row.StdDev, 1, 1e-12) // population stddev of {2,4}
	assertClose(t, "min", row.Min, 2, 0)
	assertClose(t, "max", row.Max, 4, 0)
	assertClose(t, "ratio", row.RatioToMin, 1.5, 1e-12)
	assertClose(t, "end ratio", row.EndRatio, 2, 1e-12) // last loss 4 / minimum 2
	if row.Count != 2 || row.FirstE != 10 || row.LastE != 20 {
		t.Errorf("band context = {%d %g %g}, want {2 10 20}", row.Count, row.FirstE, row.LastE)
	}
}

// TestHighEnergyTrends: under-populated bands are skipped, populated bands
// recover their exponent.
func TestHighEnergyTrends(t *testing.T) {
	// Exact power law inside the TeV band; nothing in the PeV band.
	samples := powerLawSamples(0.5, 0.02, []float64{1e6, 3e6, 1e7, 5e7, 1e8})

	trends := HighEnergyTrends(samples, HighEnergyRegions, 1.0)

	if len(trends) != 1 {
		t.Fatalf("got %d trends, want 1", len(trends))
	}
	tr := trends[0]
	if tr.Region.Name != "TeV scale (1-100 TeV)" {
		t.Errorf("trend region %q unexpected", tr.Region.Name)
	}
	assertClose(t, "slope", tr.Fit.Slope, 0.02, 1e-10)
	if tr.RangeGrowth <= 1 {
		t.Errorf("range growth %.4f, want > 1 for a rising band", tr.RangeGrowth)
	}
	t.Logf("✓ trend: dE/dx ∝ E^%.4f over %s", tr.Fit.Slope, tr.Region.Name)
}
