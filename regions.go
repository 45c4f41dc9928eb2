package stoppower

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Region is a named energy band [Min, Max] MeV used for reporting and
// regional fits. The only invariant is Min < Max.
type Region struct {
	Name        string
	Min, Max    float64 // band limits [MeV], inclusive
	Description string
}

// Canonical band tables of the analysis. Names and limits mirror the
// original report output, which downstream scripts parse.
var (
	// MinimumSearchRegion is where the ionization minimum is located.
	MinimumSearchRegion = Region{Name: "Región del mínimo", Min: 100, Max: 5000}

	// ZoomRegion is the high-resolution window around the minimum.
	ZoomRegion = Region{Name: "Zoom del mínimo", Min: 200, Max: 2000}

	// RelativisticThreshold marks the start of the relativistic panel [MeV].
	RelativisticThreshold = 1000.0

	// DetailedRegions drive the per-band statistics table.
	DetailedRegions = []Region{
		{"Muy baja energía", 1, 50, "1/β² dominante"},
		{"Baja energía", 50, 200, "Transición a relativístico"},
		{"Región del mínimo", 200, 1000, "Mínimo de ionización"},
		{"Relativística", 1000, 50000, "Plateau relativístico"},
		{"Ultra-alta GeV", 50000, 1e6, "Efectos de densidad"},
		{"TeV scale", 1e6, 1e8, "Inicio efectos radiativos"},
		{"PeV scale", 1e8, 1e9, "Régimen ultra-extremo"},
	}

	// BroadRegions drive the coarse three-band summary table.
	BroadRegions = []Region{
		{"No-relativística", 1, 100, "1/β² dominante"},
		{"Relativística", 100, 10000, "región del mínimo"},
		{"Ultra-relativística", 10000, 1e9, "efectos de densidad"},
	}

	// TrendRegions are the sub-bands whose local power-law exponent is
	// overlaid on the relativistic panel.
	TrendRegions = []Region{
		{"1-10 GeV", 1000, 10000, ""},
		{"10 GeV - 1 TeV", 10000, 1e6, ""},
		{"1 TeV - 1 PeV", 1e6, 1e9, ""},
	}

	// HighEnergyRegions are the asymptotic-behavior fit ranges.
	HighEnergyRegions = []Region{
		{"TeV scale (1-100 TeV)", 1e6, 1e8, ""},
		{"Ultra-high (100 TeV - 1 PeV)", 1e8, 1e9, ""},
	}

	// CharacteristicEnergies are marked on panels when present in the data.
	CharacteristicEnergies = []struct {
		Energy float64
		Label  string
	}{
		{1000, "1 GeV"},
		{1e6, "1 TeV"},
		{1e9, "1 PeV"},
	}
)

// Minimum describes the ionization minimum: the sample with the smallest
// loss inside the minimum search region, plus the muon kinematics there.
type Minimum struct {
	Energy     float64 // [MeV]
	Loss       float64 // [MeV/mm]
	Kinematics Kinematics
}

// FindMinimum locates the ionization minimum within region. Ties resolve to
// the first occurrence (stable argmin). Returns an error when no sample
// falls inside the region.
func FindMinimum(s Samples, region Region) (Minimum, error) {
	band := s.Select(region.Min, region.Max)
	if len(band) == 0 {
		return Minimum{}, fmt.Errorf("no samples in %s [%g, %g] MeV", region.Name, region.Min, region.Max)
	}

	idx := floats.MinIdx(band.Losses())
	min := band[idx]
	return Minimum{
		Energy:     min.Energy,
		Loss:       min.Loss,
		Kinematics: MuonKinematics(min.Energy),
	}, nil
}

// RegionStats are the descriptive statistics of the losses inside one band.
type RegionStats struct {
	Region     Region
	Count      int
	FirstE     float64 // lowest sample energy in the band [MeV]
	LastE      float64 // highest sample energy in the band [MeV]
	Mean       float64
	StdDev     float64 // population standard deviation
	Min        float64
	Max        float64
	RatioToMin float64 // Mean / global minimum loss
	EndRatio   float64 // loss of the last sample in the band / global minimum loss
}

// RegionalStatistics computes per-band statistics against the global
// minimum loss. Bands with no matching samples are omitted, so an empty
// band can never divide by zero or emit a bogus row.
func RegionalStatistics(s Samples, regions []Region, minLoss float64) []RegionStats {
	out := make([]RegionStats, 0, len(regions))
	for _, region := range regions {
		band := s.Select(region.Min, region.Max)
		if len(band) == 0 {
			continue
		}

		losses := band.Losses()
		out = append(out, RegionStats{
			Region:     region,
			Count:      len(band),
			FirstE:     band[0].Energy,
			LastE:      band[len(band)-1].Energy,
			Mean:       stat.Mean(losses, nil),
			StdDev:     stat.PopStdDev(losses, nil),
			Min:        floats.Min(losses),
			Max:        floats.Max(losses),
			RatioToMin: stat.Mean(losses, nil) / minLoss,
			EndRatio:   band[len(band)-1].Loss / minLoss,
		})
	}
	return out
}

// Trend is a fitted high-energy power law together with band context.
type Trend struct {
	Region      Region
	Fit         PowerLaw
	RangeGrowth float64 // loss at band end / loss at band start
	GrowthVsMin float64 // loss at band end / global minimum loss
}

// HighEnergyTrends fits the asymptotic power laws over the given regions.
// Bands with fewer than MinFitPoints samples are skipped.
func HighEnergyTrends(s Samples, regions []Region, minLoss float64) []Trend {
	out := make([]Trend, 0, len(regions))
	for _, region := range regions {
		band := s.Select(region.Min, region.Max)
		fit, err := FitPowerLaw(band)
		if err != nil {
			continue
		}
		out = append(out, Trend{
			Region:      region,
			Fit:         fit,
			RangeGrowth: band[len(band)-1].Loss / band[0].Loss,
			GrowthVsMin: band[len(band)-1].Loss / minLoss,
		})
	}
	return out
}
