package stoppower

import (
	"fmt"
	"log/slog"
)

// Theory grid limits [MeV]: the well-characterized range of the analysis,
// 1 MeV up to 1 PeV.
const (
	theoryEMin = 1.0
	theoryEMax = 1e9
)

// Config controls a full analysis run.
type Config struct {
	Input        string // path to the CSV table of simulated samples
	OutDir       string // directory the figures are written to
	IonizationEV float64
	GridPoints   int  // theory-curve grid resolution
	Resolution   int  // interpolated points per plotted curve
	Figures      bool // render PNG/PDF artifacts

	// Logger receives progress events; nil means slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the settings of the original analysis.
func DefaultConfig() Config {
	return Config{
		Input:        "detailed_results.csv",
		OutDir:       ".",
		IonizationEV: DefaultIonizationEV,
		GridPoints:   2000,
		Resolution:   500,
		Figures:      true,
	}
}

// Analysis is the result of one pipeline run. All intermediate products are
// carried explicitly; nothing lives in package state.
type Analysis struct {
	Samples    Samples
	Theory     []TheoryPoint
	Smooth     Curve // full-range log-log interpolation (empty if <4 samples)
	Minimum    Minimum
	Detailed   []RegionStats
	Broad      []RegionStats
	Trends     []Trend
	Files      []string // artifacts written, in order
	Resolution int
}

// Run executes the pipeline: load → theory → interpolate → minimum → band
// statistics → trends → figures. The caller renders the textual report with
// Report.
func Run(cfg Config) (*Analysis, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	samples, err := LoadSamples(cfg.Input)
	if err != nil {
		return nil, err
	}
	logger.Info("samples loaded",
		"path", cfg.Input,
		"points", len(samples),
		"e_min_mev", samples[0].Energy,
		"e_max_mev", samples[len(samples)-1].Energy)

	theory := TheoryCurve(theoryEMin, theoryEMax, cfg.GridPoints, cfg.IonizationEV)
	logger.Info("theory curve evaluated",
		"grid_points", cfg.GridPoints,
		"valid_points", len(theory),
		"ionization_ev", cfg.IonizationEV)

	smooth, err := SmoothLogLog(samples, cfg.Resolution)
	if err != nil {
		// Too few points for a spline: plots fall back to raw markers.
		logger.Warn("skipping smooth interpolation", "err", err)
		smooth = Curve{}
	}

	minimum, err := FindMinimum(samples, MinimumSearchRegion)
	if err != nil {
		return nil, fmt.Errorf("locating ionization minimum: %w", err)
	}
	logger.Info("ionization minimum located",
		"energy_mev", minimum.Energy,
		"loss_mev_mm", minimum.Loss,
		"beta", minimum.Kinematics.Beta,
		"gamma", minimum.Kinematics.Gamma)

	a := &Analysis{
		Samples:    samples,
		Theory:     theory,
		Smooth:     smooth,
		Minimum:    minimum,
		Detailed:   RegionalStatistics(samples, DetailedRegions, minimum.Loss),
		Broad:      RegionalStatistics(samples, BroadRegions, minimum.Loss),
		Trends:     HighEnergyTrends(samples, HighEnergyRegions, minimum.Loss),
		Resolution: cfg.Resolution,
	}

	if cfg.Figures {
		files, err := RenderFigures(a, cfg)
		if err != nil {
			return nil, fmt.Errorf("rendering figures: %w", err)
		}
		a.Files = files
		logger.Info("figures written", "dir", cfg.OutDir, "files", len(files))
	}

	return a, nil
}
