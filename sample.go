package stoppower

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// Column names expected in the input table. Extra columns are ignored.
const (
	energyColumn = "Energy_MeV"
	lossColumn   = "Total_Deposit_MeV"
)

var (
	// ErrNoSamples reports an input table with a header but no data rows.
	ErrNoSamples = errors.New("no data rows in input")

	// ErrUnsorted reports sample energies that are not strictly ascending.
	// The log-log spline silently produces garbage on unsorted input, so
	// order is validated at load time.
	ErrUnsorted = errors.New("sample energies not in ascending order")
)

// Sample is one simulated data point: a muon kinetic energy and the total
// energy deposited per unit path length at that energy. Immutable once
// loaded.
type Sample struct {
	Energy float64 // kinetic energy [MeV]
	Loss   float64 // energy deposit [MeV/mm]
}

// Samples is an energy-ordered series of simulated points.
type Samples []Sample

// ReadSamples parses a delimited table from r. The header row must contain
// the Energy_MeV and Total_Deposit_MeV columns; rows must be sorted by
// ascending energy.
func ReadSamples(r io.Reader) (Samples, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoSamples
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	energyIdx, lossIdx := -1, -1
	for i, name := range header {
		switch name {
		case energyColumn:
			energyIdx = i
		case lossColumn:
			lossIdx = i
		}
	}
	if energyIdx < 0 {
		return nil, fmt.Errorf("missing column %q in header %v", energyColumn, header)
	}
	if lossIdx < 0 {
		return nil, fmt.Errorf("missing column %q in header %v", lossColumn, header)
	}

	var samples Samples
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}

		energy, err := strconv.ParseFloat(record[energyIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing %s: %w", line, energyColumn, err)
		}
		loss, err := strconv.ParseFloat(record[lossIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing %s: %w", line, lossColumn, err)
		}

		if n := len(samples); n > 0 && energy <= samples[n-1].Energy {
			return nil, fmt.Errorf("line %d: energy %g after %g: %w",
				line, energy, samples[n-1].Energy, ErrUnsorted)
		}
		samples = append(samples, Sample{Energy: energy, Loss: loss})
	}

	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	return samples, nil
}

// LoadSamples reads samples from the CSV file at path.
func LoadSamples(path string) (Samples, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	samples, err := ReadSamples(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// Select returns the contiguous sub-series with energy in [lo, hi],
// inclusive on both ends. The receiver stays untouched; the result shares
// backing storage.
func (s Samples) Select(lo, hi float64) Samples {
	start := 0
	for start < len(s) && s[start].Energy < lo {
		start++
	}
	end := start
	for end < len(s) && s[end].Energy <= hi {
		end++
	}
	return s[start:end]
}

// Energies returns the energy coordinates as a fresh slice.
func (s Samples) Energies() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Energy
	}
	return out
}

// Losses returns the loss coordinates as a fresh slice.
func (s Samples) Losses() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Loss
	}
	return out
}

// Nearest returns the sample whose energy is closest to e.
// Panics on an empty series.
func (s Samples) Nearest(e float64) Sample {
	best := s[0]
	for _, p := range s[1:] {
		if math.Abs(p.Energy-e) < math.Abs(best.Energy-e) {
			best = p
		}
	}
	return best
}
