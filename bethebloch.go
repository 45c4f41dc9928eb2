package stoppower

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Physical constants for the muon/copper system, in MeV and g/cm³.
const (
	MuonMass     = 105.66 // m_mu [MeV]
	ElectronMass = 0.511  // m_e [MeV]

	CopperZ       = 29.0    // atomic number
	CopperA       = 63.5    // atomic mass [g/mol]
	CopperDensity = 8.96    // ρ [g/cm³]
	CopperPlasma  = 28.8e-6 // plasma energy ħω_p [MeV]

	// BetheK is the Bethe-Bloch constant K = 4π N_A r_e² m_e c²
	// in practical units [MeV·cm²/mol].
	BetheK = 0.307075

	// DefaultIonizationEV is the mean ionization potential used for this
	// analysis [eV]. The tabulated value for copper is 322 eV.
	DefaultIonizationEV = 322.0

	// correctionThreshold separates the low-energy (shell correction) and
	// high-energy (density effect) regimes [MeV].
	correctionThreshold = 100.0
)

// Loss is the tagged result of a Bethe-Bloch evaluation: either a valid
// stopping-power value or a marker that the input was physically
// inadmissible. The zero value is invalid.
type Loss struct {
	Value float64 // dE/dx [MeV/mm]
	Valid bool
}

// Kinematics holds the relativistic state of a muon at a given kinetic energy.
type Kinematics struct {
	Energy      float64 // kinetic energy [MeV]
	TotalEnergy float64 // E + m_mu [MeV]
	Beta        float64 // v/c
	Beta2       float64 // β²
	Gamma       float64 // Lorentz factor
	Momentum    float64 // p = E β γ [MeV/c]
}

// MuonKinematics computes β, γ and momentum for a muon of kinetic energy
// e [MeV]. Values outside the physical domain (β² outside (0,1)) are
// reported as-is; use the Valid field of BetheBloch for domain checks.
func MuonKinematics(e float64) Kinematics {
	gamma := (e + MuonMass) / MuonMass
	beta2 := 1 - 1/(gamma*gamma)
	beta := math.Sqrt(math.Abs(beta2))
	return Kinematics{
		Energy:      e,
		TotalEnergy: e + MuonMass,
		Beta:        beta,
		Beta2:       beta2,
		Gamma:       gamma,
		Momentum:    e * beta * gamma,
	}
}

// BetheBloch evaluates the mean stopping power of a muon in copper at
// kinetic energy e [MeV] with mean ionization potential ionizationEV [eV].
//
// The evaluation is a pure function. Inadmissible inputs (β² ≤ 0, β² ≥ 1,
// non-positive logarithm argument) return an invalid Loss instead of an
// error so that grid sweeps can filter bad points without aborting.
func BetheBloch(e, ionizationEV float64) Loss {
	k := MuonKinematics(e)
	if k.Beta2 <= 0 || k.Beta2 >= 1 {
		return Loss{}
	}

	// Maximum energy transfer in a single collision.
	massRatio := ElectronMass / MuonMass
	tMax := 2 * ElectronMass * k.Beta2 * k.Gamma * k.Gamma /
		(1 + 2*k.Gamma*massRatio + massRatio*massRatio)

	iMeV := ionizationEV * 1e-6

	arg := 2 * ElectronMass * k.Beta2 * k.Gamma * k.Gamma * tMax / (iMeV * iMeV)
	if arg <= 0 {
		return Loss{}
	}

	prefactor := BetheK * CopperZ / CopperA * CopperDensity / k.Beta2
	main := prefactor * (0.5*math.Log(arg) - k.Beta2)

	// Density-effect correction, significant above ~100 MeV for copper.
	delta := 0.0
	if e > correctionThreshold {
		delta = math.Log(k.Beta*k.Gamma) + math.Log(CopperPlasma/iMeV) - 0.5
		delta = math.Max(0, delta)
	}

	// Shell correction, relevant at low energies only.
	shell := 0.0
	if e < correctionThreshold {
		shell = prefactor * 0.1 * math.Sqrt(correctionThreshold/e)
	}

	return Loss{Value: main - delta - shell, Valid: true}
}

// TheoryPoint is one evaluated point of the theoretical curve.
type TheoryPoint struct {
	Energy float64
	Loss   float64
}

// TheoryCurve evaluates the Bethe-Bloch model on a logarithmic grid of n
// points spanning [eMin, eMax] MeV and returns only the valid, positive
// points. A single inadmissible grid point is dropped, never fatal.
func TheoryCurve(eMin, eMax float64, n int, ionizationEV float64) []TheoryPoint {
	if n < 2 {
		n = 2
	}
	grid := floats.LogSpan(make([]float64, n), eMin, eMax)

	curve := make([]TheoryPoint, 0, n)
	for _, e := range grid {
		loss := BetheBloch(e, ionizationEV)
		if !loss.Valid || loss.Value <= 0 || math.IsNaN(loss.Value) {
			continue
		}
		curve = append(curve, TheoryPoint{Energy: e, Loss: loss.Value})
	}
	return curve
}
