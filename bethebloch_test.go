package stoppower

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// TestBetheBloch_InvalidDomain verifies that non-physical energies yield an
// invalid Loss instead of a number or a panic.
func TestBetheBloch_InvalidDomain(t *testing.T) {
	cases := []struct {
		name   string
		energy float64
	}{
		{"zero energy", 0},
		{"negative energy", -50},
		{"energy at -m_mu", -MuonMass},
		{"deeply negative", -1000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loss := BetheBloch(tc.energy, DefaultIonizationEV)
			if loss.Valid {
				t.Errorf("E=%g MeV: expected invalid, got %.6f", tc.energy, loss.Value)
			}
		})
	}
}

// TestBetheBloch_Continuity checks that small energy perturbations produce
// small output perturbations away from the 100 MeV correction threshold.
func TestBetheBloch_Continuity(t *testing.T) {
	for _, e := range []float64{5, 50, 200, 500, 5000, 1e6, 1e8} {
		a := BetheBloch(e, DefaultIonizationEV)
		b := BetheBloch(e*1.001, DefaultIonizationEV)
		if !a.Valid || !b.Valid {
			t.Fatalf("E=%g MeV: unexpected invalid evaluation", e)
		}

		rel := math.Abs(b.Value-a.Value) / math.Abs(a.Value)
		if rel > 0.01 {
			t.Errorf("E=%g MeV: 0.1%% energy change moved loss by %.2f%%", e, rel*100)
		}
	}
}

// TestBetheBloch_MinimumLocation verifies the ionization minimum of the
// model over [100, 10000] MeV sits in the physically expected window.
func TestBetheBloch_MinimumLocation(t *testing.T) {
	grid := floats.LogSpan(make([]float64, 500), 100, 10000)

	minE, minLoss := 0.0, math.Inf(1)
	for _, e := range grid {
		loss := BetheBloch(e, DefaultIonizationEV)
		if !loss.Valid {
			t.Fatalf("E=%g MeV: unexpected invalid evaluation", e)
		}
		if loss.Value < minLoss {
			minE, minLoss = e, loss.Value
		}
	}

	if minE < 200 || minE > 1000 {
		t.Errorf("model minimum at %.0f MeV, expected within [200, 1000] MeV", minE)
	}
	t.Logf("✓ model minimum: %.0f MeV at %.4f MeV/mm", minE, minLoss)
}

// TestBetheBloch_PositiveOverRange: the stopping power stays positive across
// the full analysis range for the canonical constants.
func TestBetheBloch_PositiveOverRange(t *testing.T) {
	for _, e := range floats.LogSpan(make([]float64, 200), 1, 1e9) {
		loss := BetheBloch(e, DefaultIonizationEV)
		if !loss.Valid {
			t.Fatalf("E=%g MeV: unexpected invalid evaluation", e)
		}
		if loss.Value <= 0 {
			t.Errorf("E=%g MeV: non-positive loss %.6f", e, loss.Value)
		}
	}
}

func TestMuonKinematics(t *testing.T) {
	k := MuonKinematics(300)

	wantGamma := (300 + MuonMass) / MuonMass
	if math.Abs(k.Gamma-wantGamma) > 1e-12 {
		t.Errorf("gamma = %.6f, want %.6f", k.Gamma, wantGamma)
	}
	if k.Beta <= 0 || k.Beta >= 1 {
		t.Errorf("beta = %.6f, want within (0, 1)", k.Beta)
	}
	if k.Momentum <= 0 {
		t.Errorf("momentum = %.6f, want positive", k.Momentum)
	}
	if got := k.TotalEnergy; got != 300+MuonMass {
		t.Errorf("total energy = %.4f, want %.4f", got, 300+MuonMass)
	}
}

// TestTheoryCurve verifies grid generation filters nothing for the physical
// range and keeps energies ascending.
func TestTheoryCurve(t *testing.T) {
	curve := TheoryCurve(1, 1e9, 2000, DefaultIonizationEV)

	if len(curve) == 0 {
		t.Fatal("empty theory curve")
	}
	if len(curve) > 2000 {
		t.Fatalf("curve has %d points, grid was 2000", len(curve))
	}
	for i, p := range curve {
		if p.Loss <= 0 {
			t.Errorf("point %d: non-positive loss %.6f", i, p.Loss)
		}
		if i > 0 && p.Energy <= curve[i-1].Energy {
			t.Errorf("point %d: energies not ascending", i)
		}
	}
	t.Logf("✓ theory curve: %d valid points", len(curve))
}
