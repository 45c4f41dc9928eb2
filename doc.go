// Package stoppower computes and visualizes the stopping power (dE/dx) of
// muons traversing copper, comparing Geant4-simulated energy deposits against
// the Bethe-Bloch theoretical formula.
//
// # Overview
//
// The package is a one-shot batch pipeline:
//
//  1. Load simulated (Energy_MeV, Total_Deposit_MeV) samples from CSV.
//  2. Evaluate the Bethe-Bloch model over a synthetic logarithmic grid.
//  3. Interpolate the samples in log-log space for smooth overlay curves.
//  4. Fit regional power laws (dE/dx ∝ E^slope) per energy band.
//  5. Render diagnostic figures (PNG + PDF) and print a statistics report.
//
// # The model
//
// Mean energy loss per unit path length for a heavy charged particle:
//
//	-dE/dx = K (Z/A) ρ (1/β²) [ ½ ln(2 m_e β²γ² T_max / I²) - β² ] - δ - C_shell
//
// Where:
//   - K = 0.307075 MeV·cm²/mol
//   - Z, A, ρ: atomic number, mass and density of the absorber (copper)
//   - β, γ: relativistic factors of the muon
//   - T_max: maximum energy transfer in a single collision
//   - I: mean ionization potential (322 eV for this analysis)
//   - δ: density-effect correction (high energy)
//   - C_shell: shell correction (low energy)
//
// Physically inadmissible inputs (β² outside (0,1), non-positive logarithm
// argument) yield an invalid Loss value rather than an error or a panic;
// callers filter invalid points before plotting or fitting.
//
// # Quick start
//
//	cfg := stoppower.DefaultConfig()
//	cfg.Input = "detailed_results.csv"
//
//	analysis, err := stoppower.Run(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("ionization minimum: %.0f MeV at %.4f MeV/mm\n",
//	    analysis.Minimum.Energy, analysis.Minimum.Loss)
//
// The stdout report format (section headers included) is a stable contract
// carried over from the original analysis tool; scripts grep for its banner.
package stoppower
