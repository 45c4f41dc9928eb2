package stoppower

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
)

var headerStyle = color.New(color.Bold)

// Report prints the fixed-format textual analysis to w. Section headers and
// wording are the stdout contract of the original tool; downstream scripts
// grep for them. Empty bands and skipped fits emit nothing.
func Report(w io.Writer, a *Analysis) {
	rule := strings.Repeat("=", 80)
	sub := strings.Repeat("-", 55)

	fmt.Fprintln(w, rule)
	headerStyle.Fprintln(w, "ANÁLISIS FINAL DE ALTA RESOLUCIÓN: CURVA DE BETHE-BLOCH PARA MUONES")
	fmt.Fprintln(w, rule)

	first := a.Samples[0].Energy
	last := a.Samples[len(a.Samples)-1].Energy
	fmt.Fprintf(w, "Dataset original: %d puntos de energía\n", len(a.Samples))
	fmt.Fprintf(w, "Resolución interpolada: %d puntos por gráfico\n", a.Resolution)
	fmt.Fprintf(w, "Rango: %.1f MeV - %.0e MeV\n", first, last)
	fmt.Fprintf(w, "Equivalente: %.4f GeV - %.0f PeV\n", first/1000, last/1e9)
	fmt.Fprintln(w)

	reportMinimum(w, sub, a.Minimum)
	reportDetailedRegions(w, sub, a.Detailed)
	reportBroadRegions(w, sub, a.Broad)
	reportTrends(w, sub, a.Trends)
	reportValidation(w, sub)

	if len(a.Files) > 0 {
		headerStyle.Fprintln(w, "ARCHIVOS GENERADOS:")
		fmt.Fprintln(w, sub)
		for _, f := range a.Files {
			fmt.Fprintf(w, "  - %s\n", f)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, rule)
}

func reportMinimum(w io.Writer, sub string, min Minimum) {
	headerStyle.Fprintln(w, "ANÁLISIS DETALLADO DEL MÍNIMO DE IONIZACIÓN:")
	fmt.Fprintln(w, sub)
	k := min.Kinematics
	fmt.Fprintf(w, "Energía del mínimo: %.0f MeV = %.1f GeV\n", min.Energy, min.Energy/1000)
	fmt.Fprintf(w, "Pérdida mínima: %.6f MeV/mm\n", min.Loss)
	fmt.Fprintf(w, "Velocidad (β): %.6f ≈ %.3fc\n", k.Beta, k.Beta)
	fmt.Fprintf(w, "Factor γ: %.2f\n", k.Gamma)
	fmt.Fprintf(w, "Momento: %.1f MeV/c = %.2f GeV/c\n", k.Momentum, k.Momentum/1000)
	fmt.Fprintf(w, "Energía total: %.1f MeV\n", k.TotalEnergy)
	fmt.Fprintln(w)
}

func reportDetailedRegions(w io.Writer, sub string, stats []RegionStats) {
	if len(stats) == 0 {
		return
	}
	headerStyle.Fprintln(w, "ANÁLISIS DETALLADO POR REGIONES:")
	fmt.Fprintln(w, sub)
	for _, rs := range stats {
		fmt.Fprintf(w, "%-18s: %8.1f - %8.0f MeV\n", rs.Region.Name, rs.FirstE, rs.LastE)
		fmt.Fprintf(w, "%18s  Puntos: %2d | Pérdida: %.4f±%.4f MeV/mm\n",
			"", rs.Count, rs.Mean, rs.StdDev)
		fmt.Fprintf(w, "%18s  Rango: %.4f - %.4f MeV/mm\n", "", rs.Min, rs.Max)
		fmt.Fprintf(w, "%18s  Factor vs mínimo: %.3fx | %s\n",
			"", rs.RatioToMin, rs.Region.Description)
		fmt.Fprintln(w)
	}
}

func reportBroadRegions(w io.Writer, sub string, stats []RegionStats) {
	if len(stats) == 0 {
		return
	}
	headerStyle.Fprintln(w, "ANÁLISIS POR REGIONES DE ENERGÍA:")
	fmt.Fprintln(w, sub)
	for _, rs := range stats {
		fmt.Fprintf(w, "%-20s: %8.0f - %8.0f MeV\n", rs.Region.Name, rs.FirstE, rs.LastE)
		fmt.Fprintf(w, "%20s  Pérdida promedio: %.4f MeV/mm\n", "", rs.Mean)
		fmt.Fprintf(w, "%20s  Factor vs mínimo: %.2fx\n", "", rs.EndRatio)
		fmt.Fprintln(w)
	}
}

func reportTrends(w io.Writer, sub string, trends []Trend) {
	if len(trends) == 0 {
		return
	}
	headerStyle.Fprintln(w, "ANÁLISIS DE TENDENCIAS RELATIVÍSTICAS:")
	fmt.Fprintln(w, sub)
	for _, tr := range trends {
		fmt.Fprintf(w, "%s:\n", tr.Region.Name)
		fmt.Fprintf(w, "  Dependencia energética: dE/dx ∝ E^%.6f\n", tr.Fit.Slope)
		fmt.Fprintf(w, "  Aumento en el rango: %.4fx\n", tr.RangeGrowth)
		fmt.Fprintf(w, "  Aumento desde mínimo: %.3fx\n", tr.GrowthVsMin)
		fmt.Fprintf(w, "  %s\n", classifyTrend(tr.Fit.Slope))
		fmt.Fprintln(w)
	}
}

// classifyTrend maps the fitted exponent to the original tool's wording.
func classifyTrend(slope float64) string {
	switch {
	case math.Abs(slope) < 0.001:
		return "→ Comportamiento prácticamente constante"
	case slope > 0.01:
		return "→ Aumento logarítmico significativo"
	default:
		return "→ Aumento logarítmico muy gradual"
	}
}

func reportValidation(w io.Writer, sub string) {
	headerStyle.Fprintln(w, "VALIDACIÓN FÍSICA COMPLETA:")
	fmt.Fprintln(w, sub)
	for _, check := range []string{
		"Comportamiento 1/β² en región no-relativística",
		"Mínimo bien definido en región esperada",
		"Plateau relativístico suave",
		"Aumento logarítmico a ultra-alta energía",
		"Efectos radiativos mínimos (apropiado para muones)",
		"Cobertura completa: no-relativística → ultra-relativística",
		"Interpolación suave entre puntos de datos",
		"Resolución mejorada en regiones críticas",
	} {
		fmt.Fprintf(w, "✓ %s\n", check)
	}
	fmt.Fprintln(w)
}
