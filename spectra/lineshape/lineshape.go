/*
Copyright © 2026 the Opacity authors.
This file is part of Opacity.

Opacity is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Opacity is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Opacity.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package lineshape synthesizes absorption cross-section spectra from
// line-by-line data. The functions here implement the line-shape
// kernel contract of package opacity: they accumulate cross-sections
// [cm²/molecule] into a caller-supplied buffer aligned with the
// wavenumber array, allocating one when the buffer is nil, and are
// deterministic for fixed inputs.
package lineshape

import (
	"math"
	"sort"

	"github.com/spectralmodel/opacity/spectra"
)

// physical constants
const (
	c2        = 1.4387769      // second radiation constant [cm K]
	Tref      = 296.0          // HITRAN reference temperature [K]
	pRef      = 101325.0       // reference pressure, 1 atm [Pa]
	kB        = 1.380649e-23   // Boltzmann constant [J/K]
	cLight    = 2.99792458e8   // speed of light [m/s]
	nAvogadro = 6.02214076e23  // Avogadro constant [1/mol]
	ln2       = math.Ln2
)

// partitionExp gives the exponent q of the power-law partition-sum
// approximation Q(T) ∝ T^q for linear molecules; nonlinear molecules
// use 1.5. The approximation bounds the temperature validity interval
// exposed by package opacity.
var partitionExp = map[string]float64{"CO2": 1, "CO": 1}

// profileFunc is a normalized line profile evaluated at distance dnu
// [cm⁻¹] from the line center, with Lorentz and Doppler halfwidths
// gammaL and gammaD [cm⁻¹].
type profileFunc func(dnu, gammaL, gammaD float64) float64

// Lorentz accumulates pressure-broadened cross-sections for every
// wavenumber in nu [cm⁻¹] at temperature T [K], total pressure P [Pa]
// and partial pressure pPartial [Pa] of the absorber. Line
// contributions are truncated beyond cutoff [cm⁻¹] of the line center.
func Lorentz(dst, nu []float64, l *spectra.LineList, T, P, pPartial, cutoff float64) []float64 {
	return synth(dst, nu, l, T, P, pPartial, cutoff, lorentz)
}

// Doppler accumulates thermally broadened cross-sections; arguments
// are as for Lorentz.
func Doppler(dst, nu []float64, l *spectra.LineList, T, P, pPartial, cutoff float64) []float64 {
	return synth(dst, nu, l, T, P, pPartial, cutoff, doppler)
}

// Voigt accumulates cross-sections using a pseudo-Voigt profile, the
// weighted Lorentz–Doppler combination of Thompson, Cox and Hastings
// (1987). Arguments are as for Lorentz. This is the default kernel
// used by the gas constructors in package opacity.
func Voigt(dst, nu []float64, l *spectra.LineList, T, P, pPartial, cutoff float64) []float64 {
	return synth(dst, nu, l, T, P, pPartial, cutoff, pseudoVoigt)
}

func synth(dst, nu []float64, l *spectra.LineList, T, P, pPartial, cutoff float64, profile profileFunc) []float64 {
	if dst == nil {
		dst = make([]float64, len(nu))
	}
	q := 1.5
	if e, ok := partitionExp[l.Molecule()]; ok {
		q = e
	}
	pAtm := P / pRef
	ppAtm := pPartial / pRef
	for _, line := range l.Lines() {
		s := strength(line, T, q)
		if s == 0 {
			continue
		}
		nuc := line.Nu + line.Delta*pAtm
		gammaL := (line.GammaAir*(pAtm-ppAtm) + line.GammaSelf*ppAtm) *
			math.Pow(Tref/T, line.NAir)
		m := l.Isotopologue(line.Iso).MolarMass * 1e-3 / nAvogadro // molecule mass [kg]
		gammaD := nuc / cLight * math.Sqrt(2*ln2*kB*T/m)
		for k := sort.SearchFloat64s(nu, nuc-cutoff); k < len(nu) && nu[k] <= nuc+cutoff; k++ {
			dst[k] += s * profile(nu[k]-nuc, gammaL, gammaD)
		}
	}
	return dst
}

// strength returns the line intensity at temperature T
// [cm⁻¹/(molecule·cm⁻²)], scaling the reference intensity by the
// Boltzmann population of the lower state, the stimulated-emission
// factor, and the power-law partition-sum ratio (Tref/T)^q.
func strength(line spectra.Line, T, q float64) float64 {
	s := line.S * math.Pow(Tref/T, q) *
		math.Exp(-c2*line.Elower*(1/T-1/Tref))
	if line.Nu > 0 {
		s *= (1 - math.Exp(-c2*line.Nu/T)) / (1 - math.Exp(-c2*line.Nu/Tref))
	}
	return s
}

// lorentz is the area-normalized Lorentz profile [1/cm⁻¹].
func lorentz(dnu, gammaL, _ float64) float64 {
	return gammaL / math.Pi / (dnu*dnu + gammaL*gammaL)
}

// doppler is the area-normalized Gaussian profile [1/cm⁻¹].
func doppler(dnu, _, gammaD float64) float64 {
	return math.Sqrt(ln2/math.Pi) / gammaD * math.Exp(-ln2*dnu*dnu/(gammaD*gammaD))
}

// pseudoVoigt approximates the Voigt profile as an η-weighted sum of a
// Lorentz and a Gaussian of common effective width, accurate to about
// 1% of peak height.
func pseudoVoigt(dnu, gammaL, gammaD float64) float64 {
	gL, gD := gammaL, gammaD
	gV := math.Pow(
		gD*gD*gD*gD*gD+
			2.69269*gD*gD*gD*gD*gL+
			2.42843*gD*gD*gD*gL*gL+
			4.47163*gD*gD*gL*gL*gL+
			0.07842*gD*gL*gL*gL*gL+
			gL*gL*gL*gL*gL, 0.2)
	r := gL / gV
	eta := r * (1.36603 - r*(0.47719-r*0.11116))
	return eta*lorentz(dnu, gV, 0) + (1-eta)*doppler(dnu, 0, gV)
}
