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

package opacity

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spectralmodel/opacity/spectra"
	"github.com/spectralmodel/opacity/spectra/lineshape"
)

// Gas is an atmospheric absorber with baked cross-section tables.
// Cross-section queries are weighted by the gas's molar concentration;
// callers needing the molecule-only cross-section divide the
// concentration back out or query the Tables directly.
type Gas interface {
	// Name returns the gas name, e.g. "water vapor".
	Name() string
	// Formula returns the chemical formula, e.g. "H2O".
	Formula() string
	// MolarMass returns the abundance-weighted mean molar mass [g/mol].
	MolarMass() float64
	// Wavenumbers returns the wavenumber sample array [cm⁻¹], one
	// entry per baked Table. Callers must not modify it.
	Wavenumbers() []float64
	// Concentration returns the molar concentration at T [K], P [Pa].
	Concentration(T, P float64) float64
	// CrossSection returns the concentration-weighted cross-section
	// [cm²/molecule] at wavenumber index k.
	CrossSection(k int, T, P float64) float64
	// CrossSections computes the concentration-weighted cross-section
	// at every wavenumber, in array order, accumulating nothing: dst
	// is overwritten when non-nil and allocated when nil.
	CrossSections(dst []float64, T, P float64) []float64
}

var (
	_ Gas = &FixedGas{}
	_ Gas = &VariableGas{}
)

// gasData holds the state shared by the fixed- and
// variable-concentration gas variants.
type gasData struct {
	name      string
	formula   string
	molarMass float64 // [g/mol]
	nu        []float64
	domain    *TPDomain
	tables    []*Table
}

func (g *gasData) Name() string           { return g.name }
func (g *gasData) Formula() string        { return g.formula }
func (g *gasData) MolarMass() float64     { return g.molarMass }
func (g *gasData) Wavenumbers() []float64 { return g.nu }

// Domain returns the sampling domain the gas's tables were baked over.
func (g *gasData) Domain() *TPDomain { return g.domain }

// Table returns the baked table for wavenumber index k. The returned
// table answers molecule-only (concentration-unweighted) queries.
func (g *gasData) Table(k int) *Table { return g.tables[k] }

func (g *gasData) clone() gasData {
	c := gasData{
		name:      g.name,
		formula:   g.formula,
		molarMass: g.molarMass,
		nu:        append([]float64(nil), g.nu...),
		domain:    g.domain.Clone(),
		tables:    make([]*Table, len(g.tables)),
	}
	for k, t := range g.tables {
		c.tables[k] = t.Clone()
	}
	return c
}

// FixedGas is a gas whose molar concentration is constant over
// temperature and pressure.
type FixedGas struct {
	gasData
	conc float64
}

// NewFixedGas bakes cross-section tables for a gas with the constant
// molar concentration conc. shape is the line-shape kernel (nil
// selects lineshape.Voigt) and cutoff is the line-center truncation
// distance [cm⁻¹] passed to it. The wavenumber array nu must be
// strictly ascending and non-negative. Validation and baking errors
// propagate unchanged; no partial gas is returned.
func NewFixedGas(name, formula string, lines *spectra.LineList, conc float64, nu []float64, d *TPDomain, shape ShapeFunc, cutoff float64) (*FixedGas, error) {
	if conc < 0 || conc > 1 {
		return nil, fmt.Errorf("opacity: concentration %g for gas %s is outside [0,1]", conc, name)
	}
	data, err := bakeGasData(name, formula, lines, func(T, P float64) float64 { return conc }, nu, d, shape, cutoff)
	if err != nil {
		return nil, err
	}
	return &FixedGas{gasData: data, conc: conc}, nil
}

// Concentration returns the stored constant concentration; T and P are
// ignored.
func (g *FixedGas) Concentration(T, P float64) float64 { return g.conc }

// CrossSection returns the concentration-weighted cross-section
// [cm²/molecule] at wavenumber index k, temperature T [K] and pressure
// P [Pa].
func (g *FixedGas) CrossSection(k int, T, P float64) float64 {
	return g.conc * g.tables[k].Value(T, P)
}

// CrossSections fills dst (allocated when nil) with the
// concentration-weighted cross-section at every wavenumber.
func (g *FixedGas) CrossSections(dst []float64, T, P float64) []float64 {
	return crossSections(dst, &g.gasData, g.conc, T, P)
}

// Reconcentrate returns a new gas identical to g but with the constant
// concentration conc, reusing deep copies of the already-baked tables
// instead of re-baking. This is cheap because self-broadening is a
// second-order effect at low partial pressure, and for the same reason
// it is unsafe for bulk constituents: do not use it to jump between
// large concentration values.
func (g *FixedGas) Reconcentrate(conc float64) (*FixedGas, error) {
	if conc < 0 || conc > 1 {
		return nil, fmt.Errorf("opacity: concentration %g for gas %s is outside [0,1]", conc, g.name)
	}
	return &FixedGas{gasData: g.gasData.clone(), conc: conc}, nil
}

// VariableGas is a gas whose molar concentration varies with
// temperature and pressure.
type VariableGas struct {
	gasData
	conc ConcFunc
}

// NewVariableGas bakes cross-section tables for a gas whose molar
// concentration is given by conc, which must return values in [0,1]
// at every domain sample point; a value outside that range aborts the
// bake. Other arguments are as for NewFixedGas.
func NewVariableGas(name, formula string, lines *spectra.LineList, conc ConcFunc, nu []float64, d *TPDomain, shape ShapeFunc, cutoff float64) (*VariableGas, error) {
	if conc == nil {
		return nil, fmt.Errorf("opacity: nil concentration function for gas %s", name)
	}
	data, err := bakeGasData(name, formula, lines, conc, nu, d, shape, cutoff)
	if err != nil {
		return nil, err
	}
	return &VariableGas{gasData: data, conc: conc}, nil
}

// Concentration evaluates the stored concentration function at T [K]
// and P [Pa]. The result is not re-validated against [0,1]; the
// originating validation happened over the domain samples at bake
// time.
func (g *VariableGas) Concentration(T, P float64) float64 { return g.conc(T, P) }

// CrossSection returns the concentration-weighted cross-section
// [cm²/molecule] at wavenumber index k, temperature T [K] and pressure
// P [Pa].
func (g *VariableGas) CrossSection(k int, T, P float64) float64 {
	return g.conc(T, P) * g.tables[k].Value(T, P)
}

// CrossSections fills dst (allocated when nil) with the
// concentration-weighted cross-section at every wavenumber.
func (g *VariableGas) CrossSections(dst []float64, T, P float64) []float64 {
	return crossSections(dst, &g.gasData, g.conc(T, P), T, P)
}

func crossSections(dst []float64, g *gasData, conc, T, P float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(g.nu))
	}
	for k, t := range g.tables {
		dst[k] = conc * t.Value(T, P)
	}
	return dst
}

func bakeGasData(name, formula string, lines *spectra.LineList, conc ConcFunc, nu []float64, d *TPDomain, shape ShapeFunc, cutoff float64) (gasData, error) {
	if shape == nil {
		shape = lineshape.Voigt
	}
	tables, err := BakeTables(lines, conc, shape, cutoff, nu, d, logrus.StandardLogger())
	if err != nil {
		return gasData{}, err
	}
	return gasData{
		name:      name,
		formula:   formula,
		molarMass: lines.MeanMolarMass(),
		nu:        append([]float64(nil), nu...),
		domain:    d.Clone(),
		tables:    tables,
	}, nil
}
