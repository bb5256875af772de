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

// Package spectra holds line-by-line spectroscopic data for molecular
// absorbers, including a reader for HITRAN-format line databases.
package spectra

import (
	"fmt"
	"sort"
)

// Line is a single spectral line record. Units follow the HITRAN
// conventions.
type Line struct {
	Nu        float64 // line center [cm⁻¹]
	S         float64 // intensity at the 296 K reference temperature [cm⁻¹/(molecule·cm⁻²)]
	GammaAir  float64 // air-broadened halfwidth at 296 K and 1 atm [cm⁻¹/atm]
	GammaSelf float64 // self-broadened halfwidth at 296 K and 1 atm [cm⁻¹/atm]
	Elower    float64 // lower-state energy [cm⁻¹]
	NAir      float64 // temperature-dependence exponent of GammaAir
	Delta     float64 // air pressure-induced line shift [cm⁻¹/atm]
	Iso       int     // isotopologue ordinal, 1-based, 1 = most abundant
}

// Isotopologue describes one isotopologue of a molecule.
type Isotopologue struct {
	Abundance float64 // relative natural abundance, fraction
	MolarMass float64 // [g/mol]
}

// LineList is the line data for one molecule. It is immutable after
// construction; the stored lines are sorted by ascending line center.
type LineList struct {
	molecule string
	isos     []Isotopologue
	lines    []Line
}

// NewLineList creates a LineList for the named molecule. The
// isotopologue table maps the 1-based Iso ordinal in each line to its
// abundance and molar mass; at least one isotopologue is required.
func NewLineList(molecule string, isos []Isotopologue, lines []Line) (*LineList, error) {
	if len(isos) == 0 {
		return nil, fmt.Errorf("spectra: line list for %s has no isotopologues", molecule)
	}
	for i, iso := range isos {
		if iso.Abundance <= 0 || iso.MolarMass <= 0 {
			return nil, fmt.Errorf("spectra: %s isotopologue %d has non-positive abundance (%g) or molar mass (%g g/mol)",
				molecule, i+1, iso.Abundance, iso.MolarMass)
		}
	}
	l := &LineList{
		molecule: molecule,
		isos:     append([]Isotopologue(nil), isos...),
		lines:    append([]Line(nil), lines...),
	}
	sort.Slice(l.lines, func(i, j int) bool { return l.lines[i].Nu < l.lines[j].Nu })
	return l, nil
}

// Molecule returns the molecule name, e.g. "H2O".
func (l *LineList) Molecule() string { return l.molecule }

// Len returns the number of lines.
func (l *LineList) Len() int { return len(l.lines) }

// Lines returns the line records sorted by ascending line center.
// Callers must not modify the returned slice.
func (l *LineList) Lines() []Line { return l.lines }

// Isotopologue returns the isotopologue for the given 1-based ordinal.
// Ordinals outside the table fall back to the most abundant
// isotopologue.
func (l *LineList) Isotopologue(i int) Isotopologue {
	if i < 1 || i > len(l.isos) {
		return l.isos[0]
	}
	return l.isos[i-1]
}

// MeanMolarMass returns the abundance-weighted mean molar mass of the
// molecule [g/mol].
func (l *LineList) MeanMolarMass() float64 {
	var m, a float64
	for _, iso := range l.isos {
		m += iso.Abundance * iso.MolarMass
		a += iso.Abundance
	}
	return m / a
}
