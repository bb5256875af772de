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

package spectra

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// molecules lists the HITRAN molecule numbers and isotopologue tables
// for the species this package can read. Abundances and masses are the
// HITRAN natural terrestrial values.
var molecules = map[string]struct {
	id   int
	isos []Isotopologue
}{
	"H2O": {1, []Isotopologue{
		{Abundance: 0.997317, MolarMass: 18.010565},
		{Abundance: 1.99983e-3, MolarMass: 20.014811},
		{Abundance: 3.71884e-4, MolarMass: 19.014780},
	}},
	"CO2": {2, []Isotopologue{
		{Abundance: 0.984204, MolarMass: 43.989830},
		{Abundance: 1.10574e-2, MolarMass: 44.993185},
		{Abundance: 3.94707e-3, MolarMass: 45.994076},
	}},
	"O3": {3, []Isotopologue{
		{Abundance: 0.992901, MolarMass: 47.984745},
		{Abundance: 3.98194e-3, MolarMass: 49.988991},
		{Abundance: 1.99097e-3, MolarMass: 49.988991},
	}},
	"CO": {5, []Isotopologue{
		{Abundance: 0.986544, MolarMass: 27.994915},
		{Abundance: 1.10836e-2, MolarMass: 28.998270},
		{Abundance: 1.97822e-3, MolarMass: 29.999161},
	}},
	"CH4": {6, []Isotopologue{
		{Abundance: 0.988274, MolarMass: 16.031300},
		{Abundance: 1.10276e-2, MolarMass: 17.034655},
		{Abundance: 6.15751e-4, MolarMass: 17.037475},
	}},
}

// parRecordLen is the minimum record length holding the fields this
// package needs; full HITRAN 2004-format records are 160 characters.
const parRecordLen = 67

// ReadPar reads HITRAN .par fixed-width line records for the named
// molecule. Records belonging to other molecules (as happens when
// reading an extract of the full HITRAN database) are skipped.
// Supported molecules are H2O, CO2, O3, CO and CH4.
func ReadPar(r io.Reader, molecule string) (*LineList, error) {
	mol, ok := molecules[molecule]
	if !ok {
		valid := make([]string, 0, len(molecules))
		for name := range molecules {
			valid = append(valid, name)
		}
		return nil, fmt.Errorf("spectra: '%s' is not a supported molecule; valid options are %s",
			molecule, strings.Join(valid, ", "))
	}

	var lines []Line
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		rec := scanner.Text()
		if strings.TrimSpace(rec) == "" {
			continue
		}
		if len(rec) < parRecordLen {
			return nil, fmt.Errorf("spectra: record %d is %d characters; at least %d are required", n, len(rec), parRecordLen)
		}
		id, err := strconv.Atoi(strings.TrimSpace(rec[0:2]))
		if err != nil {
			return nil, fmt.Errorf("spectra: record %d: parsing molecule number: %v", n, err)
		}
		if id != mol.id {
			continue
		}
		l, err := parseParRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("spectra: record %d: %v", n, err)
		}
		lines = append(lines, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("spectra: reading line data: %v", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("spectra: no %s lines found", molecule)
	}
	return NewLineList(molecule, mol.isos, lines)
}

// parseParRecord extracts the fields used by the line-shape kernels
// from one fixed-width record. Column layout follows the HITRAN
// 2004 format specification.
func parseParRecord(rec string) (Line, error) {
	var l Line
	fields := []struct {
		name   string
		lo, hi int
		dst    *float64
	}{
		{"line center", 3, 15, &l.Nu},
		{"intensity", 15, 25, &l.S},
		{"air halfwidth", 35, 40, &l.GammaAir},
		{"self halfwidth", 40, 45, &l.GammaSelf},
		{"lower-state energy", 45, 55, &l.Elower},
		{"temperature exponent", 55, 59, &l.NAir},
		{"pressure shift", 59, 67, &l.Delta},
	}
	iso, err := strconv.Atoi(strings.TrimSpace(rec[2:3]))
	if err != nil {
		return l, fmt.Errorf("parsing isotopologue number: %v", err)
	}
	l.Iso = iso
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[f.lo:f.hi]), 64)
		if err != nil {
			return l, fmt.Errorf("parsing %s: %v", f.name, err)
		}
		*f.dst = v
	}
	if l.Nu < 0 {
		return l, fmt.Errorf("negative line center %g cm⁻¹", l.Nu)
	}
	return l, nil
}
