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
	"fmt"
	"math"
	"strings"
	"testing"
)

// parRecord formats one fixed-width HITRAN-style record.
func parRecord(mol, iso int, nu, s, gAir, gSelf, elower, nAir, delta float64) string {
	return fmt.Sprintf("%2d%1d%12.6f%10.3E%10.3E%5.3f%5.3f%10.4f%4.2f%8.5f",
		mol, iso, nu, s, 1.0, gAir, gSelf, elower, nAir, delta)
}

func TestReadPar(t *testing.T) {
	const testTolerance = 1e-9

	// Two H2O records out of order, one CO2 record to be skipped, and
	// a blank line.
	input := strings.Join([]string{
		parRecord(1, 1, 1500.5, 2.5e-21, 0.06, 0.3, 50, 0.68, -0.005),
		"",
		parRecord(2, 1, 700.1, 1e-20, 0.07, 0.1, 0, 0.75, 0),
		parRecord(1, 2, 1000.25, 1.5e-20, 0.08, 0.4, 100, 0.5, 0.002),
	}, "\n")

	l, err := ReadPar(strings.NewReader(input), "H2O")
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != 2 {
		t.Fatalf("line count: got %d, want 2", l.Len())
	}
	lines := l.Lines()
	if lines[0].Nu > lines[1].Nu {
		t.Error("lines are not sorted by ascending center")
	}
	if math.Abs(lines[0].Nu-1000.25) > testTolerance {
		t.Errorf("first line center: got %g, want 1000.25", lines[0].Nu)
	}
	if math.Abs(lines[0].S-1.5e-20) > testTolerance*1.5e-20 {
		t.Errorf("intensity: got %g, want 1.5e-20", lines[0].S)
	}
	if lines[0].Iso != 2 {
		t.Errorf("isotopologue: got %d, want 2", lines[0].Iso)
	}
	if math.Abs(lines[1].GammaSelf-0.3) > testTolerance {
		t.Errorf("self halfwidth: got %g, want 0.3", lines[1].GammaSelf)
	}
}

func TestReadParErrors(t *testing.T) {
	if _, err := ReadPar(strings.NewReader(""), "XYZ"); err == nil {
		t.Error("expected an error for an unsupported molecule")
	}
	if _, err := ReadPar(strings.NewReader("too short"), "H2O"); err == nil {
		t.Error("expected an error for a truncated record")
	}
	if _, err := ReadPar(strings.NewReader(""), "H2O"); err == nil {
		t.Error("expected an error for an empty database")
	}
	// A record whose intensity field is not a number.
	bad := parRecord(1, 1, 1000, 1e-20, 0.07, 0.3, 0, 0.75, 0)
	bad = bad[:15] + "   oops   " + bad[25:]
	if _, err := ReadPar(strings.NewReader(bad), "H2O"); err == nil {
		t.Error("expected an error for a malformed intensity field")
	} else if !strings.Contains(err.Error(), "record 1") {
		t.Errorf("error should name the record number: %v", err)
	}
}

func TestMeanMolarMass(t *testing.T) {
	const testTolerance = 1e-12

	l, err := NewLineList("TEST", []Isotopologue{
		{Abundance: 0.75, MolarMass: 16},
		{Abundance: 0.25, MolarMass: 20},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := l.MeanMolarMass(), 17.0; math.Abs(got-want) > testTolerance {
		t.Errorf("mean molar mass: got %g, want %g", got, want)
	}
}

func TestIsotopologueFallback(t *testing.T) {
	l, err := NewLineList("TEST", []Isotopologue{
		{Abundance: 0.9, MolarMass: 16},
		{Abundance: 0.1, MolarMass: 20},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := l.Isotopologue(2).MolarMass; got != 20 {
		t.Errorf("isotopologue 2 molar mass: got %g, want 20", got)
	}
	// Out-of-table ordinals fall back to the most abundant entry.
	for _, i := range []int{0, 3, -1} {
		if got := l.Isotopologue(i).MolarMass; got != 16 {
			t.Errorf("isotopologue %d molar mass: got %g, want 16", i, got)
		}
	}
}

func TestNewLineListValidation(t *testing.T) {
	if _, err := NewLineList("TEST", nil, nil); err == nil {
		t.Error("expected an error for an empty isotopologue table")
	}
	if _, err := NewLineList("TEST", []Isotopologue{{Abundance: -1, MolarMass: 16}}, nil); err == nil {
		t.Error("expected an error for a negative abundance")
	}
}
