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
	"bytes"
	"encoding/gob"
	"math"
	"testing"
)

// testGrid evaluates f over the domain samples.
func testGrid(d *TPDomain, f func(T, P float64) float64) [][]float64 {
	xsec := make([][]float64, d.NT())
	for i, T := range d.T {
		xsec[i] = make([]float64, d.NP())
		for j, P := range d.P {
			xsec[i][j] = f(T, P)
		}
	}
	return xsec
}

func TestEmptyTable(t *testing.T) {
	d, err := NewTPDomain(200, 300, 4, 1e3, 1e5, 4)
	if err != nil {
		t.Fatal(err)
	}
	tbl, err := newTable(d.T, d.P, testGrid(d, func(T, P float64) float64 { return 0 }))
	if err != nil {
		t.Fatal(err)
	}
	if !tbl.Empty() {
		t.Error("table built from an all-zero grid should be empty")
	}
	// Includes points outside the sampled range.
	for _, tp := range [][2]float64{{250, 1e4}, {200, 1e3}, {50, 1e4}, {250, 1e8}} {
		if v := tbl.Value(tp[0], tp[1]); v != 0 {
			t.Errorf("empty table at T=%g, P=%g: got %g, want exactly 0", tp[0], tp[1], v)
		}
	}
}

// Baking a smooth positive field and querying at the training nodes
// must reproduce the inputs to within interpolation rounding.
func TestTableRoundTrip(t *testing.T) {
	const testTolerance = 1e-10

	d, err := NewTPDomain(200, 300, 6, 1e3, 1e5, 6)
	if err != nil {
		t.Fatal(err)
	}
	f := func(T, P float64) float64 {
		return 1e-22 * math.Exp(-T/150) * math.Pow(P/1e3, 0.3)
	}
	tbl, err := newTable(d.T, d.P, testGrid(d, f))
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Empty() {
		t.Fatal("nonzero grid produced an empty table")
	}
	for i, T := range d.T {
		for j, P := range d.P {
			want := f(T, P)
			got := tbl.Value(T, P)
			if math.Abs(got-want)/want > testTolerance {
				t.Errorf("node (%d,%d) T=%g P=%g: got %g, want %g", i, j, T, P, got, want)
			}
		}
	}
}

func TestTableRejectsMixedGrid(t *testing.T) {
	d, err := NewTPDomain(200, 300, 3, 1e3, 1e5, 3)
	if err != nil {
		t.Fatal(err)
	}
	xsec := testGrid(d, func(T, P float64) float64 { return 1e-20 })
	xsec[1][1] = 0
	if _, err := newTable(d.T, d.P, xsec); err == nil {
		t.Error("expected an error for a grid mixing zero and nonzero values")
	}
}

func TestTableRejectsNegative(t *testing.T) {
	d, err := NewTPDomain(200, 300, 3, 1e3, 1e5, 3)
	if err != nil {
		t.Fatal(err)
	}
	xsec := testGrid(d, func(T, P float64) float64 { return 1e-20 })
	xsec[0][2] = -1e-20
	if _, err := newTable(d.T, d.P, xsec); err == nil {
		t.Error("expected an error for a negative cross-section")
	}
}

func TestTableClone(t *testing.T) {
	d, err := NewTPDomain(200, 300, 4, 1e3, 1e5, 4)
	if err != nil {
		t.Fatal(err)
	}
	tbl, err := newTable(d.T, d.P, testGrid(d, func(T, P float64) float64 { return 1e-20 * T / P }))
	if err != nil {
		t.Fatal(err)
	}
	c := tbl.Clone()
	if c == tbl || c.itp == tbl.itp {
		t.Error("clone shares state with the original")
	}
	if got, want := c.Value(250, 1e4), tbl.Value(250, 1e4); got != want {
		t.Errorf("clone value %g differs from original %g", got, want)
	}
}

func TestTableGobRoundTrip(t *testing.T) {
	const testTolerance = 1e-12

	d, err := NewTPDomain(200, 300, 4, 1e3, 1e5, 4)
	if err != nil {
		t.Fatal(err)
	}
	tbl, err := newTable(d.T, d.P, testGrid(d, func(T, P float64) float64 { return 1e-20 * T / P }))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(tbl); err != nil {
		t.Fatal(err)
	}
	var got Table
	if err := gob.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(&got); err != nil {
		t.Fatal(err)
	}
	want := tbl.Value(251, 2.3e4)
	if v := got.Value(251, 2.3e4); math.Abs(v-want)/want > testTolerance {
		t.Errorf("after gob round trip: got %g, want %g", v, want)
	}
}
