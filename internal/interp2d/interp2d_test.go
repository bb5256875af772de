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

package interp2d

import (
	"bytes"
	"encoding/gob"
	"math"
	"testing"
)

func testAxes() (xs, ys []float64) {
	return []float64{0, 1, 2.5, 4}, []float64{-1, 0, 2, 3, 5}
}

func evalGrid(xs, ys []float64, f func(x, y float64) float64) [][]float64 {
	z := make([][]float64, len(xs))
	for i, x := range xs {
		z[i] = make([]float64, len(ys))
		for j, y := range ys {
			z[i][j] = f(x, y)
		}
	}
	return z
}

// The interpolant must pass through the grid nodes.
func TestGridNodes(t *testing.T) {
	const testTolerance = 1e-12

	xs, ys := testAxes()
	f := func(x, y float64) float64 { return math.Sin(x) + y*y }
	g, err := New(xs, ys, evalGrid(xs, ys, f))
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range xs {
		for _, y := range ys {
			got, want := g.Eval(x, y), f(x, y)
			if math.Abs(got-want) > testTolerance {
				t.Errorf("node (%g,%g): got %g, want %g", x, y, got, want)
			}
		}
	}
}

// Cubic splines reproduce affine data exactly, everywhere in range.
func TestGridAffine(t *testing.T) {
	const testTolerance = 1e-12

	xs, ys := testAxes()
	f := func(x, y float64) float64 { return 2*x + 3*y - 1 }
	g, err := New(xs, ys, evalGrid(xs, ys, f))
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range [][2]float64{{0.5, 0.5}, {3.1, 4.2}, {1.7, -0.3}} {
		got, want := g.Eval(p[0], p[1]), f(p[0], p[1])
		if math.Abs(got-want) > testTolerance {
			t.Errorf("point (%g,%g): got %g, want %g", p[0], p[1], got, want)
		}
	}
}

// A constant field is reproduced exactly, including outside the
// sampled range.
func TestGridConstant(t *testing.T) {
	const testTolerance = 1e-12

	xs, ys := testAxes()
	g, err := New(xs, ys, evalGrid(xs, ys, func(x, y float64) float64 { return 7 }))
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range [][2]float64{{1, 1}, {-5, 1}, {10, 10}, {1, -8}} {
		if got := g.Eval(p[0], p[1]); math.Abs(got-7) > testTolerance {
			t.Errorf("point (%g,%g): got %g, want 7", p[0], p[1], got)
		}
	}
}

func TestGridValidation(t *testing.T) {
	xs, ys := testAxes()
	z := evalGrid(xs, ys, func(x, y float64) float64 { return x * y })
	cases := []struct {
		name   string
		xs, ys []float64
		z      [][]float64
	}{
		{"short x axis", []float64{1}, ys, z[:1]},
		{"non-ascending x", []float64{0, 1, 1, 4}, ys, z},
		{"descending y", xs, []float64{5, 3, 2, 0, -1}, z},
		{"row count mismatch", xs, ys, z[:2]},
		{"row length mismatch", xs, ys, [][]float64{z[0], z[1][:2], z[2], z[3]}},
	}
	for _, c := range cases {
		if _, err := New(c.xs, c.ys, c.z); err == nil {
			t.Errorf("%s: expected an error", c.name)
		}
	}
}

func TestGridClone(t *testing.T) {
	xs, ys := testAxes()
	g, err := New(xs, ys, evalGrid(xs, ys, func(x, y float64) float64 { return x - y }))
	if err != nil {
		t.Fatal(err)
	}
	c := g.Clone()
	if c == g {
		t.Fatal("clone returned the same grid")
	}
	c.z[0][0] = 99
	if g.z[0][0] == 99 {
		t.Error("clone shares value storage with the original")
	}
	if got, want := c.Eval(1.2, 0.4), g.Eval(1.2, 0.4); got != want {
		t.Errorf("clone evaluates to %g, original to %g", got, want)
	}
}

func TestGridGobRoundTrip(t *testing.T) {
	const testTolerance = 1e-12

	xs, ys := testAxes()
	g, err := New(xs, ys, evalGrid(xs, ys, func(x, y float64) float64 { return x*y + 1 }))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		t.Fatal(err)
	}
	var got Grid
	if err := gob.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(&got); err != nil {
		t.Fatal(err)
	}
	a, b := g.Eval(1.5, 2.5), got.Eval(1.5, 2.5)
	if math.Abs(a-b) > testTolerance {
		t.Errorf("after gob round trip: got %g, want %g", b, a)
	}
}
