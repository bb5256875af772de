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

// Package interp2d provides interpolation on a rectilinear 2-D grid,
// built as a tensor product of the 1-D natural cubic splines in
// gonum.org/v1/gonum/interp.
package interp2d

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Grid is an interpolant over a rectilinear grid of values z[i][j]
// sampled at (xs[i], ys[j]). It is immutable after construction and
// safe for concurrent use by multiple goroutines.
type Grid struct {
	xs, ys []float64
	z      [][]float64

	// rows[i] interpolates z[i][:] along the y axis.
	rows []interp.NaturalCubic
}

// New creates a Grid from the axis sample locations xs and ys and the
// value grid z, where z[i][j] is the value at (xs[i], ys[j]). Both axes
// must be strictly ascending and contain at least two points.
func New(xs, ys []float64, z [][]float64) (*Grid, error) {
	if err := checkAxis("x", xs); err != nil {
		return nil, err
	}
	if err := checkAxis("y", ys); err != nil {
		return nil, err
	}
	if len(z) != len(xs) {
		return nil, fmt.Errorf("interp2d: grid has %d rows but x axis has %d points", len(z), len(xs))
	}
	g := &Grid{
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
		z:  make([][]float64, len(z)),
	}
	for i, row := range z {
		if len(row) != len(ys) {
			return nil, fmt.Errorf("interp2d: grid row %d has %d values but y axis has %d points", i, len(row), len(ys))
		}
		g.z[i] = append([]float64(nil), row...)
	}
	if err := g.fit(); err != nil {
		return nil, err
	}
	return g, nil
}

func checkAxis(name string, xs []float64) error {
	if len(xs) < 2 {
		return fmt.Errorf("interp2d: %s axis has %d points; at least 2 are required", name, len(xs))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return fmt.Errorf("interp2d: %s axis is not strictly ascending at index %d (%g followed by %g)",
				name, i, xs[i-1], xs[i])
		}
	}
	return nil
}

func (g *Grid) fit() error {
	g.rows = make([]interp.NaturalCubic, len(g.xs))
	for i := range g.rows {
		if err := g.rows[i].Fit(g.ys, g.z[i]); err != nil {
			return fmt.Errorf("interp2d: fitting row %d: %v", i, err)
		}
	}
	return nil
}

// Eval returns the interpolated value at (x, y). Points outside the
// sampled axis ranges are extrapolated by the underlying splines.
func (g *Grid) Eval(x, y float64) float64 {
	col := make([]float64, len(g.xs))
	for i := range g.rows {
		col[i] = g.rows[i].Predict(y)
	}
	var nc interp.NaturalCubic
	if err := nc.Fit(g.xs, col); err != nil {
		// The axes were validated at construction, so a fit over
		// them cannot fail.
		panic(err)
	}
	return nc.Predict(x)
}

// Clone returns a deep copy of the Grid that shares no state with the
// original.
func (g *Grid) Clone() *Grid {
	c, err := New(g.xs, g.ys, g.z)
	if err != nil {
		panic(err) // g was already validated.
	}
	return c
}

// gridFile is the gob wire form of a Grid.
type gridFile struct {
	Xs, Ys []float64
	Z      [][]float64
}

// GobEncode implements the gob.GobEncoder interface.
func (g *Grid) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(gridFile{Xs: g.xs, Ys: g.ys, Z: g.z}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface, refitting the
// splines from the stored samples.
func (g *Grid) GobDecode(b []byte) error {
	var f gridFile
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&f); err != nil {
		return err
	}
	c, err := New(f.Xs, f.Ys, f.Z)
	if err != nil {
		return err
	}
	*g = *c
	return nil
}
