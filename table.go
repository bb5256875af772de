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
	"fmt"
	"math"

	"github.com/spectralmodel/opacity/internal/interp2d"
)

// Table interpolates the absorption cross-section at a single
// wavenumber over a sampling domain. Values are stored as
// log(cross-section) against axes (T, log P), which preserves accuracy
// over the many orders of magnitude a cross-section spans across a
// domain. Tables are created by BakeTables and are immutable.
type Table struct {
	itp   *interp2d.Grid
	empty bool
}

// newTable builds a Table from the domain's temperature and pressure
// samples and the grid of raw cross-section values xsec, where
// xsec[i][j] is the cross-section at (T[i], P[j]). If every value is
// exactly zero the table is flagged empty and the interpolant is built
// over a zero-valued grid instead of log(0). Grids that mix zero and
// nonzero values are rejected; BakeTables sanitizes such grids before
// construction.
func newTable(T, P []float64, xsec [][]float64) (*Table, error) {
	var zero, nonzero bool
	for i, row := range xsec {
		for j, x := range row {
			switch {
			case x < 0:
				return nil, fmt.Errorf("opacity: negative cross-section %g at T=%g K, P=%g Pa", x, T[i], P[j])
			case x == 0:
				zero = true
			default:
				nonzero = true
			}
		}
	}
	if zero && nonzero {
		return nil, fmt.Errorf("opacity: cross-section grid mixes zero and nonzero values")
	}

	logP := make([]float64, len(P))
	for j, p := range P {
		logP[j] = math.Log(p)
	}
	z := make([][]float64, len(T))
	for i := range z {
		z[i] = make([]float64, len(P))
		if nonzero {
			for j, x := range xsec[i] {
				z[i][j] = math.Log(x)
			}
		}
	}
	itp, err := interp2d.New(T, logP, z)
	if err != nil {
		return nil, fmt.Errorf("opacity: building cross-section table: %v", err)
	}
	return &Table{itp: itp, empty: !nonzero}, nil
}

// Value returns the interpolated cross-section at temperature T [K]
// and pressure P [Pa]. An empty table returns 0 without touching the
// interpolant. This is the hot path that replaces line-shape
// evaluation at runtime; queries outside the baked domain extrapolate
// the underlying interpolant rather than clamping, so callers wanting
// bounded error must stay within the domain.
func (t *Table) Value(T, P float64) float64 {
	if t.empty {
		return 0
	}
	return math.Exp(t.itp.Eval(T, math.Log(P)))
}

// Empty reports whether every cross-section sampled for this table's
// wavenumber was zero.
func (t *Table) Empty() bool { return t.empty }

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	return &Table{itp: t.itp.Clone(), empty: t.empty}
}

// GobEncode implements the gob.GobEncoder interface.
func (t *Table) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(t.empty); err != nil {
		return nil, err
	}
	if err := enc.Encode(t.itp); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface.
func (t *Table) GobDecode(b []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&t.empty); err != nil {
		return err
	}
	t.itp = new(interp2d.Grid)
	return dec.Decode(t.itp)
}
