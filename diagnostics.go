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
	"math"
	"runtime"
	"sync"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/spectralmodel/opacity/spectra"
	"github.com/spectralmodel/opacity/spectra/lineshape"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// TableErrorGrid quantifies the approximation error of a baked Table
// against exact line-shape evaluation over a validation grid. Offline
// diagnostic tooling; not part of the query hot path.
type TableErrorGrid struct {
	T []float64 // validation temperatures [K], linear in T
	P []float64 // validation pressures [Pa], log-uniform in P

	// Abs[i][j] = table − exact and Rel[i][j] = (table − exact)/exact
	// at (T[i], P[j]). Rel is 0 where both values are exactly zero
	// and +Inf where only the exact value is.
	Abs *mat.Dense
	Rel *mat.Dense
}

// TableError evaluates both tbl and the line-shape kernel shape (nil
// selects lineshape.Voigt) on an n×n validation grid spanning the
// bounds of the domain tbl was baked over, and returns the sampled
// axes with the absolute- and relative-error grids. conc supplies the
// molar concentration used to form the kernel's partial pressure; nu
// is the single wavenumber tbl was baked for; cutoff is the
// line-center truncation distance [cm⁻¹].
func TableError(tbl *Table, d *TPDomain, lines *spectra.LineList, nu float64, conc ConcFunc, shape ShapeFunc, cutoff float64, n int) (*TableErrorGrid, error) {
	if n < 2 {
		return nil, fmt.Errorf("opacity: validation grid resolution %d; at least 2 is required", n)
	}
	if conc == nil {
		return nil, fmt.Errorf("opacity: nil concentration function")
	}
	if shape == nil {
		shape = lineshape.Voigt
	}

	g := &TableErrorGrid{
		T:   make([]float64, n),
		P:   make([]float64, n),
		Abs: mat.NewDense(n, n, nil),
		Rel: mat.NewDense(n, n, nil),
	}
	floats.Span(g.T, d.Tmin, d.Tmax)
	floats.Span(g.P, math.Log(d.Pmin), math.Log(d.Pmax))
	for j := range g.P {
		g.P[j] = math.Exp(g.P[j])
	}

	nuArr := []float64{nu}
	nprocs := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for ij := pp; ij < n*n; ij += nprocs {
				i, j := ij/n, ij%n
				T, P := g.T[i], g.P[j]
				exact := shape(nil, nuArr, lines, T, P, conc(T, P)*P, cutoff)[0]
				approx := tbl.Value(T, P)
				g.Abs.Set(i, j, approx-exact)
				switch {
				case exact != 0:
					g.Rel.Set(i, j, (approx-exact)/exact)
				case approx != 0:
					g.Rel.Set(i, j, math.Inf(1))
				}
			}
		}(pp)
	}
	wg.Wait()
	return g, nil
}

// ErrorStats summarizes a TableErrorGrid for reporting.
type ErrorStats struct {
	N       int     // finite relative-error samples
	MaxAbs  float64 // max |table − exact|
	MaxRel  float64 // max finite |relative error|
	MeanRel float64 // mean finite |relative error|
	StdRel  float64 // sample standard deviation of finite |relative error|
}

// Summary computes summary statistics over the error grids,
// ignoring non-finite relative errors.
func (g *TableErrorGrid) Summary() ErrorStats {
	var rel stats.Stats
	var maxAbs float64
	r, c := g.Rel.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if a := math.Abs(g.Abs.At(i, j)); a > maxAbs {
				maxAbs = a
			}
			if v := math.Abs(g.Rel.At(i, j)); !math.IsInf(v, 0) && !math.IsNaN(v) {
				rel.Update(v)
			}
		}
	}
	s := ErrorStats{N: rel.Count(), MaxAbs: maxAbs}
	if s.N > 0 {
		s.MaxRel = rel.Max()
		s.MeanRel = rel.Mean()
	}
	if s.N > 1 {
		s.StdRel = rel.SampleStandardDeviation()
	}
	return s
}
