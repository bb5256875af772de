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
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spectralmodel/opacity/spectra"
)

// ShapeFunc is the line-shape kernel contract. A kernel synthesizes
// absorption cross-sections [cm²/molecule] for every wavenumber in nu
// [cm⁻¹] at temperature T [K], total pressure P [Pa] and absorber
// partial pressure pPartial [Pa], truncating line contributions beyond
// cutoff [cm⁻¹] of each line center. When dst is non-nil the kernel
// accumulates into it (the caller owns and pre-sizes the buffer);
// otherwise it allocates. The kernel returns the slice it wrote and
// must be deterministic for fixed inputs.
type ShapeFunc func(dst, nu []float64, lines *spectra.LineList, T, P, pPartial, cutoff float64) []float64

// ConcFunc returns the molar concentration (mole fraction, in [0,1])
// of an absorber at temperature T [K] and pressure P [Pa].
type ConcFunc func(T, P float64) float64

// BakeTables evaluates the line-shape kernel shape at every (T, P)
// sample point of domain d and returns one interpolation Table per
// wavenumber in nu, in input order. conc supplies the molar
// concentration used to form the partial pressure passed to the
// kernel. Kernel evaluations across grid points run in parallel.
//
// Wavenumbers sampled as exactly zero at some grid points but nonzero
// at others — numerical underflow in weak-absorption regions, which
// would corrupt the log-space interpolation — have their whole grid
// forced to zero, and a notice naming the affected wavenumbers is
// logged to log (the standard logrus logger when log is nil). This is
// best-effort smoothing, not a correctness guarantee.
func BakeTables(lines *spectra.LineList, conc ConcFunc, shape ShapeFunc, cutoff float64, nu []float64, d *TPDomain, log logrus.FieldLogger) ([]*Table, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if err := validateWavenumbers(nu); err != nil {
		return nil, err
	}

	nT, nP, nNu := d.NT(), d.NP(), len(nu)

	// One contiguous column of nNu cross-sections per (T, P) pair.
	// Each (i, j) pair's column is written by exactly one worker, so
	// the grid fill needs no locking.
	buf := make([]float64, nNu*nT*nP)
	nprocs := runtime.GOMAXPROCS(0)
	errs := make([]error, nprocs)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for ij := pp; ij < nT*nP; ij += nprocs {
				T, P := d.T[ij/nP], d.P[ij%nP]
				c := conc(T, P)
				if c < 0 || c > 1 {
					errs[pp] = fmt.Errorf("opacity: concentration %g at T=%g K, P=%g Pa is outside [0,1]", c, T, P)
					return
				}
				shape(buf[ij*nNu:(ij+1)*nNu], nu, lines, T, P, c*P, cutoff)
			}
		}(pp)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	if mixed := sanitizeMixedZeros(buf, nu, nT*nP); len(mixed) > 0 {
		log.WithFields(logrus.Fields{
			"molecule":    lines.Molecule(),
			"wavenumbers": mixed,
		}).Warn("opacity: zeroing wavenumbers whose cross-sections mix zero and nonzero grid samples")
	}

	// Table construction is likewise independent per wavenumber.
	tables := make([]*Table, nNu)
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for k := pp; k < nNu; k += nprocs {
				xsec := make([][]float64, nT)
				for i := range xsec {
					xsec[i] = make([]float64, nP)
					for j := range xsec[i] {
						xsec[i][j] = buf[(i*nP+j)*nNu+k]
					}
				}
				t, err := newTable(d.T, d.P, xsec)
				if err != nil {
					errs[pp] = err
					return
				}
				tables[k] = t
			}
		}(pp)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return tables, nil
}

// validateWavenumbers checks that nu is strictly ascending and
// non-negative. It runs before any kernel work begins.
func validateWavenumbers(nu []float64) error {
	if len(nu) == 0 {
		return fmt.Errorf("opacity: empty wavenumber array")
	}
	if nu[0] < 0 {
		return fmt.Errorf("opacity: negative wavenumber %g cm⁻¹ at index 0", nu[0])
	}
	for k := 1; k < len(nu); k++ {
		if nu[k] <= nu[k-1] {
			return fmt.Errorf("opacity: wavenumber array is not strictly ascending at index %d (%g cm⁻¹ followed by %g cm⁻¹)",
				k, nu[k-1], nu[k])
		}
	}
	return nil
}

// sanitizeMixedZeros scans the baked buffer for wavenumbers whose
// minimum cross-section over the whole grid is exactly zero while the
// maximum is positive, zeroes those wavenumbers' grids in place, and
// returns the affected wavenumbers. The buffer layout is one
// len(nu)-long column per grid point, nPoints columns in total.
func sanitizeMixedZeros(buf, nu []float64, nPoints int) []float64 {
	var mixed []float64
	for k := range nu {
		var anyZero, anyPositive bool
		for ij := 0; ij < nPoints; ij++ {
			if x := buf[ij*len(nu)+k]; x == 0 {
				anyZero = true
			} else {
				anyPositive = true
			}
		}
		if anyZero && anyPositive {
			mixed = append(mixed, nu[k])
			for ij := 0; ij < nPoints; ij++ {
				buf[ij*len(nu)+k] = 0
			}
		}
	}
	return mixed
}
