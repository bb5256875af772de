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
)

// Temperature validity interval [K]. The line-shape kernels in
// spectra/lineshape scale line intensities with a power-law
// partition-function approximation that loses accuracy outside this
// interval, so sampling domains may not extend beyond it.
const (
	TValidMin = 25.
	TValidMax = 1000.
)

// TPDomain is the set of temperature and pressure sample points over
// which cross-sections are pre-evaluated and interpolated. It is
// immutable after construction; one domain is typically created per
// application and shared by every gas baked against it.
type TPDomain struct {
	T          []float64 // temperature sample points [K], ascending
	Tmin, Tmax float64   // temperature bounds [K]

	P          []float64 // pressure sample points [Pa], ascending
	Pmin, Pmax float64   // pressure bounds [Pa]
}

// NewTPDomain creates a sampling domain with nT temperature points on
// [Tmin, Tmax] and nP pressure points on [Pmin, Pmax]. Temperature
// points are placed at Chebyshev–Lobatto nodes directly on the
// interval; pressure points are placed at Chebyshev–Lobatto nodes in
// log-space and then exponentiated, so pressure sampling is dense near
// small values while remaining well conditioned for interpolation.
// Both intervals include their endpoints. The temperature range must
// lie within [TValidMin, TValidMax].
func NewTPDomain(Tmin, Tmax float64, nT int, Pmin, Pmax float64, nP int) (*TPDomain, error) {
	switch {
	case Tmin <= 0:
		return nil, fmt.Errorf("opacity: temperature lower bound %g K must be positive", Tmin)
	case Pmin <= 0:
		return nil, fmt.Errorf("opacity: pressure lower bound %g Pa must be positive", Pmin)
	case Tmin >= Tmax:
		return nil, fmt.Errorf("opacity: temperature bounds are not ascending: %g K >= %g K", Tmin, Tmax)
	case Pmin >= Pmax:
		return nil, fmt.Errorf("opacity: pressure bounds are not ascending: %g Pa >= %g Pa", Pmin, Pmax)
	case Tmin < TValidMin:
		return nil, fmt.Errorf("opacity: temperature lower bound %g K is below the %g K validity limit", Tmin, TValidMin)
	case Tmax > TValidMax:
		return nil, fmt.Errorf("opacity: temperature upper bound %g K is above the %g K validity limit", Tmax, TValidMax)
	case nT < 2:
		return nil, fmt.Errorf("opacity: %d temperature points requested; at least 2 are required", nT)
	case nP < 2:
		return nil, fmt.Errorf("opacity: %d pressure points requested; at least 2 are required", nP)
	}
	d := &TPDomain{
		T:    chebyshevNodes(Tmin, Tmax, nT),
		Tmin: Tmin,
		Tmax: Tmax,
		P:    chebyshevNodes(math.Log(Pmin), math.Log(Pmax), nP),
		Pmin: Pmin,
		Pmax: Pmax,
	}
	for j, lp := range d.P {
		d.P[j] = math.Exp(lp)
	}
	// Pin the endpoints so that the domain bounds are reproduced
	// exactly rather than to within rounding.
	d.P[0], d.P[nP-1] = Pmin, Pmax
	return d, nil
}

// DefaultTPDomain returns the standard sampling domain: 12 temperature
// points in [25, 550] K and 24 pressure points in [1, 1e6] Pa.
func DefaultTPDomain() *TPDomain {
	d, err := NewTPDomain(25, 550, 12, 1, 1e6, 24)
	if err != nil {
		panic(err)
	}
	return d
}

// chebyshevNodes returns n Chebyshev–Lobatto nodes on [lo, hi] in
// ascending order, endpoints included. Clustering points near the
// interval edges minimizes interpolation error for a fixed point
// budget.
func chebyshevNodes(lo, hi float64, n int) []float64 {
	x := make([]float64, n)
	mid, half := (lo+hi)/2, (hi-lo)/2
	for k := range x {
		x[k] = mid - half*math.Cos(float64(k)*math.Pi/float64(n-1))
	}
	x[0], x[n-1] = lo, hi
	return x
}

// NT returns the number of temperature sample points.
func (d *TPDomain) NT() int { return len(d.T) }

// NP returns the number of pressure sample points.
func (d *TPDomain) NP() int { return len(d.P) }

// Clone returns a deep copy of the domain.
func (d *TPDomain) Clone() *TPDomain {
	c := *d
	c.T = append([]float64(nil), d.T...)
	c.P = append([]float64(nil), d.P...)
	return &c
}
