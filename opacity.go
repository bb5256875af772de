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

// Package opacity precomputes and queries gas absorption cross-section
// tables for atmospheric radiative-transfer calculations.
//
// Given line-by-line spectroscopic data for a molecule, the package
// bakes, for each wavenumber of interest, a two-dimensional interpolant
// over temperature and pressure that reproduces the line-shape-computed
// absorption cross-section to within a bounded error at a small fraction
// of the cost of evaluating the line shape at runtime. Baked tables are
// wrapped in Gas objects that answer concentration-weighted
// cross-section queries at arbitrary (T, P).
package opacity

// Version gives the version number.
const Version = "0.2.1"
