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

package opacityutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/spectralmodel/opacity"
	"github.com/spectralmodel/opacity/spectra"
)

// Bake reads the configured line database, bakes a fixed-concentration
// gas over the configured sampling domain, and writes it to
// OutputFile.
func Bake(cfg *viper.Viper) error {
	lines, err := readLines(cfg)
	if err != nil {
		return err
	}
	d, err := domainFromConfig(cfg)
	if err != nil {
		return err
	}
	nu, err := wavenumberGrid(cfg)
	if err != nil {
		return err
	}

	Log.WithFields(logrus.Fields{
		"molecule":    lines.Molecule(),
		"lines":       lines.Len(),
		"wavenumbers": len(nu),
		"gridPoints":  d.NT() * d.NP(),
	}).Info("baking cross-section tables")
	start := time.Now()

	gas, err := opacity.NewFixedGas(cfg.GetString("GasName"), cfg.GetString("Molecule"),
		lines, cfg.GetFloat64("Concentration"), nu, d, nil, cfg.GetFloat64("Cutoff"))
	if err != nil {
		return err
	}
	Log.WithFields(logrus.Fields{
		"elapsed": time.Since(start),
	}).Info("baking finished")

	out := expandEnv(cfg.GetString("OutputFile"))
	w, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("opacity: creating output file: %v", err)
	}
	defer w.Close()
	return gas.Save(w)
}

// Eval loads a baked gas, compares the table at WavenumberIndex
// against exact line-shape evaluation on a GridN×GridN validation
// grid, logs the summary error statistics, and optionally writes the
// relative-error grid to ErrorCSV.
func Eval(cfg *viper.Viper) error {
	in := expandEnv(cfg.GetString("OutputFile"))
	r, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("opacity: opening baked gas: %v", err)
	}
	defer r.Close()
	gas, err := opacity.LoadFixedGas(r)
	if err != nil {
		return err
	}

	lines, err := readLines(cfg)
	if err != nil {
		return err
	}

	k := cfg.GetInt("WavenumberIndex")
	nu := gas.Wavenumbers()
	if k < 0 || k >= len(nu) {
		return fmt.Errorf("opacity: wavenumber index %d is outside [0,%d)", k, len(nu))
	}

	grid, err := opacity.TableError(gas.Table(k), gas.Domain(), lines, nu[k],
		gas.Concentration, nil, cfg.GetFloat64("Cutoff"), cfg.GetInt("GridN"))
	if err != nil {
		return err
	}
	s := grid.Summary()
	Log.WithFields(logrus.Fields{
		"wavenumber": nu[k],
		"maxAbs":     s.MaxAbs,
		"maxRel":     s.MaxRel,
		"meanRel":    s.MeanRel,
		"stdRel":     s.StdRel,
		"samples":    s.N,
	}).Info("table approximation error")

	if path := expandEnv(cfg.GetString("ErrorCSV")); path != "" {
		if err := writeErrorCSV(path, grid); err != nil {
			return err
		}
	}
	return nil
}

// readLines opens the configured line database and reads the
// configured molecule from it.
func readLines(cfg *viper.Viper) (*spectra.LineList, error) {
	path := expandEnv(cfg.GetString("LineFile"))
	if path == "" {
		return nil, fmt.Errorf("opacity: no LineFile specified")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opacity: opening line database: %v", err)
	}
	defer f.Close()
	return spectra.ReadPar(f, cfg.GetString("Molecule"))
}

func domainFromConfig(cfg *viper.Viper) (*opacity.TPDomain, error) {
	return opacity.NewTPDomain(
		cfg.GetFloat64("TMin"), cfg.GetFloat64("TMax"), cfg.GetInt("NT"),
		cfg.GetFloat64("PMin"), cfg.GetFloat64("PMax"), cfg.GetInt("NP"))
}

// wavenumberGrid builds the ascending wavenumber array from the
// configured range and step. Configuration file values may arrive as
// strings or integers, so they are coerced explicitly.
func wavenumberGrid(cfg *viper.Viper) ([]float64, error) {
	var bounds [3]float64
	for i, name := range []string{"NuMin", "NuMax", "NuStep"} {
		v, err := cast.ToFloat64E(cfg.Get(name))
		if err != nil {
			return nil, fmt.Errorf("opacity: parsing %s: %v", name, err)
		}
		bounds[i] = v
	}
	lo, hi, step := bounds[0], bounds[1], bounds[2]
	if step <= 0 {
		return nil, fmt.Errorf("opacity: NuStep %g must be positive", step)
	}
	if lo < 0 || hi <= lo {
		return nil, fmt.Errorf("opacity: wavenumber range [%g,%g] must be non-negative and ascending", lo, hi)
	}
	var nu []float64
	for x := lo; x <= hi; x += step {
		nu = append(nu, x)
	}
	return nu, nil
}

func writeErrorCSV(path string, grid *opacity.TableErrorGrid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("opacity: creating error CSV: %v", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)

	// Header row: pressures; one row per temperature below.
	header := make([]string, len(grid.P)+1)
	header[0] = "T[K]\\P[Pa]"
	for j, p := range grid.P {
		header[j+1] = strconv.FormatFloat(p, 'g', -1, 64)
	}
	if err := w.Write(header); err != nil {
		return err
	}
	row := make([]string, len(grid.P)+1)
	for i, t := range grid.T {
		row[0] = strconv.FormatFloat(t, 'g', -1, 64)
		for j := range grid.P {
			row[j+1] = strconv.FormatFloat(grid.Rel.At(i, j), 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
