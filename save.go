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
	"encoding/gob"
	"fmt"
	"io"
)

// fixedGasFile is the gob wire form of a FixedGas. Variable gases are
// not persistable because their concentration is a function value.
type fixedGasFile struct {
	Name        string
	Formula     string
	MolarMass   float64
	Wavenumbers []float64
	Domain      *TPDomain
	Tables      []*Table
	Conc        float64
}

// Save writes the gas, including its baked tables, to w in gob format.
func (g *FixedGas) Save(w io.Writer) error {
	f := fixedGasFile{
		Name:        g.name,
		Formula:     g.formula,
		MolarMass:   g.molarMass,
		Wavenumbers: g.nu,
		Domain:      g.domain,
		Tables:      g.tables,
		Conc:        g.conc,
	}
	if err := gob.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("opacity: saving gas %s: %v", g.name, err)
	}
	return nil
}

// LoadFixedGas reads a gas previously written by Save from r.
func LoadFixedGas(r io.Reader) (*FixedGas, error) {
	var f fixedGasFile
	if err := gob.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("opacity: loading gas: %v", err)
	}
	if len(f.Wavenumbers) != len(f.Tables) {
		return nil, fmt.Errorf("opacity: loaded gas %s has %d wavenumbers but %d tables",
			f.Name, len(f.Wavenumbers), len(f.Tables))
	}
	return &FixedGas{
		gasData: gasData{
			name:      f.Name,
			formula:   f.Formula,
			molarMass: f.MolarMass,
			nu:        f.Wavenumbers,
			domain:    f.Domain,
			tables:    f.Tables,
		},
		conc: f.Conc,
	}, nil
}
