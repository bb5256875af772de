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

// Package opacityutil holds the configuration and command-line
// interface for baking and evaluating opacity tables.
package opacityutil

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/spectralmodel/opacity"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log receives progress and diagnostic messages.
var Log logrus.FieldLogger = logrus.StandardLogger()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	Cfg = viper.New()

	// Options are the configuration options available to the opacity
	// commands.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LineFile",
			usage: `
              LineFile is the path to the HITRAN-format .par line database.
              Can include environment variables.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{bakeCmd.Flags(), evalCmd.Flags()},
		},
		{
			name: "Molecule",
			usage: `
              Molecule is the chemical formula of the absorber to read
              from the line database (H2O, CO2, O3, CO or CH4).`,
			defaultVal: "H2O",
			flagsets:   []*pflag.FlagSet{bakeCmd.Flags(), evalCmd.Flags()},
		},
		{
			name: "GasName",
			usage: `
              GasName is the human-readable name stored with the baked gas.`,
			defaultVal: "water vapor",
			flagsets:   []*pflag.FlagSet{bakeCmd.Flags()},
		},
		{
			name: "NuMin",
			usage: `
              NuMin is the lower bound of the wavenumber grid [1/cm].`,
			defaultVal: 500.,
			flagsets:   []*pflag.FlagSet{bakeCmd.Flags()},
		},
		{
			name: "NuMax",
			usage: `
              NuMax is the upper bound of the wavenumber grid [1/cm].`,
			defaultVal: 1500.,
			flagsets:   []*pflag.FlagSet{bakeCmd.Flags()},
		},
		{
			name: "NuStep",
			usage: `
              NuStep is the wavenumber grid spacing [1/cm].`,
			defaultVal: 0.01,
			flagsets:   []*pflag.FlagSet{bakeCmd.Flags()},
		},
		{
			name: "TMin",
			usage: `
              TMin is the lower temperature bound of the sampling domain [K].`,
			defaultVal: 25.,
			flagsets:   []*pflag.FlagSet{bakeCmd.Flags()},
		},
		{
			name: "TMax",
			usage: `
              TMax is the upper temperature bound of the sampling domain [K].`,
			defaultVal: 550.,
			flagsets:   []*pflag.FlagSet{bakeCmd.Flags()},
		},
		{
			name: "NT",
			usage: `
              NT is the number of temperature sample points.`,
			defaultVal: 12,
			flagsets:   []*pflag.FlagSet{bakeCmd.Flags()},
		},
		{
			name: "PMin",
			usage: `
              PMin is the lower pressure bound of the sampling domain [Pa].`,
			defaultVal: 1.,
			flagsets:   []*pflag.FlagSet{bakeCmd.Flags()},
		},
		{
			name: "PMax",
			usage: `
              PMax is the upper pressure bound of the sampling domain [Pa].`,
			defaultVal: 1e6,
			flagsets:   []*pflag.FlagSet{bakeCmd.Flags()},
		},
		{
			name: "NP",
			usage: `
              NP is the number of pressure sample points.`,
			defaultVal: 24,
			flagsets:   []*pflag.FlagSet{bakeCmd.Flags()},
		},
		{
			name: "Concentration",
			usage: `
              Concentration is the constant molar concentration of the
              absorber, in [0,1].`,
			defaultVal: 1e-3,
			flagsets:   []*pflag.FlagSet{bakeCmd.Flags()},
		},
		{
			name: "Cutoff",
			usage: `
              Cutoff is the distance from each line center beyond which
              line contributions are truncated [1/cm].`,
			defaultVal: 25.,
			flagsets:   []*pflag.FlagSet{bakeCmd.Flags(), evalCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path the baked gas is written to (bake)
              or read from (eval). Can include environment variables.`,
			defaultVal: "gas.gob",
			flagsets:   []*pflag.FlagSet{bakeCmd.Flags(), evalCmd.Flags()},
		},
		{
			name: "WavenumberIndex",
			usage: `
              WavenumberIndex selects the baked table to evaluate.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{evalCmd.Flags()},
		},
		{
			name: "GridN",
			usage: `
              GridN is the resolution of the N×N validation grid.`,
			defaultVal: 50,
			flagsets:   []*pflag.FlagSet{evalCmd.Flags()},
		},
		{
			name: "ErrorCSV",
			usage: `
              ErrorCSV is an optional path to write the relative-error
              grid to as CSV. Empty disables the output.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{evalCmd.Flags()},
		},
	}

	for _, option := range options {
		for _, set := range option.flagsets {
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(bakeCmd)
	Root.AddCommand(evalCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("opacity: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "opacity",
	Short: "A gas absorption cross-section table baker.",
	Long: `Opacity precomputes interpolation tables of gas absorption
cross-sections over temperature and pressure for use in radiative-transfer
calculations. Use the subcommands specified below to bake tables from
line-by-line spectroscopic data and to evaluate their approximation error.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag) or by using command-line
arguments. Refer to the subcommand documentation for the available options
and default settings.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of Opacity.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("Opacity v%s\n", opacity.Version)
	},
	DisableAutoGenTag: true,
}

var bakeCmd = &cobra.Command{
	Use:   "bake",
	Short: "Bake cross-section tables for a gas.",
	Long: `bake reads a line database, evaluates the line-shape kernel over
every (temperature, pressure) sample point of the configured domain, and
writes the resulting gas, including one interpolation table per wavenumber,
to OutputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Bake(Cfg)
	},
	DisableAutoGenTag: true,
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Quantify the approximation error of a baked table.",
	Long: `eval compares one baked table against exact line-shape evaluation
on a validation grid spanning the gas's sampling domain and reports summary
error statistics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Eval(Cfg)
	},
	DisableAutoGenTag: true,
}

// expandEnv expands environment variables in path.
func expandEnv(path string) string { return os.ExpandEnv(path) }
