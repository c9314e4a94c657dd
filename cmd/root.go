// Package cmd is the CLI of the precompute tool: it parses the modulus and
// geometry flags, validates them, and drives the table and term generators.
package cmd

import (
	"fmt"
	"math/big"
	"os"

	"github.com/spf13/cobra"

	"github.com/modsqr/precompute"
	"github.com/modsqr/precompute/geometry"
)

var rootCmd = &cobra.Command{
	Use:     "precompute",
	Short:   "generates reduction tables and adder terms for a modular-squaring circuit",
	Version: precompute.Version.String(),
}

var (
	fModulus       string
	fRedundant     int
	fNonRedundant  int
	fNumSegments   int
	fExtraElements int
	fWordLen       int
	fTables        int
	fLogNumSymbols int
	fLogRadix      int
	fBound         int
)

func init() {
	pf := rootCmd.PersistentFlags()
	def := geometry.DefaultConfig()
	pf.StringVarP(&fModulus, "modulus", "M", "", "modulus as a decimal or 0x-prefixed integer -- default is the reference 1024-bit test modulus")
	pf.IntVarP(&fRedundant, "redundant", "r", def.Word.RedundantElements, "number of redundant elements")
	pf.IntVarP(&fNonRedundant, "nonredundant", "n", def.Word.NonRedundantElements, "number of non-redundant elements")
	pf.IntVar(&fNumSegments, "segments", def.Word.NumSegments, "number of segments; must divide the non-redundant element count")
	pf.IntVar(&fExtraElements, "extra", def.Word.ExtraElements, "number of extra elements")
	pf.IntVarP(&fWordLen, "wordlen", "w", def.Word.WordLen, "word length in bits; must be even")
	pf.IntVar(&fTables, "tables", def.Word.TableCount, "number of (lut8, lut9) table pairs")
	pf.IntVar(&fLogNumSymbols, "log-num-symbols", def.Radix.LogNumSymbols, "log2 of half the redundant symbol count")
	pf.IntVar(&fLogRadix, "log-radix", def.Radix.LogRadix, "log2 of the redundant radix")
	pf.IntVar(&fBound, "term-bound", def.TermUpperBound, "exclusive upper bound of the bit-position term index range")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig assembles and validates the run configuration from the flags.
func buildConfig() (geometry.Config, error) {
	cfg := geometry.DefaultConfig()
	if fModulus != "" {
		m, ok := new(big.Int).SetString(fModulus, 0)
		if !ok {
			return geometry.Config{}, fmt.Errorf("invalid modulus %q", fModulus)
		}
		cfg.Modulus = m
	}
	cfg.Word.RedundantElements = fRedundant
	cfg.Word.NonRedundantElements = fNonRedundant
	cfg.Word.NumSegments = fNumSegments
	cfg.Word.ExtraElements = fExtraElements
	cfg.Word.WordLen = fWordLen
	cfg.Word.TableCount = fTables
	cfg.Radix.LogNumSymbols = fLogNumSymbols
	cfg.Radix.LogRadix = fLogRadix
	cfg.TermUpperBound = fBound
	if err := cfg.Validate(); err != nil {
		return geometry.Config{}, err
	}
	return cfg, nil
}
