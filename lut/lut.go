// Package lut generates the reduction lookup tables of the modular-squaring
// circuit. For a chunk index i, table entry j holds the residue contribution
// j * 2^((i+nonRedundantElements)*wordLen) mod M of chunk value j, so the
// circuit folds partial products back below the modulus with table additions
// instead of division.
package lut

import (
	"fmt"
	"math/big"

	"github.com/modsqr/precompute/bigmod"
	"github.com/modsqr/precompute/geometry"
)

// Kind selects one of the two structurally related tables per chunk index.
type Kind uint8

const (
	// Lut8 is the 2^(wordLen/2)-entry table addressed by a half-word chunk.
	Lut8 Kind = iota
	// Lut9 is the 2^(wordLen/2+1)-entry table whose extra address bit covers
	// the offset chunk's high bit.
	Lut9
)

func (k Kind) String() string {
	switch k {
	case Lut8:
		return "lut8"
	case Lut9:
		return "lut9"
	default:
		return "unknown"
	}
}

// Lut9Offset is the exponent offset of the lut9 base multiplier relative to
// lut8 (the "V7V6" polynomial degree offset). It is a fixed structural
// constant of the reference circuit's bit layout, not derived from the word
// geometry; confirm against the consuming hardware before changing it.
const Lut9Offset = 8

// Base returns the base multiplier of table (kind, index):
//
//	lut8: 2^((index + nonRedundantElements) * wordLen) mod M
//	lut9: 2^((index + nonRedundantElements) * wordLen + Lut9Offset) mod M
func Base(kind Kind, index int, cfg geometry.Config) *big.Int {
	e := (index + cfg.Word.NonRedundantElements) * cfg.Word.WordLen
	if kind == Lut9 {
		e += Lut9Offset
	}
	return bigmod.Pow2Mod(e, cfg.Modulus)
}

// Size returns the entry count of a table of the given kind.
func Size(kind Kind, cfg geometry.Config) int {
	if kind == Lut9 {
		return cfg.Word.Lut9Size()
	}
	return cfg.Word.Lut8Size()
}

// Entries streams the entries of table (kind, index) in increasing address
// order: entry j is j * Base(kind, index) mod M. The walk stops at the first
// error returned by fn.
func Entries(kind Kind, index int, cfg geometry.Config, fn func(j int, e *big.Int) error) error {
	if index < 0 || index >= cfg.Word.TableCount {
		return fmt.Errorf("table index %d out of range [0, %d)", index, cfg.Word.TableCount)
	}
	t := Base(kind, index, cfg)
	cur := new(big.Int)
	for j := 0; j < Size(kind, cfg); j++ {
		if err := fn(j, new(big.Int).Set(cur)); err != nil {
			return err
		}
		cur.Add(cur, t)
		if cur.Cmp(cfg.Modulus) >= 0 {
			cur.Sub(cur, cfg.Modulus)
		}
	}
	return nil
}

// Generate returns the full table (kind, index). Prefer Entries for large
// address widths; the contract fixes values and order only, not buffering.
func Generate(kind Kind, index int, cfg geometry.Config) ([]*big.Int, error) {
	out := make([]*big.Int, 0, Size(kind, cfg))
	err := Entries(kind, index, cfg, func(_ int, e *big.Int) error {
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FileName returns the output artifact name of table (kind, index).
func FileName(kind Kind, index int) string {
	return fmt.Sprintf("precompute_%s_%03d.dat", kind, index)
}
