// Package geometry holds the configuration record shared by the reduction
// table and adder term generators: the modulus and the two chunk geometries
// describing how a wide operand is split for the squaring circuit.
package geometry

import (
	"fmt"
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// Word describes how a non-redundant operand is split into fixed-width
// chunks for the reduction lookup tables.
type Word struct {
	// WordLen is the chunk width in bits. It must be even: half of it is the
	// lookup address width.
	WordLen int

	NonRedundantElements int
	RedundantElements    int
	NumSegments          int
	ExtraElements        int

	// TableCount is the number of (lut8, lut9) table pairs to emit. The
	// reference geometry uses 33.
	TableCount int
}

// LookUpWidth returns the table address width, WordLen/2.
func (w Word) LookUpWidth() int { return w.WordLen / 2 }

// Lut8Size returns the entry count of an 8-entry-address table, 2^(WordLen/2).
func (w Word) Lut8Size() int { return 1 << w.LookUpWidth() }

// Lut9Size returns the entry count of a 9-entry-address table; the extra
// address bit covers the offset chunk's high bit.
func (w Word) Lut9Size() int { return 1 << (w.LookUpWidth() + 1) }

// LutWidth returns the bit width of a serialized table entry,
// WordLen * NonRedundantElements.
func (w Word) LutWidth() int { return w.WordLen * w.NonRedundantElements }

// SegmentElements returns NonRedundantElements / NumSegments.
func (w Word) SegmentElements() int { return w.NonRedundantElements / w.NumSegments }

// Radix describes the redundant sign-magnitude representation: each of the
// 2^(LogNumSymbols+1) symbols is LogRadix+2 bits wide (LogRadix magnitude
// bits, one guard bit, one sign bit), and consecutive symbols overlap so that
// symbol s carries weight 2^(s*LogRadix).
type Radix struct {
	LogNumSymbols int
	LogRadix      int
}

// NumSymbols returns the total symbol count, 2^(LogNumSymbols+1).
func (r Radix) NumSymbols() int { return 2 << r.LogNumSymbols }

// SymbolBits returns the packed width of one symbol, LogRadix+2.
func (r Radix) SymbolBits() int { return r.LogRadix + 2 }

// SignBitPos returns the bit position of the sign bit within a symbol.
func (r Radix) SignBitPos() int { return r.LogRadix + 1 }

// ModBitWidth returns the width of the canonical operand the symbols
// represent, LogRadix * 2^LogNumSymbols.
func (r Radix) ModBitWidth() int { return r.LogRadix << r.LogNumSymbols }

// TotalBits returns the packed width of a full redundant operand.
func (r Radix) TotalBits() int { return r.NumSymbols() * r.SymbolBits() }

// WindowStart returns the first flattened bit position covered by the
// 6-bit-window terms: two bits (guard and sign of the last low symbol) before
// the upper half of the symbols.
func (r Radix) WindowStart() int { return r.SymbolBits()<<r.LogNumSymbols - 2 }

// Config is the full configuration of one generation run. The modulus is
// immutable for the lifetime of the run.
type Config struct {
	Modulus *big.Int
	Word    Word
	Radix   Radix

	// TermUpperBound is the exclusive upper bound of the bit-position term
	// index range [3, TermUpperBound). It must cover every flattened bit
	// position; indices past coverage yield empty terms.
	TermUpperBound int
}

// MinTermUpperBound returns the smallest admissible TermUpperBound for the
// radix geometry: the [3, n) range must include a window for every flattened
// bit position at or above WindowStart.
func (c Config) MinTermUpperBound() int {
	span := c.Radix.TotalBits() - c.Radix.WindowStart()
	return 3 + (span+5)/6
}

// Fingerprint returns a stable hash identifying the modulus and word
// geometry. Artifact directories are bound to it, so a rerun with a changed
// modulus regenerates every table instead of resuming stale ones.
func (c Config) Fingerprint() string {
	sum := blake2b.Sum256([]byte(fmt.Sprintf("%s/%d/%d/%d/%d/%d/%d",
		c.Modulus.Text(16),
		c.Word.WordLen,
		c.Word.NonRedundantElements,
		c.Word.RedundantElements,
		c.Word.NumSegments,
		c.Word.ExtraElements,
		c.Word.TableCount,
	)))
	return fmt.Sprintf("%x", sum[:])
}

// Validate checks the configuration and returns an error naming the first
// offending parameter. Generation must not start on an invalid configuration.
func (c Config) Validate() error {
	if c.Modulus == nil || c.Modulus.Sign() == 0 {
		return fmt.Errorf("invalid configuration: modulus: must be a nonzero positive integer")
	}
	if c.Modulus.Sign() < 0 {
		return fmt.Errorf("invalid configuration: modulus: must be positive")
	}
	if c.Modulus.Bit(0) == 0 {
		return fmt.Errorf("invalid configuration: modulus: must be odd")
	}
	if c.Word.WordLen <= 0 || c.Word.WordLen%2 != 0 {
		return fmt.Errorf("invalid configuration: wordLen: must be a positive even integer, got %d", c.Word.WordLen)
	}
	if c.Word.NonRedundantElements <= 0 {
		return fmt.Errorf("invalid configuration: nonRedundantElements: must be positive, got %d", c.Word.NonRedundantElements)
	}
	if c.Word.RedundantElements < 0 {
		return fmt.Errorf("invalid configuration: redundantElements: must be non-negative, got %d", c.Word.RedundantElements)
	}
	if c.Word.NumSegments <= 0 {
		return fmt.Errorf("invalid configuration: numSegments: must be positive, got %d", c.Word.NumSegments)
	}
	if c.Word.NonRedundantElements%c.Word.NumSegments != 0 {
		return fmt.Errorf("invalid configuration: numSegments: %d does not divide nonRedundantElements %d",
			c.Word.NumSegments, c.Word.NonRedundantElements)
	}
	if c.Word.TableCount <= 0 {
		return fmt.Errorf("invalid configuration: tableCount: must be positive, got %d", c.Word.TableCount)
	}
	if c.Radix.LogNumSymbols < 0 {
		return fmt.Errorf("invalid configuration: logNumSymbols: must be non-negative, got %d", c.Radix.LogNumSymbols)
	}
	if c.Radix.LogRadix <= 0 {
		return fmt.Errorf("invalid configuration: logRadix: must be positive, got %d", c.Radix.LogRadix)
	}
	if min := c.MinTermUpperBound(); c.TermUpperBound < min {
		return fmt.Errorf("invalid configuration: termUpperBound: %d drops bit positions, need at least %d",
			c.TermUpperBound, min)
	}
	return nil
}
