// Package adder derives the correction constants that let the squaring
// circuit fold a wide redundant-radix sum down modulo M with additions and
// table lookups only.
//
// The operand is a concatenation of sign-magnitude symbols: logRadix
// magnitude bits, a guard bit, a sign bit, with symbol s carrying weight
// 2^(s*logRadix). Three structural terms handle the parts of the sum that
// sit below the canonical width, and one 6-bit-window term per index i >= 3
// maps the remaining bit positions to their residues. A set sign bit
// subtracts; the decomposition rewrites -b*2^p as (1-b)*2^p - 2^p, so sign
// selectors are tested inverted and the fixed -2^p corrections accumulate
// into term 0.
package adder

import (
	"fmt"
	"math/big"

	"github.com/modsqr/precompute/bigmod"
	"github.com/modsqr/precompute/geometry"
)

// WindowWidth is the number of flattened bit positions folded into one
// bit-position term; the consuming circuit's lookup primitive takes six
// selector bits.
const WindowWidth = 6

// firstWindowTerm is the index of the first bit-position term; indices 0..2
// are the structural terms.
const firstWindowTerm = 3

// SignSymbol returns the bit value of an isolated sign bit within one
// symbol slot, 2^(logRadix+1).
func SignSymbol(r geometry.Radix) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(r.SignBitPos()))
}

// AllSignBits returns the mask holding one sign bit per symbol slot, in the
// value domain: the sign bit of symbol s sits at weight 2^(s*logRadix +
// logRadix + 1).
func AllSignBits(r geometry.Radix) *big.Int {
	sign := SignSymbol(r)
	acc := new(big.Int)
	for i := 0; i < r.NumSymbols(); i++ {
		acc.Lsh(acc, uint(r.LogRadix))
		acc.Add(acc, sign)
	}
	return acc
}

// Term0 returns the constant correction for the universal negative sign-bit
// contribution across all symbols:
//
//	((M << 3*modBitWidth) - ALLSIGNBITS) mod M  ==  -ALLSIGNBITS mod M
func Term0(cfg geometry.Config) *big.Int {
	v := new(big.Int).Lsh(cfg.Modulus, uint(3*cfg.Radix.ModBitWidth()))
	v.Sub(v, AllSignBits(cfg.Radix))
	return bigmod.EuclidMod(v, cfg.Modulus)
}

// Term1 returns zero: the low magnitude bits of the low symbols are already
// below the canonical width and feed the adder tree directly, so no modular
// correction constant is needed.
func Term1(cfg geometry.Config) *big.Int {
	return new(big.Int)
}

// Term2 returns the correction for the carry-in sign bit propagated from the
// previous symbol: the sign-bit pattern of AllSignBits over one fewer than
// 2^logNumSymbols slots, starting at symbol 1, reduced modulo M.
func Term2(cfg geometry.Config) *big.Int {
	sign := SignSymbol(cfg.Radix)
	acc := new(big.Int)
	for i := 1; i < 1<<cfg.Radix.LogNumSymbols; i++ {
		acc.Lsh(acc, uint(cfg.Radix.LogRadix))
		acc.Add(acc, sign)
	}
	return bigmod.EuclidMod(acc, cfg.Modulus)
}

// Triple is the contribution of one flattened bit position to a
// bit-position term: the residue 2^(sym*logRadix + bit) mod M, selected at
// runtime by the operand bit at symbol sym, position bit (inverted when bit
// is the sign position).
type Triple struct {
	Sym int      `cbor:"sym"`
	Bit int      `cbor:"bit"`
	Mod *big.Int `cbor:"mod"`
}

// Negated reports whether the triple's selector carries negated-bit
// semantics (its position is a sign bit).
func (t Triple) Negated(r geometry.Radix) bool {
	return t.Bit == r.SignBitPos()
}

// WindowStart returns the flattened bit offset the 6-wide window of term i
// starts at.
func WindowStart(i int, r geometry.Radix) int {
	return (i-firstWindowTerm)*WindowWidth + r.WindowStart()
}

// Term returns the triples of bit-position term i, for i in
// [3, TermUpperBound). Sub-positions past the top of the representation
// contribute nothing, so terms near the bound may be empty.
func Term(i int, cfg geometry.Config) ([]Triple, error) {
	if i < firstWindowTerm || i >= cfg.TermUpperBound {
		return nil, fmt.Errorf("term index %d out of range [%d, %d)", i, firstWindowTerm, cfg.TermUpperBound)
	}
	r := cfg.Radix
	start := WindowStart(i, r)
	var out []Triple
	for j := 0; j < WindowWidth; j++ {
		sym := (start + j) / r.SymbolBits()
		bit := (start + j) % r.SymbolBits()
		if sym >= r.NumSymbols() {
			continue
		}
		out = append(out, Triple{
			Sym: sym,
			Bit: bit,
			Mod: bigmod.Pow2Mod(sym*r.LogRadix+bit, cfg.Modulus),
		})
	}
	return out, nil
}

// Select returns the runtime value of bit-position term i for the packed
// operand x: the sum modulo M of the triples whose selector bit is set,
// sign selectors tested inverted.
func Select(i int, x *big.Int, cfg geometry.Config) (*big.Int, error) {
	triples, err := Term(i, cfg)
	if err != nil {
		return nil, err
	}
	r := cfg.Radix
	sum := new(big.Int)
	for _, t := range triples {
		pos := t.Sym*r.SymbolBits() + t.Bit
		sel := x.Bit(pos)
		if t.Negated(r) {
			sel = 1 - sel
		}
		if sel == 1 {
			sum.Add(sum, t.Mod)
			if sum.Cmp(cfg.Modulus) >= 0 {
				sum.Sub(sum, cfg.Modulus)
			}
		}
	}
	return sum, nil
}

// TermSet is one bit-position term with its index, as exported to the
// circuit toolchain.
type TermSet struct {
	Index   int      `cbor:"index"`
	Triples []Triple `cbor:"triples"`
}

// AllTerms returns every bit-position term of the configuration.
func AllTerms(cfg geometry.Config) ([]TermSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	out := make([]TermSet, 0, cfg.TermUpperBound-firstWindowTerm)
	for i := firstWindowTerm; i < cfg.TermUpperBound; i++ {
		triples, err := Term(i, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, TermSet{Index: i, Triples: triples})
	}
	return out, nil
}
