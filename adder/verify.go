package adder

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/bits-and-blooms/bitset"

	"github.com/modsqr/precompute/bigmod"
	"github.com/modsqr/precompute/geometry"
	"github.com/modsqr/precompute/logger"
)

// ErrMismatch is returned by Verify when the folded sum of adder terms does
// not reproduce the operand's direct residue. This indicates a defect in the
// decomposition derivation, not a runtime condition.
var ErrMismatch = errors.New("adder term sum does not match direct residue")

// Represented returns the exact integer a packed redundant operand denotes.
// Symbol s contributes (magnitude+guard bits) - sign*2^(logRadix+1), scaled
// by 2^(s*logRadix); the result may be negative. Errors if x has bits beyond
// the representation.
func Represented(x *big.Int, cfg geometry.Config) (*big.Int, error) {
	r := cfg.Radix
	if x.Sign() < 0 {
		return nil, fmt.Errorf("operand must be a non-negative packed value")
	}
	if x.BitLen() > r.TotalBits() {
		return nil, fmt.Errorf("operand has %d bits, representation holds %d", x.BitLen(), r.TotalBits())
	}
	magMask := new(big.Int).Lsh(big.NewInt(1), uint(r.SignBitPos()))
	magMask.Sub(magMask, big.NewInt(1))
	total := new(big.Int)
	v := new(big.Int)
	for s := 0; s < r.NumSymbols(); s++ {
		field := symbolField(x, s, r)
		v.And(field, magMask)
		if field.Bit(r.SignBitPos()) == 1 {
			v.Sub(v, SignSymbol(r))
		}
		v.Lsh(v, uint(s*r.LogRadix))
		total.Add(total, v)
	}
	return total, nil
}

// Verify replays the full decomposition against the packed operand x and
// checks that the folded sum equals x's directly computed residue. It is
// the acceptance test for the constant derivation: any mismatch wraps
// ErrMismatch with both residues.
func Verify(x *big.Int, cfg geometry.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r := cfg.Radix
	want, err := Represented(x, cfg)
	if err != nil {
		return err
	}
	wantRes := bigmod.EuclidMod(want, cfg.Modulus)

	// Selector bits with sign positions inverted, over the whole flattened
	// space; the window loop below only ever tests, never recomputes, the
	// sign flip.
	sel := selectorBits(x, r)

	total := Term0(cfg)
	total.Add(total, term1Of(x, cfg))
	total.Add(total, term2Of(x, cfg))
	for i := firstWindowTerm; i < cfg.TermUpperBound; i++ {
		triples, err := Term(i, cfg)
		if err != nil {
			return err
		}
		for _, t := range triples {
			if sel.Test(uint(t.Sym*r.SymbolBits() + t.Bit)) {
				total.Add(total, t.Mod)
			}
		}
	}
	gotRes := bigmod.Reduce(total, cfg.Modulus)

	if gotRes.Cmp(wantRes) != 0 {
		return fmt.Errorf("%w: folded %#x, direct %#x", ErrMismatch, gotRes, wantRes)
	}
	log := logger.Logger()
	log.Debug().Str("residue", gotRes.Text(16)).Msg("decomposition verified")
	return nil
}

// selectorBits returns the operand's bits in flattened symbol-bit order,
// with every sign position flipped.
func selectorBits(x *big.Int, r geometry.Radix) *bitset.BitSet {
	sel := bitset.New(uint(r.TotalBits()))
	for pos := 0; pos < r.TotalBits(); pos++ {
		b := x.Bit(pos)
		if pos%r.SymbolBits() == r.SignBitPos() {
			b = 1 - b
		}
		if b == 1 {
			sel.Set(uint(pos))
		}
	}
	return sel
}

// term1Of is the data-dependent value term 1 stands for: the low logRadix
// magnitude bits of the low symbols, already at their final weights.
func term1Of(x *big.Int, cfg geometry.Config) *big.Int {
	r := cfg.Radix
	magMask := new(big.Int).Lsh(big.NewInt(1), uint(r.LogRadix))
	magMask.Sub(magMask, big.NewInt(1))
	total := new(big.Int)
	v := new(big.Int)
	for s := 0; s < 1<<r.LogNumSymbols; s++ {
		v.And(symbolField(x, s, r), magMask)
		v.Lsh(v, uint(s*r.LogRadix))
		total.Add(total, v)
	}
	return total
}

// term2Of is the data-dependent value term 2 stands for: the guard bit and
// inverted sign bit of symbol s-1 placed at radix slot s, for the low
// symbols starting at slot 1.
func term2Of(x *big.Int, cfg geometry.Config) *big.Int {
	r := cfg.Radix
	sign := SignSymbol(r)
	total := new(big.Int)
	v := new(big.Int)
	for s := 1; s < 1<<r.LogNumSymbols; s++ {
		v.Xor(symbolField(x, s-1, r), sign)
		v.Rsh(v, uint(r.LogRadix))
		v.Lsh(v, uint(s*r.LogRadix))
		total.Add(total, v)
	}
	return total
}

func symbolField(x *big.Int, s int, r geometry.Radix) *big.Int {
	mask := new(big.Int).Lsh(big.NewInt(1), uint(r.SymbolBits()))
	mask.Sub(mask, big.NewInt(1))
	f := new(big.Int).Rsh(x, uint(s*r.SymbolBits()))
	return f.And(f, mask)
}
