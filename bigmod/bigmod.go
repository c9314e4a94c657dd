// Package bigmod implements exact modular arithmetic helpers on top of
// math/big, tuned for exponents far too large to materialize as plain
// integers.
//
// The circuit constant generators repeatedly need 2^e mod m for e in the
// tens of thousands; computing 2^e first would allocate multi-kilobyte
// integers per call. Both helpers below instead walk the exponent (or the
// bits of the value to reduce) and keep a running accumulator strictly
// below m, reducing by subtraction only.
package bigmod

import (
	"math/big"
)

// Pow2Mod returns 2^e mod m.
//
// The accumulator starts at 1 = 2^0 mod m and is doubled e times, subtracting
// m whenever it reaches it. Runs in time linear in e and never holds a value
// wider than m. Panics if e is negative or m is not positive.
func Pow2Mod(e int, m *big.Int) *big.Int {
	if e < 0 {
		panic("bigmod: negative exponent")
	}
	checkModulus(m)
	acc := big.NewInt(1)
	acc.Mod(acc, m) // m == 1
	for i := 0; i < e; i++ {
		acc.Lsh(acc, 1)
		if acc.Cmp(m) >= 0 {
			acc.Sub(acc, m)
		}
	}
	return acc
}

// Reduce returns x mod m for non-negative x.
//
// It scans the bits of x while maintaining 2^i mod m in a doubled-and-reduced
// accumulator, so x itself is never multiplied or divided. The sum of the
// selected powers is reduced by subtraction as it grows.
//
// The following holds
//
//	Reduce(x, m) = \sum_{i : bit i of x set} (2^i mod m)  (mod m)
func Reduce(x, m *big.Int) *big.Int {
	checkModulus(m)
	if x.Sign() < 0 {
		panic("bigmod: Reduce expects a non-negative value")
	}
	term := new(big.Int)
	pow := big.NewInt(1)
	pow.Mod(pow, m)
	n := x.BitLen()
	for i := 0; i < n; i++ {
		if x.Bit(i) == 1 {
			term.Add(term, pow)
			if term.Cmp(m) >= 0 {
				term.Sub(term, m)
			}
		}
		pow.Lsh(pow, 1)
		if pow.Cmp(m) >= 0 {
			pow.Sub(pow, m)
		}
	}
	return term
}

// EuclidMod returns the canonical residue of x modulo m, in [0, m), for x of
// either sign. big.Int.Mod already implements Euclidean division for positive
// moduli; this wrapper exists so callers reducing possibly-negative
// sign-magnitude values don't reach for Rem by mistake.
func EuclidMod(x, m *big.Int) *big.Int {
	checkModulus(m)
	return new(big.Int).Mod(x, m)
}

func checkModulus(m *big.Int) {
	if m == nil || m.Sign() <= 0 {
		panic("bigmod: modulus must be positive")
	}
}
