package adder

import (
	"math/big"

	"golang.org/x/exp/rand"

	"github.com/modsqr/precompute/geometry"
)

// SampleOperand returns a deterministic pseudo-random packed operand for
// self-tests; equal seeds yield equal operands for a given radix geometry.
func SampleOperand(seed uint64, r geometry.Radix) *big.Int {
	rng := rand.New(rand.NewSource(seed))
	x := new(big.Int)
	w := new(big.Int)
	for bits := 0; bits < r.TotalBits(); bits += 64 {
		x.Lsh(x, 64)
		x.Or(x, w.SetUint64(rng.Uint64()))
	}
	mask := new(big.Int).Lsh(big.NewInt(1), uint(r.TotalBits()))
	mask.Sub(mask, big.NewInt(1))
	return x.And(x, mask)
}
