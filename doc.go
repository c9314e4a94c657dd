// Package precompute derives the constant tables a modular-squaring VDF
// circuit needs to reduce wide products without a hardware divider.
//
// Two independent generators share one arbitrary-precision primitive:
//   - lut emits per-chunk reduction lookup tables
//   - adder emits the redundant-radix correction terms
//
// Both are driven from a geometry.Config describing the modulus and the
// operand chunking; outputs are persisted through the sink package.
package precompute

import (
	"github.com/blang/semver/v4"
)

// Version of the generator. Artifacts record it in their manifest; a
// manifest written by a different major version is not resumed.
var Version = semver.MustParse("0.2.0")
