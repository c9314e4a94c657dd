package lut

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/modsqr/precompute/geometry"
)

func smallConfig() geometry.Config {
	cfg := geometry.DefaultConfig()
	cfg.Modulus = new(big.Int).Set(geometry.ModulusSmall)
	return cfg
}

// Reference values for the small 128-bit scenario modulus, chunk index 0:
// t_lut8 = 2^(64*16) mod M, t_lut9 = 2^(64*16+8) mod M.
func TestScenarioSmallModulus(t *testing.T) {
	assert := require.New(t)
	cfg := smallConfig()

	tLut8 := mustInt("259306686727361260972483163962583498786")
	tLut9 := mustInt("39898422109293429452220047268452332961")

	assert.Zero(Base(Lut8, 0, cfg).Cmp(tLut8))
	assert.Zero(Base(Lut9, 0, cfg).Cmp(tLut9))

	table, err := Generate(Lut8, 0, cfg)
	assert.NoError(err)
	assert.Len(table, 256)
	assert.Zero(table[0].Sign())
	assert.Zero(table[1].Cmp(tLut8))
	assert.Zero(table[5].Cmp(mustInt("84796202950136179209384405618343551350")))
}

func TestLut9OffsetIsEightBits(t *testing.T) {
	assert := require.New(t)
	cfg := smallConfig()
	for i := 0; i < cfg.Word.TableCount; i++ {
		want := new(big.Int).Lsh(Base(Lut8, i, cfg), Lut9Offset)
		want.Mod(want, cfg.Modulus)
		assert.Zero(Base(Lut9, i, cfg).Cmp(want), "index %d", i)
	}
}

func TestLastChunkFullSize(t *testing.T) {
	assert := require.New(t)
	cfg := smallConfig()
	last := cfg.Word.TableCount - 1

	assert.Zero(Base(Lut8, last, cfg).Cmp(mustInt("23561628221579549319260381993737219696")))

	t8, err := Generate(Lut8, last, cfg)
	assert.NoError(err)
	assert.Len(t8, cfg.Word.Lut8Size())
	t9, err := Generate(Lut9, last, cfg)
	assert.NoError(err)
	assert.Len(t9, cfg.Word.Lut9Size())
}

func TestIndexOutOfRange(t *testing.T) {
	assert := require.New(t)
	cfg := smallConfig()
	_, err := Generate(Lut8, cfg.Word.TableCount, cfg)
	assert.Error(err)
	_, err = Generate(Lut8, -1, cfg)
	assert.Error(err)
}

func TestTableProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	moduli := []*big.Int{
		geometry.ModulusSmall,
		ecc.BN254.ScalarField(),
	}

	properties := gopter.NewProperties(parameters)
	properties.Property("entry j is j times the base multiplier, below M", prop.ForAll(
		func(index uint8, kindBit bool) bool {
			kind := Lut8
			if kindBit {
				kind = Lut9
			}
			for _, m := range moduli {
				cfg := smallConfig()
				cfg.Modulus = m
				i := int(index) % cfg.Word.TableCount
				base := Base(kind, i, cfg)
				j := new(big.Int)
				want := new(big.Int)
				ok := true
				err := Entries(kind, i, cfg, func(jj int, e *big.Int) error {
					want.Mul(base, j.SetInt64(int64(jj)))
					want.Mod(want, cfg.Modulus)
					if e.Cmp(want) != 0 || e.Sign() < 0 || e.Cmp(cfg.Modulus) >= 0 {
						ok = false
					}
					return nil
				})
				if err != nil || !ok {
					return false
				}
			}
			return true
		},
		gen.UInt8(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func mustInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid integer literal")
	}
	return v
}
