package geometry

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDerivedParameters(t *testing.T) {
	assert := require.New(t)
	cfg := DefaultConfig()

	assert.Equal(8, cfg.Word.LookUpWidth())
	assert.Equal(256, cfg.Word.Lut8Size())
	assert.Equal(512, cfg.Word.Lut9Size())
	assert.Equal(1024, cfg.Word.LutWidth())
	assert.Equal(64, cfg.Word.SegmentElements())

	assert.Equal(64, cfg.Radix.NumSymbols())
	assert.Equal(35, cfg.Radix.SymbolBits())
	assert.Equal(34, cfg.Radix.SignBitPos())
	assert.Equal(1056, cfg.Radix.ModBitWidth())
	assert.Equal(2240, cfg.Radix.TotalBits())
	assert.Equal(1118, cfg.Radix.WindowStart())

	assert.Equal(190, cfg.MinTermUpperBound())
	assert.Equal(1024, cfg.Modulus.BitLen())
	assert.NoError(cfg.Validate())
}

func TestValidate(t *testing.T) {
	mutate := func(f func(*Config)) Config {
		cfg := DefaultConfig()
		f(&cfg)
		return cfg
	}

	cases := []struct {
		name string
		cfg  Config
		want string // named parameter expected in the error
	}{
		{"nil modulus", mutate(func(c *Config) { c.Modulus = nil }), "modulus"},
		{"zero modulus", mutate(func(c *Config) { c.Modulus = new(big.Int) }), "modulus"},
		{"even modulus", mutate(func(c *Config) { c.Modulus = big.NewInt(42) }), "modulus"},
		{"negative modulus", mutate(func(c *Config) { c.Modulus = big.NewInt(-7) }), "modulus"},
		{"odd word length", mutate(func(c *Config) { c.Word.WordLen = 15 }), "wordLen"},
		{"zero word length", mutate(func(c *Config) { c.Word.WordLen = 0 }), "wordLen"},
		{"zero nonredundant", mutate(func(c *Config) { c.Word.NonRedundantElements = 0 }), "nonRedundantElements"},
		{"negative redundant", mutate(func(c *Config) { c.Word.RedundantElements = -1 }), "redundantElements"},
		{"zero segments", mutate(func(c *Config) { c.Word.NumSegments = 0 }), "numSegments"},
		{"segments do not divide", mutate(func(c *Config) { c.Word.NumSegments = 7 }), "numSegments"},
		{"zero tables", mutate(func(c *Config) { c.Word.TableCount = 0 }), "tableCount"},
		{"negative log symbols", mutate(func(c *Config) { c.Radix.LogNumSymbols = -1 }), "logNumSymbols"},
		{"zero log radix", mutate(func(c *Config) { c.Radix.LogRadix = 0 }), "logRadix"},
		{"bound drops positions", mutate(func(c *Config) { c.TermUpperBound = 100 }), "termUpperBound"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestFingerprint(t *testing.T) {
	assert := require.New(t)
	base := DefaultConfig()
	assert.Equal(base.Fingerprint(), DefaultConfig().Fingerprint())

	other := DefaultConfig()
	other.Modulus = new(big.Int).Set(ModulusSmall)
	assert.NotEqual(base.Fingerprint(), other.Fingerprint())

	other = DefaultConfig()
	other.Word.TableCount = 17
	assert.NotEqual(base.Fingerprint(), other.Fingerprint())

	// radix geometry does not feed the table artifacts
	other = DefaultConfig()
	other.Radix.LogRadix = 11
	assert.Equal(base.Fingerprint(), other.Fingerprint())
}

func TestMinTermUpperBoundIsAdmissible(t *testing.T) {
	assert := require.New(t)
	cfg := DefaultConfig()
	cfg.TermUpperBound = cfg.MinTermUpperBound()
	assert.NoError(cfg.Validate())

	// the last in-range window must still reach the top of the representation
	lastStart := (cfg.TermUpperBound-1-3)*6 + cfg.Radix.WindowStart()
	assert.Less(lastStart, cfg.Radix.TotalBits())
	assert.GreaterOrEqual(lastStart+6, cfg.Radix.TotalBits())
}
