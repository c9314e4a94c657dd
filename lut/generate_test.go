package lut

import (
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/modsqr/precompute/geometry"
	"github.com/modsqr/precompute/sink"
)

// tinyConfig keeps table sizes small enough to generate every artifact in a
// unit test.
func tinyConfig() geometry.Config {
	cfg := smallConfig()
	cfg.Word.WordLen = 8
	cfg.Word.NonRedundantElements = 16
	cfg.Word.TableCount = 5
	return cfg
}

func generateDir(t *testing.T, cfg geometry.Config) string {
	t.Helper()
	dir := t.TempDir()
	s, err := sink.NewFileSink(dir, sink.FormatHex)
	require.NoError(t, err)
	require.NoError(t, GenerateAll(cfg, s))
	return dir
}

func TestGenerateAllArtifacts(t *testing.T) {
	assert := require.New(t)
	cfg := tinyConfig()
	dir := generateDir(t, cfg)

	for i := 0; i < cfg.Word.TableCount; i++ {
		for _, kind := range []Kind{Lut8, Lut9} {
			b, err := os.ReadFile(filepath.Join(dir, FileName(kind, i)))
			assert.NoError(err)
			lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
			// two banked copies of the table body
			assert.Len(lines, 2*Size(kind, cfg))
			for _, line := range lines {
				assert.Len(line, cfg.Word.LutWidth()/4)
			}
			// the halves are identical
			half := len(lines) / 2
			assert.Equal(lines[:half], lines[half:])
		}
	}

	// no temporary files left behind
	entries, err := os.ReadDir(dir)
	assert.NoError(err)
	for _, e := range entries {
		assert.False(strings.HasSuffix(e.Name(), ".tmp"), e.Name())
	}
}

func TestGenerateAllDeterministic(t *testing.T) {
	assert := require.New(t)
	cfg := tinyConfig()
	dir1 := generateDir(t, cfg)
	dir2 := generateDir(t, cfg)

	m1 := readManifest(t, dir1)
	m2 := readManifest(t, dir2)
	if diff := cmp.Diff(m1.Units, m2.Units); diff != "" {
		t.Fatalf("manifests differ (-run1 +run2):\n%s", diff)
	}

	for _, u := range m1.Units {
		b1, err := os.ReadFile(filepath.Join(dir1, u.Name))
		assert.NoError(err)
		b2, err := os.ReadFile(filepath.Join(dir2, u.Name))
		assert.NoError(err)
		assert.Equal(b1, b2, u.Name)
	}
}

func TestGenerateAllResume(t *testing.T) {
	assert := require.New(t)
	cfg := tinyConfig()
	dir := generateDir(t, cfg)

	// drop one committed artifact; a rerun must restore it and leave the
	// rest untouched
	victim := FileName(Lut9, 2)
	witness := FileName(Lut8, 0)
	witnessBytes, err := os.ReadFile(filepath.Join(dir, witness))
	assert.NoError(err)
	assert.NoError(os.Remove(filepath.Join(dir, victim)))

	s, err := sink.NewFileSink(dir, sink.FormatHex)
	assert.NoError(err)
	assert.NoError(GenerateAll(cfg, s))

	restored, err := os.ReadFile(filepath.Join(dir, victim))
	assert.NoError(err)
	assert.NotEmpty(restored)
	after, err := os.ReadFile(filepath.Join(dir, witness))
	assert.NoError(err)
	assert.Equal(witnessBytes, after)
}

func TestGenerateAllRerunNewModulus(t *testing.T) {
	assert := require.New(t)
	cfg := tinyConfig()
	dir := generateDir(t, cfg)

	victim := FileName(Lut8, 0)
	stale, err := os.ReadFile(filepath.Join(dir, victim))
	assert.NoError(err)

	// rerun into the same directory with a different modulus; every table
	// must be overwritten, not resumed
	cfg2 := tinyConfig()
	cfg2.Modulus = big.NewInt(101)
	s, err := sink.NewFileSink(dir, sink.FormatHex)
	assert.NoError(err)
	assert.NoError(GenerateAll(cfg2, s))

	after, err := os.ReadFile(filepath.Join(dir, victim))
	assert.NoError(err)
	assert.NotEqual(stale, after)

	fresh, err := os.ReadFile(filepath.Join(generateDir(t, cfg2), victim))
	assert.NoError(err)
	assert.Equal(fresh, after)
}

func TestGenerateAllPacked(t *testing.T) {
	assert := require.New(t)
	cfg := tinyConfig()
	dir := t.TempDir()
	s, err := sink.NewFileSink(dir, sink.FormatPacked)
	assert.NoError(err)
	assert.NoError(GenerateAll(cfg, s))

	entryBytes := cfg.Word.LutWidth() / 8
	buf := make([]byte, entryBytes)
	for i := 0; i < cfg.Word.TableCount; i++ {
		for _, kind := range []Kind{Lut8, Lut9} {
			table, err := Generate(kind, i, cfg)
			assert.NoError(err)
			var want []byte
			for c := 0; c < 2; c++ {
				for _, e := range table {
					e.FillBytes(buf)
					want = append(want, buf...)
				}
			}
			got, err := os.ReadFile(filepath.Join(dir, FileName(kind, i)))
			assert.NoError(err)
			assert.Equal(want, got, FileName(kind, i))
		}
	}
}

func TestGenerateAllRejectsInvalidConfig(t *testing.T) {
	cfg := tinyConfig()
	cfg.Word.WordLen = 7
	s, err := sink.NewFileSink(t.TempDir(), sink.FormatHex)
	require.NoError(t, err)
	err = GenerateAll(cfg, s)
	require.Error(t, err)
	require.Contains(t, err.Error(), "wordLen")
}

func readManifest(t *testing.T, dir string) sink.Manifest {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, "precompute_manifest.json"))
	require.NoError(t, err)
	var m sink.Manifest
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}
