// Package sink persists generated constant tables. A unit is one named
// artifact (one table file); it is written to a temporary location and
// renamed into place on commit, so an interrupted run never leaves a
// partially written file under its final name. Committed units are recorded
// in a manifest with a blake2b checksum, letting reruns skip work that is
// already on disk and letting consumers detect truncated or stale outputs.
package sink

import (
	"bufio"
	"fmt"
	"hash"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/modsqr/precompute/logger"
)

// Format selects the on-disk encoding of table entries.
type Format uint8

const (
	// FormatHex writes one zero-padded lowercase hex line per entry, the
	// format the reference toolchain consumes.
	FormatHex Format = iota
	// FormatPacked writes entries bit-packed back to back, entryBits bits
	// each, for memory-initialization consumers.
	FormatPacked
)

// ParseFormat parses a format name from configuration.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "hex":
		return FormatHex, nil
	case "packed":
		return FormatPacked, nil
	default:
		return 0, fmt.Errorf("unknown output format %q", s)
	}
}

// Sink creates named output units. Each unit is written by exactly one
// producer.
type Sink interface {
	// Create opens a new unit; entryBits is the fixed serialized width of
	// every entry written to it.
	Create(name string, entryBits int) (Unit, error)
}

// Unit is an ordered entry sink. Entries appear in the artifact in the
// order they are written. Commit makes the unit visible atomically; Abort
// discards it.
type Unit interface {
	WriteEntry(e *big.Int) error
	Commit() error
	Abort() error
}

// FileSink writes units as files in a directory and maintains the
// directory's manifest.
type FileSink struct {
	dir    string
	format Format

	mu       sync.Mutex
	manifest Manifest
}

// NewFileSink opens (creating if needed) dir as an artifact directory. An
// existing manifest written by the same major version is loaded so completed
// units can be skipped; a manifest from another major version is discarded
// and the run starts from scratch.
func NewFileSink(dir string, format Format) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	s := &FileSink{dir: dir, format: format}
	m, err := loadManifest(filepath.Join(dir, manifestName))
	switch {
	case err == nil:
		s.manifest = m
	case os.IsNotExist(err):
		s.manifest = newManifest()
	default:
		log := logger.Logger()
		log.Warn().Err(err).Str("dir", dir).Msg("discarding unusable manifest")
		s.manifest = newManifest()
	}
	return s, nil
}

// Bind associates the artifact directory with a configuration fingerprint.
// A manifest recorded under a different fingerprint is discarded, the same
// way a manifest from another major version is, so reruns never resume
// units generated from a different modulus or geometry.
func (s *FileSink) Bind(fingerprint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.manifest.Fingerprint != "" && s.manifest.Fingerprint != fingerprint {
		log := logger.Logger()
		log.Warn().Str("dir", s.dir).Msg("artifact directory holds units from a different configuration, regenerating")
		s.manifest = newManifest()
	}
	s.manifest.Fingerprint = fingerprint
}

// Completed reports whether a unit was committed by a previous run and its
// file still matches the recorded checksum. Truncated or modified files are
// treated as absent and regenerated.
func (s *FileSink) Completed(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, ok := s.manifest.lookup(name)
	if !ok {
		return false
	}
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return false
	}
	sum := blake2b.Sum512(b)
	return fmt.Sprintf("%x", sum[:]) == info.Checksum
}

// Create opens a new unit file <dir>/<name>.tmp; Commit renames it to
// <dir>/<name> and records it in the manifest.
func (s *FileSink) Create(name string, entryBits int) (Unit, error) {
	if entryBits <= 0 {
		return nil, fmt.Errorf("entry width must be positive, got %d", entryBits)
	}
	tmp := filepath.Join(s.dir, name+".tmp")
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", tmp, err)
	}
	h, err := blake2b.New512(nil)
	if err != nil {
		f.Close()
		return nil, err
	}
	u := &fileUnit{
		sink:      s,
		name:      name,
		tmp:       tmp,
		f:         f,
		hash:      h,
		entryBits: entryBits,
	}
	w := io.MultiWriter(f, h)
	if s.format == FormatPacked {
		u.enc = newPackedEncoder(w, entryBits)
	} else {
		u.enc = newHexEncoder(w, entryBits)
	}
	return u, nil
}

// entryEncoder serializes entries of a fixed bit width to a writer.
type entryEncoder interface {
	encode(e *big.Int) error
	flush() error
}

type fileUnit struct {
	sink      *FileSink
	name, tmp string
	f         *os.File
	hash      hash.Hash
	enc       entryEncoder
	entryBits int
	entries   int
	done      bool
}

func (u *fileUnit) WriteEntry(e *big.Int) error {
	if u.done {
		return fmt.Errorf("unit %s already closed", u.name)
	}
	if e.Sign() < 0 || e.BitLen() > u.entryBits {
		return fmt.Errorf("unit %s: entry %d does not fit in %d bits", u.name, u.entries, u.entryBits)
	}
	if err := u.enc.encode(e); err != nil {
		return fmt.Errorf("unit %s: %w", u.name, err)
	}
	u.entries++
	return nil
}

func (u *fileUnit) Commit() error {
	if u.done {
		return fmt.Errorf("unit %s already closed", u.name)
	}
	u.done = true
	if err := u.enc.flush(); err != nil {
		u.f.Close()
		return fmt.Errorf("unit %s: %w", u.name, err)
	}
	if err := u.f.Close(); err != nil {
		return fmt.Errorf("unit %s: %w", u.name, err)
	}
	if err := os.Rename(u.tmp, filepath.Join(u.sink.dir, u.name)); err != nil {
		return fmt.Errorf("unit %s: %w", u.name, err)
	}
	return u.sink.record(UnitInfo{
		Name:     u.name,
		Entries:  u.entries,
		Checksum: fmt.Sprintf("%x", u.hash.Sum(nil)),
	})
}

func (u *fileUnit) Abort() error {
	if u.done {
		return nil
	}
	u.done = true
	u.f.Close()
	return os.Remove(u.tmp)
}

func (s *FileSink) record(info UnitInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifest.add(info)
	return s.manifest.save(filepath.Join(s.dir, manifestName))
}

type hexEncoder struct {
	w      *bufio.Writer
	digits int
}

func newHexEncoder(w io.Writer, entryBits int) *hexEncoder {
	return &hexEncoder{w: bufio.NewWriter(w), digits: (entryBits + 3) / 4}
}

func (h *hexEncoder) encode(e *big.Int) error {
	s := e.Text(16)
	for i := len(s); i < h.digits; i++ {
		if err := h.w.WriteByte('0'); err != nil {
			return err
		}
	}
	if _, err := h.w.WriteString(s); err != nil {
		return err
	}
	return h.w.WriteByte('\n')
}

func (h *hexEncoder) flush() error { return h.w.Flush() }
