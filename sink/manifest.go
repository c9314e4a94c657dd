package sink

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/blang/semver/v4"

	"github.com/modsqr/precompute"
)

const manifestName = "precompute_manifest.json"

// Manifest records every committed unit of an artifact directory. It is
// rewritten atomically after each commit, so at any point in time the
// manifest only names files that are fully on disk under their final name.
type Manifest struct {
	Version string `json:"version"`

	// Fingerprint identifies the configuration the units were generated
	// from; see FileSink.Bind.
	Fingerprint string `json:"fingerprint,omitempty"`

	UpdatedAt time.Time  `json:"updatedAt"`
	Units     []UnitInfo `json:"units"`
}

// UnitInfo describes one committed artifact.
type UnitInfo struct {
	Name     string `json:"name"`
	Entries  int    `json:"entries"`
	Checksum string `json:"checksum"` // blake2b-512, hex
}

func newManifest() Manifest {
	return Manifest{Version: precompute.Version.String()}
}

func (m *Manifest) lookup(name string) (UnitInfo, bool) {
	for i := range m.Units {
		if m.Units[i].Name == name {
			return m.Units[i], true
		}
	}
	return UnitInfo{}, false
}

func (m *Manifest) add(info UnitInfo) {
	for i := range m.Units {
		if m.Units[i].Name == info.Name {
			m.Units[i] = info
			return
		}
	}
	m.Units = append(m.Units, info)
	sort.Slice(m.Units, func(i, j int) bool { return m.Units[i].Name < m.Units[j].Name })
}

func loadManifest(path string) (Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	v, err := semver.Parse(m.Version)
	if err != nil {
		return Manifest{}, fmt.Errorf("parse manifest version %q: %w", m.Version, err)
	}
	if v.Major != precompute.Version.Major {
		return Manifest{}, fmt.Errorf("manifest version %s incompatible with tool %s", v, precompute.Version)
	}
	return m, nil
}

func (m *Manifest) save(path string) error {
	m.Version = precompute.Version.String()
	m.UpdatedAt = time.Now().UTC()
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
