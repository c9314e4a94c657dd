package sink

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// ExportCBOR serializes v with canonical CBOR encoding and writes it
// atomically to path. Used for the adder-term triple sets, whose runtime
// values are selector-dependent and therefore shipped to the circuit
// toolchain as structured data rather than baked sums.
func ExportCBOR(path string, v interface{}) error {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return err
	}
	b, err := mode.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
