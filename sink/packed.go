package sink

import (
	"io"
	"math/big"

	"github.com/icza/bitio"
)

// packedEncoder writes entries back to back as entryBits-bit big-endian
// fields with no per-entry alignment; only the stream's final byte is
// zero-padded.
type packedEncoder struct {
	w         *bitio.Writer
	entryBits int
	buf       []byte
}

func newPackedEncoder(w io.Writer, entryBits int) *packedEncoder {
	return &packedEncoder{
		w:         bitio.NewWriter(w),
		entryBits: entryBits,
		buf:       make([]byte, (entryBits+7)/8),
	}
}

func (p *packedEncoder) encode(e *big.Int) error {
	// e.BitLen() <= entryBits is checked by the unit, so FillBytes cannot
	// overflow and the leading pad bits of buf[0] are zero.
	e.FillBytes(p.buf)
	buf := p.buf
	if lead := p.entryBits % 8; lead != 0 {
		p.w.TryWriteBits(uint64(buf[0]), uint8(lead))
		buf = buf[1:]
	}
	for _, b := range buf {
		p.w.TryWriteByte(b)
	}
	return p.w.TryError
}

func (p *packedEncoder) flush() error {
	return p.w.Close()
}
