package assets

import (
	"encoding/binary"
	"fmt"
	"os"
)

// ddsHeaderSize is the number of leading bytes a DDS file needs for the
// fields this analyzer checks, per spec §6: magic `DDS ` at offset 0,
// height at offset 12, width at offset 16, all little-endian.
const ddsHeaderSize = 128

// ImageHeader is the subset of a DDS texture header the catalog's gfx item
// kinds cross-check against declared in-script dimensions.
type ImageHeader struct {
	Width  uint32
	Height uint32
}

// ReadDDSHeader reads and validates the first 128 bytes of a DDS file. It
// returns an error (not a diagnostic — this is analyzer-own I/O per spec
// §7's ReadError/ImageFormat channel) on a short read or a missing magic.
func ReadDDSHeader(path string) (ImageHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImageHeader{}, err
	}
	defer f.Close()

	buf := make([]byte, ddsHeaderSize)
	n, err := f.Read(buf)
	if err != nil {
		return ImageHeader{}, err
	}
	if n < ddsHeaderSize {
		return ImageHeader{}, fmt.Errorf("dds header truncated: got %d bytes, want %d", n, ddsHeaderSize)
	}
	if string(buf[0:4]) != "DDS " {
		return ImageHeader{}, fmt.Errorf("not a DDS file: bad magic %q", buf[0:4])
	}

	height := binary.LittleEndian.Uint32(buf[12:16])
	width := binary.LittleEndian.Uint32(buf[16:20])
	return ImageHeader{Width: width, Height: height}, nil
}
