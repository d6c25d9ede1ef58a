package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrConfiguration is returned when container parameters cannot produce a
// valid file (zero sample rate, empty payload, unknown format).
var ErrConfiguration = errors.New("invalid container configuration")

// Fixed container parameters: all fixtures are mono 8-bit, one byte per frame.
const (
	numChannels   = 1
	bitsPerSample = 8
	blockAlign    = 1
)

// Format identifies the sample encoding carried in the data chunk.
type Format int

const (
	// FormatPCM8 is uncompressed 8-bit unsigned PCM (format tag 1).
	FormatPCM8 Format = iota
	// FormatALaw8 is ITU G.711 A-Law (format tag 6).
	FormatALaw8
)

func (f Format) String() string {
	switch f {
	case FormatPCM8:
		return "pcm8"
	case FormatALaw8:
		return "alaw"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat converts a user-facing format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pcm8", "pcm":
		return FormatPCM8, nil
	case "alaw", "alaw8", "a-law":
		return FormatALaw8, nil
	default:
		return 0, fmt.Errorf("%w: unknown format %q (want pcm8|alaw)", ErrConfiguration, s)
	}
}

// formatDesc holds the wire-level parameters that differ between formats.
// Non-PCM fmt chunks carry a trailing 2-byte extra-format-size field, making
// the chunk 18 bytes instead of 16.
type formatDesc struct {
	audioFormat uint16
	fmtSize     uint32
	hasExtra    bool
}

func (f Format) desc() (formatDesc, error) {
	switch f {
	case FormatPCM8:
		return formatDesc{audioFormat: 1, fmtSize: 16}, nil
	case FormatALaw8:
		return formatDesc{audioFormat: 6, fmtSize: 18, hasExtra: true}, nil
	default:
		return formatDesc{}, fmt.Errorf("%w: unknown format %d", ErrConfiguration, int(f))
	}
}

// HeaderLen returns the number of bytes preceding the payload for f.
func (f Format) HeaderLen() int {
	d, err := f.desc()
	if err != nil {
		return 0
	}
	return 12 + 8 + int(d.fmtSize) + 8
}

// EncodeWAV wraps an already-quantized payload in a RIFF/WAVE container for
// the given format. All declared sizes are recomputed from the actual payload
// length; nothing is hardcoded, so a caller changing duration cannot desync
// the header. Multi-byte fields are little-endian.
func EncodeWAV(sampleRate int, payload []byte, f Format) ([]byte, error) {
	d, err := f.desc()
	if err != nil {
		return nil, err
	}
	if sampleRate < 1 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrConfiguration, sampleRate)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrConfiguration)
	}

	headerLen := 12 + 8 + int(d.fmtSize) + 8
	riffSize := uint32(4 + (8 + int(d.fmtSize)) + (8 + len(payload)))
	byteRate := uint32(sampleRate) * blockAlign

	out := make([]byte, headerLen+len(payload))
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], riffSize)
	copy(out[8:12], "WAVE")

	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], d.fmtSize)
	binary.LittleEndian.PutUint16(out[20:22], d.audioFormat)
	binary.LittleEndian.PutUint16(out[22:24], numChannels)
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:32], byteRate)
	binary.LittleEndian.PutUint16(out[32:34], blockAlign)
	binary.LittleEndian.PutUint16(out[34:36], bitsPerSample)

	pos := 36
	if d.hasExtra {
		binary.LittleEndian.PutUint16(out[36:38], 0) // no extra format bytes
		pos = 38
	}

	copy(out[pos:pos+4], "data")
	binary.LittleEndian.PutUint32(out[pos+4:pos+8], uint32(len(payload)))
	copy(out[pos+8:], payload)

	return out, nil
}

// WriteFile writes data as a whole file at path. The bytes are staged into a
// temporary file in the same directory and renamed into place, so an I/O
// failure never leaves a partial file behind.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
