package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// ErrNotWAV is returned when bytes do not form a parseable RIFF/WAVE file.
var ErrNotWAV = errors.New("not a RIFF/WAVE file")

// Info holds the container fields read from a WAV header. It describes the
// container only; the payload is never interpreted.
type Info struct {
	RIFFSize      uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
	DataOffset    int
}

// Duration returns the playback duration declared by the header.
func (i Info) Duration() time.Duration {
	if i.SampleRate == 0 || i.BlockAlign == 0 {
		return 0
	}
	frames := int64(i.DataSize) / int64(i.BlockAlign)
	return time.Duration(frames * int64(time.Second) / int64(i.SampleRate))
}

// FormatName returns a human-readable name for the format tag.
func (i Info) FormatName() string {
	switch i.AudioFormat {
	case 1:
		return "PCM"
	case 6:
		return "A-Law"
	case 7:
		return "Mu-Law"
	default:
		return fmt.Sprintf("tag %d", i.AudioFormat)
	}
}

// ReadInfo parses the RIFF header and walks the chunk list for the fmt and
// data chunks. Chunks it does not know are skipped, honoring the RIFF pad
// byte after odd-sized chunks.
func ReadInfo(data []byte) (Info, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return Info{}, ErrNotWAV
	}

	info := Info{RIFFSize: binary.LittleEndian.Uint32(data[4:8])}
	sawFmt, sawData := false, false

	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8

		switch id {
		case "fmt ":
			if size < 16 || body+16 > len(data) {
				return Info{}, fmt.Errorf("%w: fmt chunk too short", ErrNotWAV)
			}
			info.AudioFormat = binary.LittleEndian.Uint16(data[body : body+2])
			info.Channels = binary.LittleEndian.Uint16(data[body+2 : body+4])
			info.SampleRate = binary.LittleEndian.Uint32(data[body+4 : body+8])
			info.ByteRate = binary.LittleEndian.Uint32(data[body+8 : body+12])
			info.BlockAlign = binary.LittleEndian.Uint16(data[body+12 : body+14])
			info.BitsPerSample = binary.LittleEndian.Uint16(data[body+14 : body+16])
			sawFmt = true
		case "data":
			info.DataSize = uint32(size)
			info.DataOffset = body
			sawData = true
		}

		pos = body + size
		if size%2 != 0 {
			pos++
		}
	}

	if !sawFmt {
		return Info{}, fmt.Errorf("%w: missing fmt chunk", ErrNotWAV)
	}
	if !sawData {
		return Info{}, fmt.Errorf("%w: missing data chunk", ErrNotWAV)
	}
	return info, nil
}
