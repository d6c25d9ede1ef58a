// Package testutil provides byte-level WAV assertions shared by tests. The
// checks parse the header independently of internal/audio so the container
// code is not verifying itself.
package testutil

import (
	"encoding/binary"
	"errors"
	"testing"
)

// Format tags from the multimedia format registry used by the fixtures.
const (
	FormatTagPCM  = 1
	FormatTagALaw = 6
)

// AssertValidWAV checks that data is a well-formed mono 8-bit WAV with the
// given format tag and sample rate, and that every declared size matches the
// actual byte layout.
func AssertValidWAV(tb testing.TB, data []byte, formatTag uint16, sampleRate uint32) {
	tb.Helper()

	if len(data) < 44 {
		tb.Fatalf("WAV data too short: %d bytes", len(data))
	}

	if string(data[0:4]) != "RIFF" {
		tb.Fatalf("WAV: missing RIFF header (got %q)", string(data[0:4]))
	}
	if string(data[8:12]) != "WAVE" {
		tb.Fatalf("WAV: missing WAVE marker (got %q)", string(data[8:12]))
	}
	if string(data[12:16]) != "fmt " {
		tb.Fatalf("WAV: missing fmt chunk (got %q)", string(data[12:16]))
	}

	if riffSize := binary.LittleEndian.Uint32(data[4:8]); int(riffSize) != len(data)-8 {
		tb.Fatalf("WAV: declared RIFF size %d, file has %d bytes after the size field", riffSize, len(data)-8)
	}

	fmtSize := binary.LittleEndian.Uint32(data[16:20])
	wantFmtSize := uint32(16)
	if formatTag != FormatTagPCM {
		wantFmtSize = 18
	}
	if fmtSize != wantFmtSize {
		tb.Fatalf("WAV: fmt chunk size %d, want %d for format tag %d", fmtSize, wantFmtSize, formatTag)
	}

	if got := binary.LittleEndian.Uint16(data[20:22]); got != formatTag {
		tb.Fatalf("WAV: format tag %d, want %d", got, formatTag)
	}
	if got := binary.LittleEndian.Uint16(data[22:24]); got != 1 {
		tb.Fatalf("WAV: expected mono (1 channel), got %d", got)
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != sampleRate {
		tb.Fatalf("WAV: sample rate %d, want %d", got, sampleRate)
	}
	if got := binary.LittleEndian.Uint32(data[28:32]); got != sampleRate {
		tb.Fatalf("WAV: byte rate %d, want %d for one byte per frame", got, sampleRate)
	}
	if got := binary.LittleEndian.Uint16(data[32:34]); got != 1 {
		tb.Fatalf("WAV: block align %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint16(data[34:36]); got != 8 {
		tb.Fatalf("WAV: expected 8-bit depth, got %d", got)
	}

	offset, size, err := FindDataChunk(data)
	if err != nil {
		tb.Fatalf("WAV: %v", err)
	}
	if int(size) != len(data)-offset {
		tb.Fatalf("WAV: declared data size %d, payload has %d bytes", size, len(data)-offset)
	}
	if size == 0 {
		tb.Fatal("WAV: data chunk contains zero samples")
	}
}

// FindDataChunk walks the WAV chunk list for the "data" sub-chunk and
// returns its payload offset and declared size.
func FindDataChunk(data []byte) (int, uint32, error) {
	// Start after the 12-byte RIFF/WAVE header.
	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		if id == "data" {
			return offset + 8, size, nil
		}

		offset += 8 + int(size)
		// Pad to even boundary.
		if size%2 != 0 {
			offset++
		}
	}

	return 0, 0, errors.New("data chunk not found in WAV")
}
