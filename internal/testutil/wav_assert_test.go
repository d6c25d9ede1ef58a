package testutil

import (
	"testing"

	"github.com/example/go-tonegen/internal/audio"
)

func TestAssertValidWAVAcceptsBothFormats(t *testing.T) {
	payload := make([]byte, 100)

	pcm, err := audio.EncodeWAV(8000, payload, audio.FormatPCM8)
	if err != nil {
		t.Fatalf("encode pcm8: %v", err)
	}
	AssertValidWAV(t, pcm, FormatTagPCM, 8000)

	alaw, err := audio.EncodeWAV(8000, payload, audio.FormatALaw8)
	if err != nil {
		t.Fatalf("encode alaw: %v", err)
	}
	AssertValidWAV(t, alaw, FormatTagALaw, 8000)
}

func TestFindDataChunk(t *testing.T) {
	data, err := audio.EncodeWAV(8000, []byte{1, 2, 3}, audio.FormatALaw8)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	offset, size, err := FindDataChunk(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if offset != 46 {
		t.Errorf("payload offset = %d, want 46", offset)
	}
	if size != 3 {
		t.Errorf("data size = %d, want 3", size)
	}

	if _, _, err := FindDataChunk(data[:20]); err == nil {
		t.Error("expected error for truncated file")
	}
}
