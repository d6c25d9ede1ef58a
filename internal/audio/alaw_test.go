package audio

import (
	"math"
	"testing"
)

func TestALawEncodeSegmentBoundaries(t *testing.T) {
	tests := []struct {
		name string
		in   int16
		want byte
	}{
		{"zero", 0, 0x00},
		{"segment 0 top mantissa", 253, 0x0F},
		{"segment 0 mid", 16, 0x01},
		{"segment 1 lower bound", 254, 0x1F},
		{"segment 1 upper", 508, 0x1F},
		{"segment 2 lower bound", 509, 0x2F},
		{"segment 2 upper", 1018, 0x2F},
		{"segment 3 lower bound", 1019, 0x3F},
		{"segment 4 lower bound", 2039, 0x4F},
		{"segment 5 lower bound", 4079, 0x5F},
		{"segment 6 lower bound", 8159, 0x6F},
		{"segment 7 lower bound", 16318, 0x7F},
		{"just below clip", 32634, 0x7F},
		{"clip threshold", 32635, 0x7F},
		{"max positive", math.MaxInt16, 0x7F},
		{"min negative", math.MinInt16, 0xFF},
		{"negative one", -1, 0x80},
		{"negative segment 1", -254, 0x9F},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ALawEncode(tt.in)
			if got != tt.want {
				t.Fatalf("ALawEncode(%d) = %#02x, want %#02x", tt.in, got, tt.want)
			}
		})
	}
}

// Every int16 input must produce a code; the loop doubles as a crash check
// over the whole domain.
func TestALawEncodeTotal(t *testing.T) {
	for s := math.MinInt16; s <= math.MaxInt16; s++ {
		_ = ALawEncode(int16(s))
	}
}

func TestALawEncodeSignSymmetry(t *testing.T) {
	for x := int16(1); x < alawClip; x++ {
		pos := ALawEncode(x)
		neg := ALawEncode(-x)
		if neg != pos^0x80 {
			t.Fatalf("ALawEncode(-%d) = %#02x, want %#02x", x, neg, pos^0x80)
		}
	}
}

func TestALawEncodeMonotonic(t *testing.T) {
	prev := ALawEncode(0)
	for x := int16(1); x < math.MaxInt16; x++ {
		cur := ALawEncode(x)
		if cur < prev {
			t.Fatalf("ALawEncode(%d) = %#02x below ALawEncode(%d) = %#02x", x, cur, x-1, prev)
		}
		prev = cur
	}
}

func TestALawEncodeAll(t *testing.T) {
	pcm := []int16{0, 100, -100, 32767, -32768}
	want := make([]byte, len(pcm))
	for i, s := range pcm {
		want[i] = ALawEncode(s)
	}

	t.Run("alloc", func(t *testing.T) {
		got := ALawEncodeAll(nil, pcm)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("sample %d: got %#02x, want %#02x", i, got[i], want[i])
			}
		}
	})

	t.Run("reuse", func(t *testing.T) {
		dst := make([]byte, 64)
		got := ALawEncodeAll(dst, pcm)
		if len(got) != len(pcm) {
			t.Fatalf("got %d codes, want %d", len(got), len(pcm))
		}
		if &got[0] != &dst[0] {
			t.Fatal("expected dst to be reused")
		}
	})
}

func BenchmarkALawEncodeAll(b *testing.B) {
	pcm := make([]int16, 8000)
	for i := range pcm {
		pcm[i] = int16(i*7 - 16000)
	}
	dst := make([]byte, len(pcm))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ALawEncodeAll(dst, pcm)
	}
}
