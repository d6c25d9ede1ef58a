package audio

import "testing"

func TestQuantizeUint8(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  byte
	}{
		{"silence maps to midpoint", 0.0, 128},
		{"full positive", 1.0, 255},
		{"full negative", -1.0, 0},
		{"half positive", 0.5, 191},
		{"half negative", -0.5, 64},
		{"clamp over max", 1.5, 255},
		{"clamp under min", -2.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuantizeUint8(tt.input)
			if got != tt.want {
				t.Fatalf("QuantizeUint8(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestQuantizeInt16(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{"zero", 0.0, 0},
		{"full positive", 1.0, 32767},
		{"full negative", -1.0, -32767},
		{"half positive", 0.5, 16384},
		{"half negative", -0.5, -16384},
		{"clamp over max", 2.0, 32767},
		{"clamp under min", -2.0, -32767},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuantizeInt16(tt.input)
			if got != tt.want {
				t.Fatalf("QuantizeInt16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestQuantizeBatchesMatchScalar(t *testing.T) {
	samples := []float32{0, 0.25, -0.25, 1, -1, 1.5, -1.5}

	bytes8 := QuantizeUint8All(nil, samples)
	pcm16 := QuantizeInt16All(nil, samples)
	for i, s := range samples {
		if bytes8[i] != QuantizeUint8(s) {
			t.Errorf("uint8 batch sample %d: got %d, want %d", i, bytes8[i], QuantizeUint8(s))
		}
		if pcm16[i] != QuantizeInt16(s) {
			t.Errorf("int16 batch sample %d: got %d, want %d", i, pcm16[i], QuantizeInt16(s))
		}
	}
}
