package audio

import "math"

// QuantizeUint8 maps a normalized sample in [-1, 1] to offset-binary 8-bit
// PCM. The +0.5 added before truncation rounds to the nearest code; dropping
// it shifts the decoded midpoint and produces audible static on playback.
// Out-of-range input is clamped.
func QuantizeUint8(x float32) byte {
	v := (float64(x)+1.0)*127.5 + 0.5
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return byte(v)
}

// QuantizeInt16 maps a normalized sample in [-1, 1] to 16-bit signed PCM,
// rounded and symmetric around zero. Out-of-range input is clamped.
func QuantizeInt16(x float32) int16 {
	f := float64(x)
	if f > 1 {
		f = 1
	} else if f < -1 {
		f = -1
	}
	return int16(math.Round(f * 32767))
}

// QuantizeUint8All converts a block of samples into dst and returns it,
// reusing dst when large enough.
func QuantizeUint8All(dst []byte, samples []float32) []byte {
	if cap(dst) < len(samples) {
		dst = make([]byte, len(samples))
	} else {
		dst = dst[:len(samples)]
	}
	for i, s := range samples {
		dst[i] = QuantizeUint8(s)
	}
	return dst
}

// QuantizeInt16All converts a block of samples into dst and returns it,
// reusing dst when large enough.
func QuantizeInt16All(dst []int16, samples []float32) []int16 {
	if cap(dst) < len(samples) {
		dst = make([]int16, len(samples))
	} else {
		dst = dst[:len(samples)]
	}
	for i, s := range samples {
		dst[i] = QuantizeInt16(s)
	}
	return dst
}
