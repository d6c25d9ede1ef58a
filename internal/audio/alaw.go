package audio

// alawSegments holds the lower magnitude bound of each of the eight A-Law
// segments. Segment selection picks the highest index whose bound the
// magnitude reaches, so the bounds form a priority cascade rather than
// disjoint ranges.
var alawSegments = [8]int32{0, 254, 509, 1019, 2039, 4079, 8159, 16318}

// alawClip is the magnitude at which encoding saturates to the top code.
const alawClip = 32635

// ALawEncode compresses one 16-bit linear PCM sample to an 8-bit A-Law code
// made of a sign bit, a 3-bit segment index and a 4-bit mantissa. It is
// defined for every int16 input and never fails.
func ALawEncode(sample int16) byte {
	var sign byte
	m := int32(sample)
	if m < 0 {
		sign = 0x80
		m = -m
	}
	if m >= alawClip {
		return sign | 0x7F
	}

	seg := 7
	for m < alawSegments[seg] {
		seg--
	}

	var mantissa byte
	if seg == 0 {
		// The shift alone bounds the value to 4 bits in the lowest
		// segment; no mask is applied here.
		mantissa = byte(m >> 4)
	} else {
		mantissa = byte(m>>(uint(seg)+3)) & 0x0F
	}

	return sign | byte(seg)<<4 | mantissa
}

// ALawEncodeAll compresses a block of 16-bit PCM samples into dst and returns
// it. dst is reused when large enough, otherwise a new slice is allocated.
func ALawEncodeAll(dst []byte, pcm []int16) []byte {
	if cap(dst) < len(pcm) {
		dst = make([]byte, len(pcm))
	} else {
		dst = dst[:len(pcm)]
	}
	for i, s := range pcm {
		dst[i] = ALawEncode(s)
	}
	return dst
}
