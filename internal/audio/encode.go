package audio

import (
	"fmt"

	goaudio "github.com/go-audio/audio"
)

// EncodeBuffer quantizes normalized float samples and wraps the result in a
// WAV container for the given format. For PCM8 the samples are quantized to
// offset-binary bytes directly; for A-Law they pass through 16-bit signed
// PCM first and are then compressed one code per sample.
func EncodeBuffer(buf *goaudio.Float32Buffer, f Format) ([]byte, error) {
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrConfiguration)
	}
	if buf.Format == nil {
		return nil, fmt.Errorf("%w: buffer has no format", ErrConfiguration)
	}
	if buf.Format.NumChannels != numChannels {
		return nil, fmt.Errorf("%w: %d channels, want mono", ErrConfiguration, buf.Format.NumChannels)
	}

	var payload []byte
	switch f {
	case FormatPCM8:
		payload = QuantizeUint8All(nil, buf.Data)
	case FormatALaw8:
		pcm := QuantizeInt16All(nil, buf.Data)
		payload = ALawEncodeAll(nil, pcm)
	default:
		return nil, fmt.Errorf("%w: unknown format %d", ErrConfiguration, int(f))
	}

	return EncodeWAV(buf.Format.SampleRate, payload, f)
}
