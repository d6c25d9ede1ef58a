// Package fixture defines the named test-audio files the CLI emits and
// renders presets on demand for the HTTP service.
package fixture

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/example/go-tonegen/internal/audio"
	"github.com/example/go-tonegen/internal/synth"
)

// Fixture is one named output file in the device test set.
type Fixture struct {
	Name    string
	Tone    synth.ToneSpec
	Format  audio.Format
	Seconds float64
}

// DefaultSet returns the fixed fixture files, both tones in both formats.
// The set and its parameters are stable so regenerated files are
// byte-identical run to run.
func DefaultSet() []Fixture {
	return []Fixture{
		{Name: "clean_8bit.wav", Tone: synth.CleanTone(), Format: audio.FormatPCM8, Seconds: 3},
		{Name: "speech_clean_8bit.wav", Tone: synth.SpeechLike(), Format: audio.FormatPCM8, Seconds: 3},
		{Name: "clean_alaw.wav", Tone: synth.CleanTone(), Format: audio.FormatALaw8, Seconds: 3},
		{Name: "speech_clean_alaw.wav", Tone: synth.SpeechLike(), Format: audio.FormatALaw8, Seconds: 3},
	}
}

// Build renders and encodes one fixture at sampleRate.
func Build(f Fixture, sampleRate int) ([]byte, error) {
	dur := time.Duration(f.Seconds * float64(time.Second))
	buf := synth.Render(f.Tone, sampleRate, dur)
	data, err := audio.EncodeBuffer(buf, f.Format)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", f.Name, err)
	}
	return data, nil
}

// WriteAll builds the default set into dir. report, when non-nil, is called
// once per written file with its name and size.
func WriteAll(dir string, sampleRate int, report func(name string, size int)) error {
	for _, f := range DefaultSet() {
		data, err := Build(f, sampleRate)
		if err != nil {
			return err
		}
		if err := audio.WriteFile(filepath.Join(dir, f.Name), data); err != nil {
			return err
		}
		if report != nil {
			report(f.Name, len(data))
		}
	}
	return nil
}

// Generator renders presets on demand. Rendering is pure and stateless, so a
// single Generator may serve concurrent requests without coordination.
type Generator struct {
	SampleRate int
}

// Generate renders the named preset and encodes it in the requested format.
// The work is CPU-bound and completes in time proportional to the sample
// count; ctx is only consulted before rendering starts.
func (g Generator) Generate(ctx context.Context, preset string, format audio.Format, dur time.Duration) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	spec, err := synth.Preset(preset)
	if err != nil {
		return nil, err
	}
	buf := synth.Render(spec, g.SampleRate, dur)
	return audio.EncodeBuffer(buf, format)
}
