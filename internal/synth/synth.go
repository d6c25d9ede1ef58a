// Package synth renders deterministic test tones as normalized float
// samples. It supplies the signal material for the codec and container
// layer; the bit-level contracts live in internal/audio.
package synth

import (
	"fmt"
	"math"
	"sort"
	"time"

	goaudio "github.com/go-audio/audio"
)

// Partial is one sine component of a tone.
type Partial struct {
	Freq float64 // Hz
	Amp  float64 // relative amplitude
}

// Vibrato modulates overall amplitude with a slow sine. Depth 0 disables it.
type Vibrato struct {
	Rate  float64 // Hz
	Depth float64
}

// Envelope shapes loudness over time the way short speech bursts do: a slow
// sine loudness cycle with an exponential decay restarting every second.
type Envelope struct {
	Rate  float64 // Hz of the loudness cycle
	Decay float64 // exponent applied to the in-second time
}

// ToneSpec describes a deterministic test tone. Rendering the same spec at
// the same rate and duration always yields identical samples.
type ToneSpec struct {
	Name     string
	Partials []Partial
	Vibrato  Vibrato
	Envelope *Envelope
	FadeIn   time.Duration
	FadeOut  time.Duration
	Peak     float64 // target peak amplitude after normalization, 0 skips
}

// CleanTone is a smooth harmonic stack on A3 with gentle vibrato, tuned to
// play without clicks or static on narrowband device output.
func CleanTone() ToneSpec {
	return ToneSpec{
		Name: "clean",
		Partials: []Partial{
			{Freq: 220, Amp: 0.6},
			{Freq: 440, Amp: 0.3},
			{Freq: 660, Amp: 0.15},
			{Freq: 880, Amp: 0.075},
		},
		Vibrato: Vibrato{Rate: 4, Depth: 0.1},
		FadeIn:  100 * time.Millisecond,
		FadeOut: 100 * time.Millisecond,
		Peak:    0.8,
	}
}

// SpeechLike approximates voiced speech: a low fundamental plus the first
// three formant bands, pulsed by a decaying loudness envelope.
func SpeechLike() ToneSpec {
	return ToneSpec{
		Name: "speech",
		Partials: []Partial{
			{Freq: 150, Amp: 0.4},
			{Freq: 800, Amp: 0.3},
			{Freq: 1200, Amp: 0.2},
			{Freq: 2400, Amp: 0.1},
		},
		Envelope: &Envelope{Rate: 3, Decay: 0.5},
		FadeIn:   50 * time.Millisecond,
		FadeOut:  50 * time.Millisecond,
		Peak:     0.75,
	}
}

// Sine returns a single-partial tone at freq with short anti-click fades.
func Sine(freq float64) ToneSpec {
	return ToneSpec{
		Name:     "sine",
		Partials: []Partial{{Freq: freq, Amp: 1}},
		FadeIn:   10 * time.Millisecond,
		FadeOut:  10 * time.Millisecond,
		Peak:     0.8,
	}
}

var presets = map[string]func() ToneSpec{
	"clean":  CleanTone,
	"speech": SpeechLike,
}

// Preset returns the named built-in tone.
func Preset(name string) (ToneSpec, error) {
	fn, ok := presets[name]
	if !ok {
		return ToneSpec{}, fmt.Errorf("unknown preset %q (want %v)", name, PresetNames())
	}
	return fn(), nil
}

// PresetNames lists the built-in tone names in stable order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render synthesizes spec into a mono normalized float buffer at sampleRate.
func Render(spec ToneSpec, sampleRate int, dur time.Duration) *goaudio.Float32Buffer {
	n := int(float64(sampleRate) * dur.Seconds())
	if n < 0 {
		n = 0
	}
	data := make([]float32, n)

	for i := range data {
		t := float64(i) / float64(sampleRate)
		var v float64
		for _, p := range spec.Partials {
			v += p.Amp * math.Sin(2*math.Pi*p.Freq*t)
		}
		if spec.Vibrato.Depth > 0 {
			v *= 1 + spec.Vibrato.Depth*math.Sin(2*math.Pi*spec.Vibrato.Rate*t)
		}
		if e := spec.Envelope; e != nil {
			v *= 0.5 + 0.5*math.Sin(2*math.Pi*e.Rate*t)*math.Exp(-e.Decay*math.Mod(t, 1))
		}
		data[i] = float32(v)
	}

	applyFade(data, fadeSamples(sampleRate, spec.FadeIn), false)
	applyFade(data, fadeSamples(sampleRate, spec.FadeOut), true)
	if spec.Peak > 0 {
		peakNormalize(data, float32(spec.Peak))
	}

	return &goaudio.Float32Buffer{
		Data:   data,
		Format: &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
	}
}

func fadeSamples(sampleRate int, d time.Duration) int {
	return int(float64(sampleRate) * d.Seconds())
}

// applyFade ramps n samples linearly at the start, or at the end when out is
// true. Fades longer than the signal are shortened to fit.
func applyFade(data []float32, n int, out bool) {
	if n <= 0 {
		return
	}
	if n > len(data) {
		n = len(data)
	}
	for i := 0; i < n; i++ {
		g := float32(i) / float32(n)
		if out {
			data[len(data)-1-i] *= g
		} else {
			data[i] *= g
		}
	}
}

// peakNormalize scales data so its absolute peak equals target, leaving
// all-zero signals untouched.
func peakNormalize(data []float32, target float32) {
	var peak float32
	for _, v := range data {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		return
	}
	scale := target / peak
	for i := range data {
		data[i] *= scale
	}
}
