// Package bench provides timing primitives for the tonegen bench command.
package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/example/go-tonegen/internal/audio"
)

// RunResult holds the timing and audio metadata for one render+encode run.
type RunResult struct {
	Index       int
	Duration    time.Duration // wall time spent generating
	WAVDuration time.Duration // playback duration of the produced file
	RTF         float64       // Duration / WAVDuration
}

// Stats holds aggregate timing statistics across all runs.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// ComputeStats calculates min, max and mean over a slice of durations.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	mn, mx := durations[0], durations[0]
	var sum time.Duration
	for _, d := range durations {
		if d < mn {
			mn = d
		}
		if d > mx {
			mx = d
		}
		sum += d
	}
	return Stats{
		Min:  mn,
		Max:  mx,
		Mean: sum / time.Duration(len(durations)),
	}
}

// CalcRTF returns generation_duration / audio_duration, the fraction of
// realtime the generator needs. Returns 0 if audioDur is zero.
func CalcRTF(genDur, audioDur time.Duration) float64 {
	if audioDur <= 0 {
		return 0
	}
	return float64(genDur) / float64(audioDur)
}

// WAVDuration returns the playback duration a WAV file declares in its
// header, honoring the block alignment so both 8-bit formats report
// correctly.
func WAVDuration(data []byte) (time.Duration, error) {
	info, err := audio.ReadInfo(data)
	if err != nil {
		return 0, err
	}
	if info.SampleRate == 0 || info.BlockAlign == 0 {
		return 0, fmt.Errorf("invalid fmt chunk: sampleRate=%d blockAlign=%d", info.SampleRate, info.BlockAlign)
	}
	return info.Duration(), nil
}

// CheckRTFThreshold returns an error if meanRTF > threshold.
// A threshold of 0 disables the gate.
func CheckRTFThreshold(meanRTF, threshold float64) error {
	if threshold <= 0 {
		return nil
	}
	if meanRTF > threshold {
		return fmt.Errorf("mean RTF %.3f exceeds threshold %.3f", meanRTF, threshold)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

// FormatTable writes a human-readable ASCII table of bench results to w.
func FormatTable(runs []RunResult, stats Stats, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-5s  %10s  %12s  %8s\n", "Run", "MS", "Audio(ms)", "RTF")
	fmt.Fprintln(sb, strings.Repeat("-", 42))

	for _, r := range runs {
		fmt.Fprintf(sb, "%-5d  %10.1f  %12.1f  %8.3f\n",
			r.Index+1,
			float64(r.Duration.Microseconds())/1000,
			float64(r.WAVDuration.Milliseconds()),
			r.RTF,
		)
	}

	fmt.Fprintln(sb, strings.Repeat("-", 42))
	fmt.Fprintf(sb, "%-5s  %10.1f  %12s  %8s  (min)\n", "", float64(stats.Min.Microseconds())/1000, "", "")
	fmt.Fprintf(sb, "%-5s  %10.1f  %12s  %8s  (mean)\n", "", float64(stats.Mean.Microseconds())/1000, "", "")
	fmt.Fprintf(sb, "%-5s  %10.1f  %12s  %8s  (max)\n", "", float64(stats.Max.Microseconds())/1000, "", "")

	fmt.Fprint(w, sb.String())
}

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Runs  []jsonRun `json:"runs"`
	Stats jsonStats `json:"stats"`
}

type jsonRun struct {
	Index      int     `json:"index"`
	DurationMS float64 `json:"duration_ms"`
	AudioMS    float64 `json:"audio_ms"`
	RTF        float64 `json:"rtf"`
}

type jsonStats struct {
	MinMS  float64 `json:"min_ms"`
	MeanMS float64 `json:"mean_ms"`
	MaxMS  float64 `json:"max_ms"`
}

// FormatJSON writes a JSON report of bench results to w.
func FormatJSON(runs []RunResult, stats Stats, w io.Writer) {
	jr := jsonReport{
		Runs: make([]jsonRun, len(runs)),
		Stats: jsonStats{
			MinMS:  float64(stats.Min.Microseconds()) / 1000,
			MeanMS: float64(stats.Mean.Microseconds()) / 1000,
			MaxMS:  float64(stats.Max.Microseconds()) / 1000,
		},
	}
	for i, r := range runs {
		jr.Runs[i] = jsonRun{
			Index:      r.Index,
			DurationMS: float64(r.Duration.Microseconds()) / 1000,
			AudioMS:    float64(r.WAVDuration.Milliseconds()),
			RTF:        r.RTF,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(jr)
}
