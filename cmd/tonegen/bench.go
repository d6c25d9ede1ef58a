package main

import (
	"context"
	"fmt"
	"time"

	"github.com/example/go-tonegen/internal/audio"
	"github.com/example/go-tonegen/internal/bench"
	"github.com/example/go-tonegen/internal/fixture"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var (
		preset       string
		seconds      float64
		formatName   string
		runs         int
		output       string
		rtfThreshold float64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the render and encode path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1, got %d", runs)
			}
			if output != "table" && output != "json" {
				return fmt.Errorf("unknown output %q (want table or json)", output)
			}
			f, err := audio.ParseFormat(formatName)
			if err != nil {
				return err
			}
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			gen := fixture.Generator{SampleRate: cfg.Tone.SampleRate}
			dur := time.Duration(seconds * float64(time.Second))

			results := make([]bench.RunResult, 0, runs)
			durations := make([]time.Duration, 0, runs)
			for i := 0; i < runs; i++ {
				start := time.Now()
				data, err := gen.Generate(context.Background(), preset, f, dur)
				if err != nil {
					return fmt.Errorf("run %d: %w", i+1, err)
				}
				elapsed := time.Since(start)

				wavDur, err := bench.WAVDuration(data)
				if err != nil {
					return fmt.Errorf("run %d: %w", i+1, err)
				}
				results = append(results, bench.RunResult{
					Index:       i,
					Duration:    elapsed,
					WAVDuration: wavDur,
					RTF:         bench.CalcRTF(elapsed, wavDur),
				})
				durations = append(durations, elapsed)
			}

			stats := bench.ComputeStats(durations)
			switch output {
			case "json":
				bench.FormatJSON(results, stats, cmd.OutOrStdout())
			default:
				bench.FormatTable(results, stats, cmd.OutOrStdout())
			}

			if rtfThreshold > 0 {
				var meanRTF float64
				for _, r := range results {
					meanRTF += r.RTF
				}
				meanRTF /= float64(len(results))
				if err := bench.CheckRTFThreshold(meanRTF, rtfThreshold); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "clean", "tone preset to render")
	cmd.Flags().Float64Var(&seconds, "seconds", 3, "duration of each rendered tone")
	cmd.Flags().StringVar(&formatName, "format", "alaw8", "output format (pcm8 or alaw8)")
	cmd.Flags().IntVar(&runs, "runs", 5, "number of timed runs")
	cmd.Flags().StringVar(&output, "output", "table", "report format (table or json)")
	cmd.Flags().Float64Var(&rtfThreshold, "rtf-threshold", 0, "fail if mean RTF exceeds this value (0 disables)")

	return cmd
}
