package main

import (
	"fmt"

	"github.com/example/go-tonegen/internal/fixture"
	"github.com/spf13/cobra"
)

func newFixturesCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Write the fixed device test fixture set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Output.Dir
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Writing test fixtures to %s (%d Hz, mono)\n", dir, cfg.Tone.SampleRate)

			err = fixture.WriteAll(dir, cfg.Tone.SampleRate, func(name string, size int) {
				fmt.Fprintf(out, "  wrote %s (%d bytes, %.1f KB)\n", name, size, float64(size)/1024)
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "Done. Copy any file to the device (e.g. SD card as 'test.wav').")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Target directory (default from config)")

	return cmd
}
