package main

import (
	"fmt"
	"os"

	"github.com/example/go-tonegen/internal/audio"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file.wav>",
		Short: "Print the container fields of a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			info, err := audio.ReadInfo(data)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:            %s (%d bytes)\n", args[0], len(data))
			fmt.Fprintf(out, "format:          %s (tag %d)\n", info.FormatName(), info.AudioFormat)
			fmt.Fprintf(out, "channels:        %d\n", info.Channels)
			fmt.Fprintf(out, "sample rate:     %d Hz\n", info.SampleRate)
			fmt.Fprintf(out, "byte rate:       %d\n", info.ByteRate)
			fmt.Fprintf(out, "block align:     %d\n", info.BlockAlign)
			fmt.Fprintf(out, "bits per sample: %d\n", info.BitsPerSample)
			fmt.Fprintf(out, "data size:       %d bytes\n", info.DataSize)
			fmt.Fprintf(out, "duration:        %v\n", info.Duration())

			if err := validateContainer(data); err != nil {
				return err
			}
			fmt.Fprintln(out, "container OK")
			return nil
		},
	}

	return cmd
}
