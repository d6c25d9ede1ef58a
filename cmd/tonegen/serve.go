package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/go-tonegen/internal/fixture"
	"github.com/example/go-tonegen/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve generated test tones over HTTP",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			gen := fixture.Generator{SampleRate: cfg.Tone.SampleRate}
			srv := server.New(cfg, gen).
				WithShutdownTimeout(time.Duration(cfg.Server.ShutdownTimeout) * time.Second)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}

	return cmd
}
