package main

import (
	"fmt"

	"github.com/example/go-tonegen/internal/server"
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check whether a running tone server responds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			probeAddr := addr
			if probeAddr == "" {
				cfg, err := requireConfig()
				if err != nil {
					return err
				}
				probeAddr = cfg.Server.ListenAddr
			}
			if err := server.ProbeHTTP(probeAddr); err != nil {
				return fmt.Errorf("server at %s is not healthy: %w", probeAddr, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "address to probe (defaults to the configured listen address)")

	return cmd
}
