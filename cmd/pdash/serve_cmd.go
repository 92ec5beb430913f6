package main

import (
	"net"

	"github.com/spf13/cobra"

	"github.com/raphi011/pdash/internal/log"
	"github.com/raphi011/pdash/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve the JSON API for the browser dashboard",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Serve the dashboard API over HTTP until interrupted.

The projects are scanned once at startup; POST /api/projects/scan rescans.
The listen address defaults to [serve] addr from the config file.`,
		Example: `  pdash serve
  pdash serve --addr :8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = e.cfg.Serve.Addr
			}

			l.Println("Scanning projects...")
			n, err := e.projects.Refresh(ctx)
			if err != nil {
				// The scan path can be fixed through the settings endpoint
				l.Printf("Warning: %v\n", err)
			} else {
				l.Printf("Found %d projects\n", n)
			}

			srv := server.New(e.projects, e.tags, e.settings)
			return srv.ListenAndServe(ctx, addr, func(a net.Addr) {
				l.Printf("Serving on http://%s\n", a)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}
