package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/docforge/docforge/internal/adapters/inbound/httpapi"
	"github.com/docforge/docforge/internal/domain"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var (
		addr        string
		allowedBase string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  "Serve diagram and javadoc generation over HTTP. Requested directories must lie within the allowed base directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags, func(s *domain.Settings) {
				if addr != "" {
					s.Server.Addr = addr
				}
				if allowedBase != "" {
					s.Server.AllowedBaseDirectory = allowedBase
				}
			})
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := httpapi.NewServer(a.settings.Server, a.diagrams, a.javadocs, a.log.Zap())
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().StringVar(&allowedBase, "allowed-base", "", "Allowed base directory (overrides server.allowed_base_directory)")

	return cmd
}
