package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/sparky/internal/logging"
	"github.com/abhisek/sparky/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the practice engine as a local JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		addr := cfg.HTTPAddr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		e, err := openEngine(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		log := logging.FromContext(ctx)
		if e.offline {
			log.Info().Msg("serving questions from the offline bank")
		}
		return server.New(e.svc, e.metrics, *log).ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides SPARKY_HTTP_ADDR)")
}
