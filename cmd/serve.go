package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tensebunny/tensebunny/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve lessons, games and progress over HTTP",
	Long: `Start the JSON API used by browser and mobile front ends.

The listen address defaults to TENSEBUNNY_HTTP_ADDR (":8080"); allowed
CORS origins come from TENSEBUNNY_CORS_ORIGINS as a comma separated list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc := buildServices(ctx, st)

		cfg := api.ConfigFromEnv()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		srv := api.NewServer(cfg, api.Deps{
			Progress: svc.Progress,
			Themes:   svc.Themes,
			Scores:   svc.Scores,
			Events:   svc.Events,
			AI:       svc.AI,
		})
		fmt.Fprintf(os.Stderr, "TenseBunny API listening on %s\n", cfg.Addr)
		return srv.Serve(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides TENSEBUNNY_HTTP_ADDR)")
}
