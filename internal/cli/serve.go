package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinmap/internal/config"
	"github.com/matzehuels/pinmap/internal/server"
	"github.com/matzehuels/pinmap/pkg/pipeline"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the pinmap HTTP API",
		Long: `Run the pinmap HTTP API.

Configuration comes from pinmap.yaml (working directory or ~/.config/pinmap),
PINMAP_* environment variables and flags, in increasing priority. Metrics
are served at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if !cmd.Flags().Changed("verbose") {
				c.SetLogLevel(cfg.LogLevel())
			}
			for _, msg := range cfg.Fallbacks() {
				c.Logger.Warn("unrecognized default, requests fall back", "setting", msg)
			}

			ctx := cmd.Context()
			ch, err := cfg.OpenCache(ctx)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			st, err := cfg.OpenStore(ctx)
			if err != nil {
				ch.Close()
				return fmt.Errorf("open store: %w", err)
			}
			if st != nil {
				defer st.Close()
			}

			runner := pipeline.NewRunner(ch, nil, nil, c.Logger)
			defer runner.Close()

			metrics := server.NewMetrics()
			metrics.Register()

			c.Logger.Info("starting server",
				"cache", cfg.Cache.Backend,
				"store", cfg.Store.Backend,
				"timeout", cfg.Server.RequestTimeout)
			return server.New(cfg, runner, st, metrics, c.Logger).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default: ./pinmap.yaml or ~/.config/pinmap/pinmap.yaml)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")

	return cmd
}
