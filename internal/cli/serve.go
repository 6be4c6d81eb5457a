package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/crossgrid/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr          string
		maxConcurrent int64
		rateLimit     float64
		burst         int
		noMetrics     bool
		noCache       bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve grid generation over HTTP",
		Long: `Serve starts an HTTP server with the routes

  GET /generate?words=cat,art,tar[&format=text|json|svg]
  GET /healthz
  GET /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg := c.Config.Server
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Addr = addr
			}
			if flags.Changed("max-concurrent") {
				cfg.MaxConcurrent = maxConcurrent
			}
			if flags.Changed("rate") {
				cfg.RateLimit = rateLimit
			}
			if flags.Changed("burst") {
				cfg.Burst = burst
			}
			cfg.Generate = c.Config.Generate.Options()

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			var metrics *server.Metrics
			if !noMetrics {
				metrics = server.NewMetrics()
				metrics.Install()
			}

			logger.Info("Starting server", "addr", cfg.Addr, "cache", c.cacheBackend(noCache))
			return server.New(cfg, runner, metrics, logger).Run(ctx)
		},
	}

	f := cmd.Flags()
	f.StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	f.Int64Var(&maxConcurrent, "max-concurrent", 0, "maximum simultaneous searches (default GOMAXPROCS)")
	f.Float64Var(&rateLimit, "rate", 0, "requests per second allowed across all clients (0 disables)")
	f.IntVar(&burst, "burst", 0, "rate limiter burst size")
	f.BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")
	f.BoolVar(&noCache, "no-cache", false, "disable the result cache")
	return cmd
}

func (c *CLI) cacheBackend(noCache bool) string {
	if noCache {
		return backendNone
	}
	return c.Config.Cache.Backend
}
