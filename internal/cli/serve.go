package cli

import (
	"github.com/spf13/cobra"

	"github.com/clhatlas/reco4011-ssim/internal/server"
	"github.com/clhatlas/reco4011-ssim/pkg/cache"
	"github.com/clhatlas/reco4011-ssim/pkg/pipeline"
	"github.com/clhatlas/reco4011-ssim/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redis    string
		mongoURI string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the ISM HTTP API",
		Long: `Serve starts the HTTP API for stateless analysis and study
persistence. Without --redis results are cached on disk; without
--mongo-uri studies are stored in memory and lost on restart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if addr == "" {
				addr = c.Config.Server.Addr
			}
			if redis == "" {
				redis = c.Config.Cache.RedisAddr
			}
			if mongoURI == "" {
				mongoURI = c.Config.Server.MongoURI
			}

			var (
				cch cache.Cache
				err error
			)
			if redis != "" {
				cch, err = cache.NewRedisCache(ctx, redis, c.Config.Cache.RedisPassword, c.Config.Cache.RedisDB)
				if err != nil {
					return err
				}
				c.Logger.Info("using redis cache", "addr", redis)
			} else {
				cch, err = c.newCache(false)
				if err != nil {
					return err
				}
			}

			var st store.Store
			if mongoURI != "" {
				st, err = store.NewMongoStore(ctx, mongoURI, c.Config.Server.MongoDB)
				if err != nil {
					return err
				}
				c.Logger.Info("using mongodb store", "db", c.Config.Server.MongoDB)
			} else {
				st = store.NewMemoryStore()
				c.Logger.Warn("using in-memory store, studies are lost on restart")
			}
			defer st.Close(ctx)

			runner := pipeline.NewRunner(cch, nil, c.Logger)
			defer runner.Close()

			srv := server.New(runner, st, c.Logger)
			c.Logger.Info("starting server", "addr", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, then :8080)")
	cmd.Flags().StringVar(&redis, "redis", "", "redis address for the result cache (host:port)")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "mongodb connection string for study persistence")

	return cmd
}
