package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/librisys/library-system/internal/api"
	"github.com/librisys/library-system/internal/infrastructure/config"
	mongodb "github.com/librisys/library-system/internal/infrastructure/db/mongo"
	redisdb "github.com/librisys/library-system/internal/infrastructure/db/redis"
	"github.com/librisys/library-system/pkg/logger"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		log := logger.Init(logger.Options{
			Level:  cfg.LogLevel,
			Pretty: cfg.Env == "development",
		})

		ctx := cmd.Context()

		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect to mongodb: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect to redis: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = rdb.Close() }()

		if err := ensureIndexes(ctx, db); err != nil {
			log.Error().Err(err).Msg("index creation failed")
			os.Exit(1)
		}

		e := api.NewRouter(db, rdb, cfg, log)

		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("server stopped")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
