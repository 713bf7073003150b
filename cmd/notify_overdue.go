package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/librisys/library-system/internal/core/ports"
	"github.com/librisys/library-system/internal/core/service"
	"github.com/librisys/library-system/internal/infrastructure/config"
	mongodb "github.com/librisys/library-system/internal/infrastructure/db/mongo"
	"github.com/librisys/library-system/internal/infrastructure/notify"
	"github.com/librisys/library-system/internal/infrastructure/queue"
	"github.com/librisys/library-system/pkg/logger"
)

var notifyWorkers int

// notifyOverdueCmd scans for overdue loans and mails each borrower once.
// Meant to run from cron; it enqueues everything, drains, and exits.
var notifyOverdueCmd = &cobra.Command{
	Use:   "notify-overdue",
	Short: "Send overdue notices for all active loans past their due date",
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

		loanRepo := mongodb.NewLoanRepository(db)
		bookRepo := mongodb.NewBookRepository(db)
		userRepo := mongodb.NewUserRepository(db)

		var notifier ports.Notifier
		if cfg.SMTP.Host != "" {
			notifier = notify.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)
		} else {
			notifier = notify.NewLogSender(log)
		}

		scanner := service.NewOverdueScanner(loanRepo, bookRepo, userRepo, log)
		notices, err := scanner.Scan(ctx, time.Now().UTC())
		if err != nil {
			log.Error().Err(err).Msg("overdue scan failed")
			os.Exit(1)
		}
		if len(notices) == 0 {
			log.Info().Msg("no overdue loans")
			return
		}

		dispatcher := queue.NewDispatcher(notifyWorkers, service.NewNoticeService(notifier, log), log)
		dispatcher.Start(ctx)
		dispatcher.EnqueueBatch(notices)
		dispatcher.Close()

		log.Info().Int("notices", len(notices)).Msg("overdue notice run complete")
	},
}

func init() {
	rootCmd.AddCommand(notifyOverdueCmd)
	notifyOverdueCmd.Flags().IntVar(&notifyWorkers, "workers", 4, "number of delivery workers")
}
