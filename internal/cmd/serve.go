package cmd

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"jewelbox/internal/config"
	"jewelbox/internal/events"
	"jewelbox/internal/http/handlers"
	"jewelbox/internal/payment"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func publisher(cfg *config.Config) events.Publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Printf("[kafka] no brokers configured, order events disabled")
		return events.Nop{}
	}
	k, err := events.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		// the shop keeps selling without the event stream
		log.Printf("[warn] %v, order events disabled", err)
		return events.Nop{}
	}
	return k
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	pub := publisher(cfg)
	defer pub.Close()

	pay := payment.NewMock(cfg.Payment.SuccessRate, cfg.Payment.Latency)
	app := handlers.NewApp(cfg, handlers.NewDeps(db, cfg, pay, pub))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Printf("[http] listening on :%s (env=%s)", cfg.Server.Port, cfg.Server.Env)
		errc <- app.Listen(":" + cfg.Server.Port)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("[http] shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(sctx)
}
