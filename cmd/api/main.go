package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/cloud"
	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/config"
	httpHandlers "github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/http"
	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/messaging"
	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/service"
)

// connect is swapped out in tests.
var connect = messaging.Connect

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	zerolog.SetGlobalLevel(config.LogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("server exit")
	}
	log.Info().Msg("server stopped")
}

// run serves the API until ctx is cancelled or the listener fails.
func run(ctx context.Context) error {
	opts := service.FromConfig()

	if config.MQTTEnabled() {
		client, err := connect(config.MQTTBroker(), config.MQTTClientID())
		if err != nil {
			return fmt.Errorf("mqtt connect: %w", err)
		}
		defer client.Disconnect(250)
		opts = append(opts, service.WithPublisher(messaging.NewPublisher(client, config.MQTTTopic())))
	}

	if config.UseCloudServices() {
		sns, err := cloud.NewSNSClient(ctx, config.AWSRegion(), config.SNSTopicArn())
		if err != nil {
			return fmt.Errorf("sns client: %w", err)
		}
		opts = append(opts, service.WithAlerter(sns))
	}

	svcs := service.New(opts...)
	app := fiber.New()

	httpHandlers.Register(app, svcs)

	addr := config.APIAddr()
	errc := make(chan error, 1)
	go func() { errc <- app.Listen(addr) }()
	log.Info().Str("addr", addr).Msg("api listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return app.ShutdownWithContext(context.Background())
	}
}
