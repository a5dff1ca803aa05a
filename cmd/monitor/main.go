package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/config"
	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/domain"
	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/messaging"
)

// monitor follows published simulation runs and logs the status banner of each.
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
		log.Fatal().Err(err).Msg("monitor exit")
	}
}

// run follows the topic until ctx is cancelled.
func run(ctx context.Context) error {
	client, err := messaging.Connect(config.MQTTBroker(), config.MQTTClientID()+"-monitor")
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	if err := messaging.Subscribe(client, config.MQTTTopic(), logRun); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	log.Info().Str("topic", config.MQTTTopic()).Msg("monitor running; Ctrl+C to stop")
	<-ctx.Done()
	return nil
}

func logRun(r domain.Run) {
	out := r.Output
	ev := log.Info()
	if out.State.Fallback() {
		ev = log.Warn()
	}
	ev.Str("run_id", r.ID).
		Str("variant", string(out.Variant)).
		Str("state", string(out.State)).
		Float64("pv_kw", out.PVPowerKW).
		Float64("pump_kw", out.PumpPowerKW).
		Float64("daily_pump_kwh", r.Summary.DailyPumpKWh).
		Msg(out.State.Banner())
}
