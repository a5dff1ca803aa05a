package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/config"
	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/domain"
	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/messaging"
	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/report"
	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/service"
)

// connect is swapped out in tests.
var connect = messaging.Connect

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	zerolog.SetGlobalLevel(config.LogLevel())

	// run owns the MQTT connection, so it is closed before we exit non-zero.
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("simulator failed")
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("simulator", pflag.ContinueOnError)

	defVariant, _ := config.Variant()
	variantName := fs.String("variant", string(defVariant), "model variant: irradiance or hydraulic")
	seed := fs.Uint64("seed", config.Seed(), "seed for the pump noise profile (0 = random)")
	publish := fs.Bool("publish", false, "publish the run to MQTT_TOPIC")

	// Every input field gets a flag; only flags given on the command line
	// override the variant defaults.
	var flags domain.SimulationInput
	fs.Float64Var(&flags.SolarIrradiance, "irradiance", 0, "solar irradiance (W/m²)")
	fs.Float64Var(&flags.DutyCycle, "duty-cycle", 0, "pump duty cycle (%)")
	fs.Float64Var(&flags.WaterInflow, "inflow", 0, "water inflow (L/s)")
	fs.Float64Var(&flags.FlowRate, "flow-rate", 0, "pump flow rate (m³/s)")
	fs.Float64Var(&flags.Head, "head", 0, "pumping head (m)")
	fs.Float64Var(&flags.PumpEfficiency, "pump-eff", 0, "pump efficiency (%)")
	fs.Float64Var(&flags.PanelArea, "panel-area", 0, "panel area (m²)")
	fs.Float64Var(&flags.PanelEfficiency, "panel-eff", 0, "panel efficiency (%)")
	fs.Float64Var(&flags.WaterLevel, "water-level", 0, "sump water level (%)")
	fs.Float64Var(&flags.DieselCostPerKWh, "diesel-cost", 0, "diesel cost per kWh")
	fs.Float64Var(&flags.SolarOpexPerKWh, "solar-opex", 0, "solar opex per kWh")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v, err := domain.ParseVariant(*variantName)
	if err != nil {
		return fmt.Errorf("--variant: %w", err)
	}

	opts := append(service.FromConfig(), service.WithSeed(*seed))
	if *publish {
		client, err := connect(config.MQTTBroker(), config.MQTTClientID()+"-cli")
		if err != nil {
			return fmt.Errorf("mqtt connect: %w", err)
		}
		defer client.Disconnect(250)
		opts = append(opts, service.WithPublisher(messaging.NewPublisher(client, config.MQTTTopic())))
	}
	svc := service.NewSimulationService(opts...)

	in, err := svc.Defaults(v)
	if err != nil {
		return fmt.Errorf("load defaults: %w", err)
	}
	overrideChanged(fs, &in, flags)

	r, err := svc.Run(ctx, v, in)
	if err != nil {
		return err
	}
	return report.Render(stdout, r)
}

func overrideChanged(fs *pflag.FlagSet, in *domain.SimulationInput, flags domain.SimulationInput) {
	set := map[string]func(){
		"irradiance":  func() { in.SolarIrradiance = flags.SolarIrradiance },
		"duty-cycle":  func() { in.DutyCycle = flags.DutyCycle },
		"inflow":      func() { in.WaterInflow = flags.WaterInflow },
		"flow-rate":   func() { in.FlowRate = flags.FlowRate },
		"head":        func() { in.Head = flags.Head },
		"pump-eff":    func() { in.PumpEfficiency = flags.PumpEfficiency },
		"panel-area":  func() { in.PanelArea = flags.PanelArea },
		"panel-eff":   func() { in.PanelEfficiency = flags.PanelEfficiency },
		"water-level": func() { in.WaterLevel = flags.WaterLevel },
		"diesel-cost": func() { in.DieselCostPerKWh = flags.DieselCostPerKWh },
		"solar-opex":  func() { in.SolarOpexPerKWh = flags.SolarOpexPerKWh },
	}
	for name, apply := range set {
		if fs.Changed(name) {
			apply()
		}
	}
}
