package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/domain"
)

var defaultInputs = map[domain.Variant]map[string]float64{
	domain.VariantIrradiance: {
		"solar_irradiance": 800,
		"duty_cycle":       70,
		"water_inflow":     10,
		"panel_area":       10,
		"panel_efficiency": 18,
		"pump_efficiency":  75,
	},
	domain.VariantHydraulic: {
		"flow_rate":           0.2,
		"head":                30,
		"pump_efficiency":     70,
		"solar_irradiance":    800,
		"panel_area":          10,
		"panel_efficiency":    15,
		"water_level":         50,
		"diesel_cost_per_kwh": 18,
		"solar_opex_per_kwh":  1,
	},
}

func inputKey(v domain.Variant, field string) string {
	return "defaults." + string(v) + "." + field
}

func Load() error {
	// API Configuration
	viper.SetDefault("API_ADDR", ":8080")
	viper.SetDefault("LOG_LEVEL", "info")

	// Simulation
	viper.SetDefault("SIM_VARIANT", string(domain.VariantIrradiance))
	viper.SetDefault("SIM_SEED", 0)
	viper.SetDefault("SIM_NOISE_STDDEV", 0.2)
	viper.SetDefault("SIM_SLIDER_BOUNDS", false)

	// Messaging
	viper.SetDefault("MQTT_BROKER", "tcp://localhost:1883")
	viper.SetDefault("MQTT_TOPIC", "solar/simulations")
	viper.SetDefault("MQTT_CLIENT_ID", "solar-pumping-simulator")
	viper.SetDefault("MQTT_ENABLED", false)

	// AWS Configuration
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("AWS_SNS_TOPIC_ARN", "")
	viper.SetDefault("USE_CLOUD_SERVICES", "false") // Toggle for status alerts via SNS

	// Default operator parameters, as the prototype's sliders start out.
	// Registered per key so DEFAULTS_<VARIANT>_<FIELD> env vars override them.
	for v, fields := range defaultInputs {
		for name, val := range fields {
			viper.SetDefault(inputKey(v, name), val)
		}
	}

	viper.SetConfigName("solarpump")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if _, err := Variant(); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(viper.GetString("LOG_LEVEL")); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

func APIAddr() string        { return viper.GetString("API_ADDR") }
func MQTTBroker() string     { return viper.GetString("MQTT_BROKER") }
func MQTTTopic() string      { return viper.GetString("MQTT_TOPIC") }
func MQTTClientID() string   { return viper.GetString("MQTT_CLIENT_ID") }
func MQTTEnabled() bool      { return viper.GetBool("MQTT_ENABLED") }
func AWSRegion() string      { return viper.GetString("AWS_REGION") }
func SNSTopicArn() string    { return viper.GetString("AWS_SNS_TOPIC_ARN") }
func UseCloudServices() bool { return viper.GetBool("USE_CLOUD_SERVICES") }
func NoiseStdDev() float64   { return viper.GetFloat64("SIM_NOISE_STDDEV") }
func Seed() uint64           { return viper.GetUint64("SIM_SEED") }
func SliderBounds() bool     { return viper.GetBool("SIM_SLIDER_BOUNDS") }

func LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(viper.GetString("LOG_LEVEL"))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

func Variant() (domain.Variant, error) {
	v, err := domain.ParseVariant(viper.GetString("SIM_VARIANT"))
	if err != nil {
		return "", fmt.Errorf("SIM_VARIANT: %w", err)
	}
	return v, nil
}

// DefaultInput returns the configured starting parameters for variant v.
// Each field is read through its own key, so file values and env overrides
// apply field by field.
func DefaultInput(v domain.Variant) (domain.SimulationInput, error) {
	var in domain.SimulationInput
	if _, err := domain.ParseVariant(string(v)); err != nil {
		return in, err
	}
	for name, dst := range inputFields(&in) {
		key := inputKey(v, name)
		raw := viper.Get(key)
		if raw == nil {
			continue
		}
		f, err := cast.ToFloat64E(raw)
		if err != nil {
			return domain.SimulationInput{}, fmt.Errorf("%s: %w", key, err)
		}
		*dst = f
	}
	return in, nil
}

func inputFields(in *domain.SimulationInput) map[string]*float64 {
	return map[string]*float64{
		"solar_irradiance":    &in.SolarIrradiance,
		"duty_cycle":          &in.DutyCycle,
		"water_inflow":        &in.WaterInflow,
		"flow_rate":           &in.FlowRate,
		"head":                &in.Head,
		"pump_efficiency":     &in.PumpEfficiency,
		"panel_area":          &in.PanelArea,
		"panel_efficiency":    &in.PanelEfficiency,
		"water_level":         &in.WaterLevel,
		"diesel_cost_per_kwh": &in.DieselCostPerKWh,
		"solar_opex_per_kwh":  &in.SolarOpexPerKWh,
	}
}
