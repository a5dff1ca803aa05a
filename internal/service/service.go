package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/config"
	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/domain"
	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/simulation"
	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/validation"
)

// Publisher fans a finished run out to presentation collaborators.
type Publisher interface {
	Publish(ctx context.Context, run *domain.Run) error
}

// Alerter notifies operators when a run lands in a fallback state.
type Alerter interface {
	SendStatusAlert(ctx context.Context, run *domain.Run) error
}

type Services struct {
	Simulations *SimulationService
}

func New(opts ...Option) *Services {
	return &Services{Simulations: NewSimulationService(opts...)}
}

type SimulationService struct {
	validator   *validation.Validator
	noiseStdDev float64
	seed        uint64
	defaults    func(domain.Variant) (domain.SimulationInput, error)
	publisher   Publisher
	alerter     Alerter
	now         func() time.Time
}

type Option func(*SimulationService)

// WithSeed makes every run's noisy profile reproducible. Zero means a fresh seed per run.
func WithSeed(seed uint64) Option { return func(s *SimulationService) { s.seed = seed } }

func WithNoiseStdDev(sd float64) Option { return func(s *SimulationService) { s.noiseStdDev = sd } }

func WithValidator(v *validation.Validator) Option {
	return func(s *SimulationService) { s.validator = v }
}

func WithDefaults(fn func(domain.Variant) (domain.SimulationInput, error)) Option {
	return func(s *SimulationService) { s.defaults = fn }
}

func WithPublisher(p Publisher) Option { return func(s *SimulationService) { s.publisher = p } }

func WithAlerter(a Alerter) Option { return func(s *SimulationService) { s.alerter = a } }

func WithClock(now func() time.Time) Option { return func(s *SimulationService) { s.now = now } }

// FromConfig wires the options that come from the loaded configuration.
func FromConfig() []Option {
	opts := []Option{
		WithSeed(config.Seed()),
		WithNoiseStdDev(config.NoiseStdDev()),
	}
	if config.SliderBounds() {
		opts = append(opts, WithValidator(validation.New(validation.WithSliderBounds())))
	}
	return opts
}

func NewSimulationService(opts ...Option) *SimulationService {
	s := &SimulationService{
		validator:   validation.New(),
		noiseStdDev: simulation.DefaultNoiseStdDev,
		defaults:    config.DefaultInput,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the starting parameters for variant v.
func (s *SimulationService) Defaults(v domain.Variant) (domain.SimulationInput, error) {
	return s.defaults(v)
}

// Run validates in, computes variant v and hands the result to the publisher
// and alerter. Delivery failures are logged; they never fail the run.
func (s *SimulationService) Run(ctx context.Context, v domain.Variant, in domain.SimulationInput) (*domain.Run, error) {
	model, err := simulation.New(v, s.noiseStdDev)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	out, err := model.Compute(in, s.noise())
	if err != nil {
		return nil, fmt.Errorf("compute %s model: %w", v, err)
	}

	run := &domain.Run{
		ID:        "sim-" + uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Input:     in,
		Output:    out,
		Summary:   Summarize(out.Profile),
	}

	log.Debug().
		Str("run_id", run.ID).
		Str("variant", string(v)).
		Str("state", string(out.State)).
		Float64("pv_kw", out.PVPowerKW).
		Float64("pump_kw", out.PumpPowerKW).
		Msg("simulation run")

	if out.State.Fallback() {
		log.Warn().Str("run_id", run.ID).Str("state", string(out.State)).Msg(out.State.Banner())
		if s.alerter != nil {
			if err := s.alerter.SendStatusAlert(ctx, run); err != nil {
				log.Error().Err(err).Str("run_id", run.ID).Msg("status alert failed")
			}
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, run); err != nil {
			log.Error().Err(err).Str("run_id", run.ID).Msg("publish failed")
		}
	}
	return run, nil
}

// noise builds a generator owned by a single run.
func (s *SimulationService) noise() simulation.Noise {
	if s.seed != 0 {
		return rand.New(rand.NewPCG(s.seed, s.seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
