package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/domain"
	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/validation"
)

type fakePublisher struct {
	mu   sync.Mutex
	runs []*domain.Run
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, run *domain.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, run)
	return f.err
}

type fakeAlerter struct {
	runs []*domain.Run
	err  error
}

func (f *fakeAlerter) SendStatusAlert(_ context.Context, run *domain.Run) error {
	f.runs = append(f.runs, run)
	return f.err
}

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func staticDefaults(v domain.Variant) (domain.SimulationInput, error) {
	switch v {
	case domain.VariantIrradiance:
		return domain.SimulationInput{SolarIrradiance: 800, DutyCycle: 70, WaterInflow: 10, PanelArea: 10, PanelEfficiency: 18, PumpEfficiency: 75}, nil
	case domain.VariantHydraulic:
		return domain.SimulationInput{FlowRate: 0.2, Head: 30, PumpEfficiency: 70, SolarIrradiance: 800, PanelArea: 10, PanelEfficiency: 15, WaterLevel: 50, DieselCostPerKWh: 18, SolarOpexPerKWh: 1}, nil
	}
	return domain.SimulationInput{}, domain.ErrUnknownVariant
}

func newTestService(opts ...Option) *SimulationService {
	base := []Option{WithDefaults(staticDefaults), WithClock(func() time.Time { return fixedNow })}
	return NewSimulationService(append(base, opts...)...)
}

func TestRunIrradiance(t *testing.T) {
	pub := &fakePublisher{}
	alerts := &fakeAlerter{}
	svc := newTestService(WithPublisher(pub), WithAlerter(alerts))

	in, err := svc.Defaults(domain.VariantIrradiance)
	require.NoError(t, err)
	run, err := svc.Run(context.Background(), domain.VariantIrradiance, in)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(run.ID, "sim-"))
	assert.Equal(t, fixedNow, run.CreatedAt)
	assert.Equal(t, in, run.Input)
	assert.Equal(t, domain.StateSolarActive, run.Output.State)
	assert.InDelta(t, 0.756, run.Output.PumpPowerKW, 1e-9)

	assert.Equal(t, 12, run.Summary.PeakHour)
	assert.InDelta(t, 0.756, run.Summary.PeakPumpKW, 1e-9)
	assert.Equal(t, 11, run.Summary.DaylightHours)
	assert.InDelta(t, 0.8, run.Summary.DailySolarPeak, 1e-12)

	require.Len(t, pub.runs, 1)
	assert.Same(t, run, pub.runs[0])
	assert.Empty(t, alerts.runs)
}

func TestRunFallbackRaisesAlert(t *testing.T) {
	alerts := &fakeAlerter{err: errors.New("sns down")}
	svc := newTestService(WithAlerter(alerts))

	in, _ := staticDefaults(domain.VariantHydraulic)
	in.WaterLevel = 10
	run, err := svc.Run(context.Background(), domain.VariantHydraulic, in)
	require.NoError(t, err, "alert failures must not fail the run")

	assert.Equal(t, domain.StatePumpOff, run.Output.State)
	require.Len(t, alerts.runs, 1)
	assert.Equal(t, run.ID, alerts.runs[0].ID)
}

func TestRunPublishFailureIsNotFatal(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker gone")}
	svc := newTestService(WithPublisher(pub))

	in, _ := staticDefaults(domain.VariantIrradiance)
	_, err := svc.Run(context.Background(), domain.VariantIrradiance, in)
	assert.NoError(t, err)
	assert.Len(t, pub.runs, 1)
}

func TestRunRejectsInvalidInput(t *testing.T) {
	pub := &fakePublisher{}
	svc := newTestService(WithPublisher(pub))

	in, _ := staticDefaults(domain.VariantHydraulic)
	in.PumpEfficiency = 0
	run, err := svc.Run(context.Background(), domain.VariantHydraulic, in)
	assert.Nil(t, run)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, pub.runs, "failed runs are never published")
}

func TestRunOverflowIsNotPublished(t *testing.T) {
	pub := &fakePublisher{}
	svc := newTestService(WithPublisher(pub))

	in, _ := staticDefaults(domain.VariantHydraulic)
	in.FlowRate, in.Head, in.PumpEfficiency = 1, 1000, 1e-310
	run, err := svc.Run(context.Background(), domain.VariantHydraulic, in)
	assert.Nil(t, run)
	assert.ErrorIs(t, err, domain.ErrDivisionByZero)

	in, _ = staticDefaults(domain.VariantIrradiance)
	in.WaterInflow = 1e308
	run, err = svc.Run(context.Background(), domain.VariantIrradiance, in)
	assert.Nil(t, run)
	assert.ErrorIs(t, err, domain.ErrNonFinite)
	assert.Empty(t, pub.runs)
}

func TestRunUnknownVariant(t *testing.T) {
	svc := newTestService()
	_, err := svc.Run(context.Background(), "tidal", domain.SimulationInput{})
	assert.ErrorIs(t, err, domain.ErrUnknownVariant)
}

func TestRunSliderBounds(t *testing.T) {
	svc := newTestService(WithValidator(validation.New(validation.WithSliderBounds())))
	in, _ := staticDefaults(domain.VariantIrradiance)
	in.SolarIrradiance = 1300
	_, err := svc.Run(context.Background(), domain.VariantIrradiance, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSeededRunsAreReproducible(t *testing.T) {
	svc := newTestService(WithSeed(11))
	in, _ := staticDefaults(domain.VariantHydraulic)

	a, err := svc.Run(context.Background(), domain.VariantHydraulic, in)
	require.NoError(t, err)
	b, err := svc.Run(context.Background(), domain.VariantHydraulic, in)
	require.NoError(t, err)

	assert.Equal(t, a.Output, b.Output)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestUnseededRunsDiffer(t *testing.T) {
	svc := newTestService()
	in, _ := staticDefaults(domain.VariantHydraulic)

	a, err := svc.Run(context.Background(), domain.VariantHydraulic, in)
	require.NoError(t, err)
	b, err := svc.Run(context.Background(), domain.VariantHydraulic, in)
	require.NoError(t, err)
	assert.NotEqual(t, a.Output.Profile.Pump, b.Output.Profile.Pump)
}

func TestConcurrentSeededRunsMatch(t *testing.T) {
	pub := &fakePublisher{}
	svc := newTestService(WithSeed(5), WithPublisher(pub))
	in, _ := staticDefaults(domain.VariantHydraulic)

	want, err := svc.Run(context.Background(), domain.VariantHydraulic, in)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*domain.Run, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = svc.Run(context.Background(), domain.VariantHydraulic, in)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, want.Output.Profile, r.Output.Profile)
	}
	assert.Len(t, pub.runs, 17)
}

func TestSummarize(t *testing.T) {
	var p domain.DiurnalProfile
	p.Solar[10], p.Solar[11] = 0.5, 0.8
	p.Pump[10], p.Pump[11], p.Pump[12] = 1, 4, 1

	s := Summarize(p)
	assert.Equal(t, 11, s.PeakHour)
	assert.Equal(t, 4.0, s.PeakPumpKW)
	assert.InDelta(t, 6.0/24, s.MeanPumpKW, 1e-12)
	assert.Equal(t, 6.0, s.DailyPumpKWh)
	assert.Equal(t, 2, s.DaylightHours)
	assert.Equal(t, 0.8, s.DailySolarPeak)
}
