package main

import (
	"bytes"
	"context"
	"testing"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/config"
	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/domain"
)

// recordingClient only implements what run touches; any other call panics.
type recordingClient struct {
	mqtt.Client
	disconnected bool
}

func (c *recordingClient) Disconnect(uint) { c.disconnected = true }

func loadConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	require.NoError(t, config.Load())
}

func stubConnect(t *testing.T) *recordingClient {
	t.Helper()
	c := &recordingClient{}
	prev := connect
	connect = func(string, string) (mqtt.Client, error) { return c, nil }
	t.Cleanup(func() { connect = prev })
	return c
}

func TestRunRendersReport(t *testing.T) {
	loadConfig(t)
	var out bytes.Buffer
	err := run(context.Background(), []string{"--variant", "irradiance", "--seed", "5", "--panel-area", "2", "--irradiance", "1000", "--panel-eff", "10"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "irradiance model")
	assert.Contains(t, out.String(), "PV Power Generated")
}

func TestRunFailureStillDisconnects(t *testing.T) {
	loadConfig(t)
	c := stubConnect(t)

	err := run(context.Background(), []string{"--publish", "--variant", "hydraulic", "--pump-eff", "0"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.True(t, c.disconnected, "mqtt client closed on the error path")
}

func TestRunRejectsUnknownVariant(t *testing.T) {
	loadConfig(t)
	err := run(context.Background(), []string{"--variant", "tidal"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrUnknownVariant)
}
