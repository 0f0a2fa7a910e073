package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsRequireServiceBinary(t *testing.T) {
	var params commandParams
	assert.False(t, params.Read([]string{"midi-contract-tests"}))
}

func TestParamsDefaults(t *testing.T) {
	var params commandParams
	require.True(t, params.Read([]string{"midi-contract-tests", "-service", "/opt/harmonia/bin/harmonia"}))

	assert.Equal(t, "/opt/harmonia/bin/harmonia", params.serviceBinary)
	assert.Equal(t, defaultHost, params.host)
	assert.Equal(t, defaultPort, params.port)
	assert.Equal(t, defaultReadyTimeout, params.readyTimeout)
	assert.Equal(t, defaultShutdownTimeout, params.shutdownTimeout)
	assert.Empty(t, params.serviceArgs)
}

func TestParamsPassThroughServiceArgs(t *testing.T) {
	var params commandParams
	require.True(t, params.Read([]string{
		"midi-contract-tests",
		"-service", "./harmonia",
		"-port", "9000",
		"-ready-timeout", "30s",
		"--",
		"--log-level", "debug",
	}))

	assert.Equal(t, 9000, params.port)
	assert.Equal(t, 30*time.Second, params.readyTimeout)
	assert.Equal(t, []string{"--log-level", "debug"}, params.serviceArgs)
}
