package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTransportConfigDefaults(t *testing.T) {
	t.Setenv("MCP_TRANSPORT", "")
	t.Setenv("PORT", "")
	t.Setenv("HOST", "")

	cfg, err := LoadTransportConfig()
	require.NoError(t, err)

	assert.Equal(t, TransportStdio, cfg.Type)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
}

func TestLoadTransportConfigFromEnvironment(t *testing.T) {
	t.Setenv("MCP_TRANSPORT", "http")
	t.Setenv("PORT", "9090")
	t.Setenv("HOST", "127.0.0.1")

	cfg, err := LoadTransportConfig()
	require.NoError(t, err)

	assert.Equal(t, TransportHTTP, cfg.Type)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "127.0.0.1", cfg.Host)
}

func TestLoadTransportConfigSSE(t *testing.T) {
	t.Setenv("MCP_TRANSPORT", "sse")
	t.Setenv("PORT", "")
	t.Setenv("HOST", "")

	cfg, err := LoadTransportConfig()
	require.NoError(t, err)
	assert.Equal(t, TransportSSE, cfg.Type)
}

func TestLoadTransportConfigInvalidTransport(t *testing.T) {
	t.Setenv("MCP_TRANSPORT", "websocket")

	_, err := LoadTransportConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid MCP_TRANSPORT")
}

func TestLoadTransportConfigInvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port string
	}{
		{"not a number", "eighty"},
		{"zero", "0"},
		{"negative", "-1"},
		{"too large", "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MCP_TRANSPORT", "")
			t.Setenv("PORT", tt.port)

			_, err := LoadTransportConfig()
			assert.Error(t, err)
		})
	}
}
