package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldengate-labs/sfevents/internal/domain/events"
)

type noopSource struct{}

func (noopSource) Fetch(ctx context.Context, limit int) ([]events.Record, error) {
	return nil, nil
}

func TestNewServer(t *testing.T) {
	service := events.NewService(noopSource{}, nil)

	srv := NewServer(Config{
		Name:      "sf-rec-events",
		Version:   "test",
		Transport: "stdio",
	}, service)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.MCPServer())
	assert.NoError(t, srv.Shutdown(context.Background()))
}
