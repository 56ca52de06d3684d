package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldengate-labs/sfevents/internal/domain/events"
)

type stubSource struct {
	records []events.Record
	err     error
}

func (s *stubSource) Fetch(ctx context.Context, limit int) ([]events.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func newTestTools(records []events.Record, err error) *EventTools {
	service := events.NewService(&stubSource{records: records, err: err}, nil)
	return NewEventTools(service)
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	result, err := handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func decodeSearchResponse(t *testing.T, result *mcp.CallToolResult) events.SearchResponse {
	t.Helper()
	var response events.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))
	return response
}

func sampleRecords() []events.Record {
	return []events.Record{
		{"event_name": "Run Club", "event_start_date": "2030-06-01", "events_category": "Sports"},
		{"event_name": "Gallery Walk", "event_start_date": "2030-06-02", "events_category": "Arts"},
		{"event_name": "Swim Meet", "event_start_date": "2030-06-03", "events_category": "Sports"},
		{"event_name": "Concert", "event_start_date": "2030-06-04", "events_category": "Music"},
	}
}

func TestSearchEventsToolDefinition(t *testing.T) {
	tool := newTestTools(nil, nil).SearchEventsTool()

	assert.Equal(t, "search_sf_events", tool.Name)
	assert.NotEmpty(t, tool.Description)

	for _, param := range []string{
		"limit", "start_date_from", "start_date_to", "end_date_from", "end_date_to",
		"latitude", "longitude", "radius_km", "category", "neighborhood",
		"search", "relative_date", "use_cache",
	} {
		assert.Contains(t, tool.InputSchema.Properties, param)
	}
}

func TestSearchEventsHandler(t *testing.T) {
	tools := newTestTools(sampleRecords(), nil)

	result := callTool(t, tools.SearchEventsHandler, map[string]any{
		"category": "sport",
		"limit":    1,
	})

	require.False(t, result.IsError)
	response := decodeSearchResponse(t, result)
	assert.Equal(t, 2, response.Summary.TotalFound)
	assert.Equal(t, 1, response.Summary.Showing)
	require.Len(t, response.Events, 1)
	assert.Contains(t, response.Events[0].Category, "Sport")
}

func TestSearchEventsHandlerNoArguments(t *testing.T) {
	tools := newTestTools(sampleRecords(), nil)

	result := callTool(t, tools.SearchEventsHandler, nil)

	require.False(t, result.IsError)
	response := decodeSearchResponse(t, result)
	assert.Equal(t, events.DefaultLimit, response.Summary.Showing)
}

func TestSearchEventsHandlerLocation(t *testing.T) {
	records := []events.Record{
		{"event_name": "Near", "event_start_date": "2030-06-01", "latitude": "37.7749", "longitude": "-122.4194"},
		{"event_name": "Far", "event_start_date": "2030-06-01", "latitude": "38.5", "longitude": "-121.5"},
		{"event_name": "NoCoords", "event_start_date": "2030-06-01"},
	}
	tools := newTestTools(records, nil)

	result := callTool(t, tools.SearchEventsHandler, map[string]any{
		"latitude":  37.7749,
		"longitude": -122.4194,
		"radius_km": 10,
	})

	require.False(t, result.IsError)
	response := decodeSearchResponse(t, result)
	require.Len(t, response.Events, 1)
	assert.Equal(t, "Near", response.Events[0].Title)
	require.NotNil(t, response.Events[0].DistanceKM)
	assert.Equal(t, 1, response.Map.MarkerCount)
}

func TestSearchEventsHandlerInvalidCoordinates(t *testing.T) {
	tools := newTestTools(sampleRecords(), nil)

	result := callTool(t, tools.SearchEventsHandler, map[string]any{"latitude": 95.0})
	assert.True(t, result.IsError)

	result = callTool(t, tools.SearchEventsHandler, map[string]any{"longitude": -200.0})
	assert.True(t, result.IsError)
}

func TestSearchEventsHandlerFetchFailure(t *testing.T) {
	tools := newTestTools(nil, errors.New("socrata down"))

	result := callTool(t, tools.SearchEventsHandler, map[string]any{})
	assert.True(t, result.IsError)
}

func TestSearchEventsHandlerNilService(t *testing.T) {
	tools := &EventTools{}

	result := callTool(t, tools.SearchEventsHandler, nil)
	assert.True(t, result.IsError)
}

func TestClearCacheHandler(t *testing.T) {
	tools := newTestTools(sampleRecords(), nil)

	result := callTool(t, tools.ClearCacheHandler, nil)

	require.False(t, result.IsError)
	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))
	assert.Equal(t, "success", payload["status"])
}
