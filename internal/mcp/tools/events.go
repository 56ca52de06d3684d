package tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/goldengate-labs/sfevents/internal/domain/events"
)

// EventTools provides MCP tools for searching SF Rec & Parks events.
type EventTools struct {
	eventsService *events.Service
}

// NewEventTools creates a new EventTools instance.
func NewEventTools(eventsService *events.Service) *EventTools {
	return &EventTools{eventsService: eventsService}
}

// SearchEventsTool returns the MCP tool definition for searching events.
func (t *EventTools) SearchEventsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_sf_events",
		Description: "Search and display San Francisco Recreation & Parks events. Supports date ranges, relative dates (today, tomorrow, weekend), proximity search, category, neighborhood, and free-text filters.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of events to return (default: 3, max: 25)",
					"default":     events.DefaultLimit,
				},
				"start_date_from": map[string]interface{}{
					"type":        "string",
					"description": "Filter events starting on or after this date (YYYY-MM-DD)",
				},
				"start_date_to": map[string]interface{}{
					"type":        "string",
					"description": "Filter events starting on or before this date (YYYY-MM-DD)",
				},
				"end_date_from": map[string]interface{}{
					"type":        "string",
					"description": "Filter events ending on or after this date (YYYY-MM-DD)",
				},
				"end_date_to": map[string]interface{}{
					"type":        "string",
					"description": "Filter events ending on or before this date (YYYY-MM-DD)",
				},
				"latitude": map[string]interface{}{
					"type":        "number",
					"description": "Center latitude for proximity search (-90 to 90)",
				},
				"longitude": map[string]interface{}{
					"type":        "number",
					"description": "Center longitude for proximity search (-180 to 180)",
				},
				"radius_km": map[string]interface{}{
					"type":        "number",
					"description": "Search radius in kilometers (default: 5)",
					"default":     events.DefaultRadiusKM,
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Filter by category (e.g., Sports, Arts)",
				},
				"neighborhood": map[string]interface{}{
					"type":        "string",
					"description": "Filter by neighborhood",
				},
				"search": map[string]interface{}{
					"type":        "string",
					"description": "Free-text search across event title, details, and location",
				},
				"relative_date": map[string]interface{}{
					"type":        "string",
					"description": "Relative date keyword (e.g., today, tomorrow, weekend)",
				},
				"use_cache": map[string]interface{}{
					"type":        "boolean",
					"description": "Use cached API payloads when available (default: true)",
					"default":     true,
				},
			},
		},
	}
}

// SearchEventsHandler handles the search_sf_events tool call.
func (t *EventTools) SearchEventsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t == nil || t.eventsService == nil {
		return mcp.NewToolResultError("events service not configured"), nil
	}

	args := struct {
		Limit         int      `json:"limit"`
		StartDateFrom string   `json:"start_date_from"`
		StartDateTo   string   `json:"start_date_to"`
		EndDateFrom   string   `json:"end_date_from"`
		EndDateTo     string   `json:"end_date_to"`
		Latitude      *float64 `json:"latitude"`
		Longitude     *float64 `json:"longitude"`
		RadiusKM      float64  `json:"radius_km"`
		Category      string   `json:"category"`
		Neighborhood  string   `json:"neighborhood"`
		Search        string   `json:"search"`
		RelativeDate  string   `json:"relative_date"`
		UseCache      bool     `json:"use_cache"`
	}{
		Limit:    events.DefaultLimit,
		RadiusKM: events.DefaultRadiusKM,
		UseCache: true,
	}

	if request.Params.Arguments != nil {
		data, err := json.Marshal(request.Params.Arguments)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
		}
		if err := json.Unmarshal(data, &args); err != nil {
			return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
		}
	}

	if args.Latitude != nil && (*args.Latitude < -90 || *args.Latitude > 90) {
		return mcp.NewToolResultErrorf("invalid latitude: %v (must be between -90 and 90)", *args.Latitude), nil
	}
	if args.Longitude != nil && (*args.Longitude < -180 || *args.Longitude > 180) {
		return mcp.NewToolResultErrorf("invalid longitude: %v (must be between -180 and 180)", *args.Longitude), nil
	}

	query := events.Query{
		Params: events.Params{
			StartDateFrom: args.StartDateFrom,
			StartDateTo:   args.StartDateTo,
			EndDateFrom:   args.EndDateFrom,
			EndDateTo:     args.EndDateTo,
			Latitude:      args.Latitude,
			Longitude:     args.Longitude,
			RadiusKM:      args.RadiusKM,
			Category:      args.Category,
			Neighborhood:  args.Neighborhood,
			Search:        args.Search,
			RelativeDate:  args.RelativeDate,
		},
		Limit:    args.Limit,
		UseCache: args.UseCache,
	}

	response, err := t.eventsService.Search(ctx, query)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("failed to search events", err), nil
	}

	return toolResultJSON(response)
}

// ClearCacheTool returns the MCP tool definition for clearing the fetch cache.
func (t *EventTools) ClearCacheTool() mcp.Tool {
	return mcp.Tool{
		Name:        "clear_cache",
		Description: "Clear the cached dataset payloads so the next search fetches fresh data.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// ClearCacheHandler handles the clear_cache tool call.
func (t *EventTools) ClearCacheHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t == nil || t.eventsService == nil {
		return mcp.NewToolResultError("events service not configured"), nil
	}

	t.eventsService.ClearCache()

	return toolResultJSON(map[string]string{
		"status":  "success",
		"message": "Cache cleared successfully",
	})
}
