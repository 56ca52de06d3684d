// Package internal documents the SF events MCP server internals.
//
// The internal tree is organized by responsibility:
// - domain/events: the filtering and ranking pipeline, cards, and map data
// - socrata: HTTP client for the data.sfgov.org events dataset
// - cache: TTL cache for fetched dataset payloads
// - mcp: MCP server, transports, tools, resources, and prompts
// - config: environment configuration and logging setup
//
// Code in internal/ is not meant for external import.
package internal
