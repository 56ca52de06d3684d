package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goldengate-labs/sfevents/internal/config"
	"github.com/goldengate-labs/sfevents/internal/domain/events"
	"github.com/goldengate-labs/sfevents/internal/socrata"
)

var (
	searchLimit        int
	searchStartFrom    string
	searchStartTo      string
	searchEndFrom      string
	searchEndTo        string
	searchLatitude     float64
	searchLongitude    float64
	searchRadiusKM     float64
	searchCategory     string
	searchNeighborhood string
	searchText         string
	searchRelativeDate string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search events from the command line",
	Long: `Run one fetch-and-filter pass against the dataset and print the JSON
response. Useful for trying out filters without an MCP client.

Examples:
  # Three upcoming events (the default limit)
  sfevents search

  # Sports events this weekend
  sfevents search --category sports --relative-date weekend

  # Events within 2 km of Golden Gate Park
  sfevents search --lat 37.7694 --lng -122.4862 --radius 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd)
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", events.DefaultLimit, "maximum number of events to return")
	searchCmd.Flags().StringVar(&searchStartFrom, "start-from", "", "events starting on or after this date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchStartTo, "start-to", "", "events starting on or before this date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchEndFrom, "end-from", "", "events ending on or after this date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchEndTo, "end-to", "", "events ending on or before this date (YYYY-MM-DD)")
	searchCmd.Flags().Float64Var(&searchLatitude, "lat", 0, "center latitude for proximity search")
	searchCmd.Flags().Float64Var(&searchLongitude, "lng", 0, "center longitude for proximity search")
	searchCmd.Flags().Float64Var(&searchRadiusKM, "radius", events.DefaultRadiusKM, "search radius in kilometers")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "filter by category (e.g. Sports, Arts)")
	searchCmd.Flags().StringVar(&searchNeighborhood, "neighborhood", "", "filter by neighborhood")
	searchCmd.Flags().StringVar(&searchText, "search", "", "free-text search")
	searchCmd.Flags().StringVar(&searchRelativeDate, "relative-date", "", "relative date keyword (today, tomorrow, weekend)")
}

func runSearch(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	config.NewLogger(cfg.Logging)

	params := events.Params{
		StartDateFrom: searchStartFrom,
		StartDateTo:   searchStartTo,
		EndDateFrom:   searchEndFrom,
		EndDateTo:     searchEndTo,
		RadiusKM:      searchRadiusKM,
		Category:      searchCategory,
		Neighborhood:  searchNeighborhood,
		Search:        searchText,
		RelativeDate:  searchRelativeDate,
	}
	// Only treat coordinates as set when both flags were given; 0 is a real
	// latitude but not a plausible search center for this dataset.
	if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
		params.Latitude = &searchLatitude
		params.Longitude = &searchLongitude
	}

	source := socrata.NewClient(cfg.Socrata.BaseURL, cfg.Socrata.AppToken, socrata.WithTimeout(cfg.Socrata.Timeout))
	service := events.NewService(source, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	response, err := service.Search(ctx, events.Query{
		Params: params,
		Limit:  searchLimit,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	encoded, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}
