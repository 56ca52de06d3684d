package events

import (
	"math"
	"sort"
	"strings"
)

const (
	// DefaultRadiusKM is applied when a non-positive search radius is given.
	DefaultRadiusKM = 5.0

	// DefaultLimit and MaxLimit bound how many filtered events a caller may
	// request.
	DefaultLimit = 3
	MaxLimit     = 25
)

// Params is the filter configuration for one batch. Zero values mean "filter
// not requested"; every filter is a passthrough when its parameters are
// absent. Date bounds are inclusive ISO date strings.
type Params struct {
	StartDateFrom string
	StartDateTo   string
	EndDateFrom   string
	EndDateTo     string

	// Latitude and Longitude activate proximity filtering only when both
	// are present.
	Latitude  *float64
	Longitude *float64
	RadiusKM  float64

	Category     string
	Neighborhood string
	Search       string
	RelativeDate string
}

// ClampLimit coerces a requested result count into [1, MaxLimit], falling
// back to DefaultLimit for non-positive input.
func ClampLimit(limit int) int {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return limit
}

// ApplyAllFilters runs every filter over the batch in a fixed order and
// returns the surviving records. Order matters: the relative-date window must
// be resolved before the date-range filter reads its bounds, and proximity
// filtering runs last because it sorts the output by distance.
//
// The input batch is never mutated; records that gain a distance annotation
// are copied first.
func ApplyAllFilters(records []Record, params Params) []Record {
	filtered := FilterUpcoming(records)

	if params.RelativeDate != "" {
		from, to := RelativeDateWindow(params.RelativeDate)
		if from != "" && to != "" {
			// Explicit bounds win over the derived window.
			if params.StartDateFrom == "" {
				params.StartDateFrom = from
			}
			if params.StartDateTo == "" {
				params.StartDateTo = to
			}
		}
	}

	filtered = FilterByDate(filtered, params.StartDateFrom, params.StartDateTo, params.EndDateFrom, params.EndDateTo)
	filtered = FilterByCategory(filtered, params.Category)
	filtered = FilterByNeighborhood(filtered, params.Neighborhood)
	filtered = FilterBySearch(filtered, params.Search)
	filtered = FilterByLocation(filtered, params.Latitude, params.Longitude, params.RadiusKM)
	return filtered
}

// FilterUpcoming keeps records that have not yet concluded. A record with
// neither a parseable start nor end date is kept: an unknown date must never
// silently drop content.
func FilterUpcoming(records []Record) []Record {
	now := today()
	upcoming := make([]Record, 0, len(records))

	for _, record := range records {
		start, hasStart := ParseDateString(record.String(FieldStartDate))
		end, hasEnd := ParseDateString(record.String(FieldEndDate))

		switch {
		case hasStart && !start.Before(now):
			upcoming = append(upcoming, record)
		case hasEnd && !end.Before(now):
			upcoming = append(upcoming, record)
		case !hasStart && !hasEnd:
			upcoming = append(upcoming, record)
		}
	}

	return upcoming
}

// FilterByDate drops records whose parsed start or end date falls outside the
// given inclusive bounds. A record whose date cannot be parsed is not
// excluded by that bound — absence of information cannot fail a check.
func FilterByDate(records []Record, startFrom, startTo, endFrom, endTo string) []Record {
	if startFrom == "" && startTo == "" && endFrom == "" && endTo == "" {
		return records
	}

	boundStartFrom, hasStartFrom := ParseDateString(startFrom)
	boundStartTo, hasStartTo := ParseDateString(startTo)
	boundEndFrom, hasEndFrom := ParseDateString(endFrom)
	boundEndTo, hasEndTo := ParseDateString(endTo)

	filtered := make([]Record, 0, len(records))

	for _, record := range records {
		start, hasStart := ParseDateString(record.String(FieldStartDate))
		end, hasEnd := ParseDateString(record.String(FieldEndDate))

		if hasStartFrom && hasStart && start.Before(boundStartFrom) {
			continue
		}
		if hasStartTo && hasStart && start.After(boundStartTo) {
			continue
		}
		if hasEndFrom && hasEnd && end.Before(boundEndFrom) {
			continue
		}
		if hasEndTo && hasEnd && end.After(boundEndTo) {
			continue
		}

		filtered = append(filtered, record)
	}

	return filtered
}

// FilterByCategory keeps records whose category field contains the query,
// case-insensitive.
func FilterByCategory(records []Record, category string) []Record {
	return filterBySubstring(records, FieldCategory, category)
}

// FilterByNeighborhood keeps records whose neighborhood field contains the
// query, case-insensitive.
func FilterByNeighborhood(records []Record, neighborhood string) []Record {
	return filterBySubstring(records, FieldNeighborhood, neighborhood)
}

func filterBySubstring(records []Record, field, query string) []Record {
	if query == "" {
		return records
	}

	queryLower := strings.ToLower(query)
	filtered := make([]Record, 0, len(records))
	for _, record := range records {
		if strings.Contains(strings.ToLower(record.String(field)), queryLower) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// searchFields are concatenated into the free-text haystack, in this order.
var searchFields = []string{
	FieldName,
	FieldDetails,
	FieldNeighborhood,
	FieldCategory,
	FieldLocationName,
	FieldAddress,
}

// FilterBySearch keeps records matching a free-text query against the joined
// name/details/location fields, either by plain substring containment or by
// fuzzy similarity.
func FilterBySearch(records []Record, search string) []Record {
	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return records
	}

	tokens := tokenizeWords(query)
	filtered := make([]Record, 0, len(records))

	for _, record := range records {
		parts := make([]string, 0, len(searchFields))
		for _, field := range searchFields {
			if value := record.String(field); value != "" {
				parts = append(parts, value)
			}
		}
		haystack := strings.ToLower(strings.Join(parts, " "))
		if haystack == "" {
			continue
		}

		if strings.Contains(haystack, query) || fuzzyMatch(query, tokens, haystack) {
			filtered = append(filtered, record)
		}
	}

	return filtered
}

// FilterByLocation keeps records within radiusKM of the given center, sorted
// nearest first, each annotated with a distance_km field on a copy of the
// record. Records with missing, unparsable, or zero-valued coordinates are
// excluded — the dataset writes 0 where it has no coordinate. Both center
// components must be present for the filter to apply at all.
func FilterByLocation(records []Record, latitude, longitude *float64, radiusKM float64) []Record {
	if latitude == nil || longitude == nil {
		return records
	}
	if radiusKM <= 0 {
		radiusKM = DefaultRadiusKM
	}

	filtered := make([]Record, 0, len(records))

	for _, record := range records {
		lat, okLat := record.Float(FieldLatitude)
		lon, okLon := record.Float(FieldLongitude)
		if !okLat || !okLon || lat == 0 || lon == 0 {
			continue
		}

		distance := Distance(*latitude, *longitude, lat, lon)
		if distance <= radiusKM {
			annotated := record.Clone()
			annotated[FieldDistanceKM] = math.Round(distance*100) / 100
			filtered = append(filtered, annotated)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return distanceOf(filtered[i]) < distanceOf(filtered[j])
	})

	return filtered
}

func distanceOf(record Record) float64 {
	if distance, ok := record.Float(FieldDistanceKM); ok {
		return distance
	}
	return math.Inf(1)
}
