package events

import (
	"fmt"
	"strconv"
)

// Record is a raw event row from the data.sfgov.org dataset. The dataset
// guarantees nothing: fields may be missing, empty, or carry the wrong type
// (coordinates regularly arrive as strings). Values are coerced at the point
// of consumption instead of at decode time so that a malformed field only
// degrades the check that reads it.
type Record map[string]any

// Well-known record fields. Identity is positional within a batch; the
// dataset exposes no stable key.
const (
	FieldName         = "event_name"
	FieldDetails      = "event_details"
	FieldStartDate    = "event_start_date"
	FieldEndDate      = "event_end_date"
	FieldCategory     = "events_category"
	FieldNeighborhood = "analysis_neighborhood"
	FieldLocationName = "location_name"
	FieldAddress      = "address"
	FieldLatitude     = "latitude"
	FieldLongitude    = "longitude"
	FieldDistanceKM   = "distance_km"
)

// String returns the field as a string, or "" when absent or not stringly.
// Numeric values are formatted rather than dropped since Socrata sometimes
// re-types columns between dataset revisions.
func (r Record) String(key string) string {
	value, ok := r[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Float returns the field coerced to a float64. The ok result is false when
// the field is absent or cannot be parsed; a present-but-zero value parses
// fine and is the caller's business (the dataset uses 0 for "no coordinate").
func (r Record) Float(key string) (float64, bool) {
	value, ok := r[key]
	if !ok || value == nil {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// Clone returns a shallow copy of the record. Filters that annotate a record
// (distance attachment) must never mutate the caller's batch.
func (r Record) Clone() Record {
	clone := make(Record, len(r)+1)
	for key, value := range r {
		clone[key] = value
	}
	return clone
}
