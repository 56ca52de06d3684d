package events

import (
	"html"
	"strings"
)

// DefaultCityCenter is the fallback map center when no marker has
// coordinates: downtown San Francisco.
var DefaultCityCenter = Coordinates{Lat: 37.7749, Lng: -122.4194}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AverageCoordinates returns the centroid of the given points, or false when
// there are none.
func AverageCoordinates(coords []Coordinates) (Coordinates, bool) {
	if len(coords) == 0 {
		return Coordinates{}, false
	}
	var lat, lng float64
	for _, c := range coords {
		lat += c.Lat
		lng += c.Lng
	}
	n := float64(len(coords))
	return Coordinates{Lat: lat / n, Lng: lng / n}, true
}

// EventDates holds the raw start/end date strings for display. They stay
// strings: the widget renders whatever the dataset provided.
type EventDates struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// EventLocation describes where an event takes place.
type EventLocation struct {
	Name         string `json:"name"`
	Neighborhood string `json:"neighborhood,omitempty"`
	Address      string `json:"address,omitempty"`
}

// EventCard is the presentation shape for one filtered event.
type EventCard struct {
	Title           string        `json:"title"`
	Dates           EventDates    `json:"dates"`
	Category        string        `json:"category,omitempty"`
	Location        EventLocation `json:"location"`
	DistanceKM      *float64      `json:"distance_km,omitempty"`
	Coordinates     *Coordinates  `json:"coordinates,omitempty"`
	Description     string        `json:"description,omitempty"`
	DetailsURL      string        `json:"details_url,omitempty"`
	RegistrationURL string        `json:"registration_url,omitempty"`
	MoreInfo        string        `json:"more_info,omitempty"`
}

// MapMarker is the map pin derived from a card with coordinates.
type MapMarker struct {
	Title       string         `json:"title"`
	Category    string         `json:"category,omitempty"`
	Coordinates Coordinates    `json:"coordinates"`
	Location    *EventLocation `json:"location,omitempty"`
	DetailsURL  string         `json:"details_url,omitempty"`
}

// MapData summarizes the markers for the map widget.
type MapData struct {
	Markers       []MapMarker `json:"markers"`
	Center        Coordinates `json:"center"`
	DefaultCenter Coordinates `json:"default_center"`
	MarkerCount   int         `json:"marker_count"`
}

// SearchSummary reports result counts for one search.
type SearchSummary struct {
	TotalFound int  `json:"total_found"`
	Showing    int  `json:"showing"`
	FromCache  bool `json:"from_cache"`
}

// SearchResponse is the structured payload returned by the search tool.
type SearchResponse struct {
	Summary SearchSummary `json:"summary"`
	Events  []EventCard   `json:"events"`
	Map     MapData       `json:"map"`
}

// BuildEventCard converts a filtered record into its presentation card.
// HTML entities are unescaped and the registration link is normalized to
// carry a scheme; missing fields simply stay empty.
func BuildEventCard(record Record) EventCard {
	link := firstNonEmpty(
		record.String("registration_url"),
		record.String("registration_link"),
		record.String("more_info"),
		record.String("event_website"),
	)
	normalizedLink := normalizeURL(link)

	var coordinates *Coordinates
	lat, okLat := record.Float(FieldLatitude)
	lng, okLng := record.Float(FieldLongitude)
	if okLat && okLng && lat != 0 && lng != 0 {
		coordinates = &Coordinates{Lat: lat, Lng: lng}
	}

	var distance *float64
	if value, ok := record.Float(FieldDistanceKM); ok {
		distance = &value
	}

	title := decodeText(record.String(FieldName))
	if title == "" {
		title = "Untitled Event"
	}

	card := EventCard{
		Title: title,
		Dates: EventDates{
			Start: record.String(FieldStartDate),
			End:   record.String(FieldEndDate),
		},
		Category: decodeText(record.String(FieldCategory)),
		Location: EventLocation{
			Name:         decodeText(firstNonEmpty(record.String(FieldLocationName), record.String("site_location_name"))),
			Neighborhood: decodeText(record.String(FieldNeighborhood)),
			Address:      decodeText(firstNonEmpty(record.String(FieldAddress), record.String("site_address"))),
		},
		DistanceKM:      distance,
		Coordinates:     coordinates,
		Description:     decodeText(record.String(FieldDetails)),
		DetailsURL:      normalizedLink,
		RegistrationURL: decodeText(record.String("registration_url")),
	}
	if record.String("more_info") != "" {
		card.MoreInfo = normalizedLink
	}
	return card
}

// BuildMapData derives the marker summary from a set of cards. Cards without
// coordinates contribute no marker; the center is the marker centroid or the
// default city center when there are no markers.
func BuildMapData(cards []EventCard) MapData {
	markers := make([]MapMarker, 0, len(cards))
	coords := make([]Coordinates, 0, len(cards))

	for _, card := range cards {
		if card.Coordinates == nil {
			continue
		}
		var location *EventLocation
		if card.Location != (EventLocation{}) {
			loc := card.Location
			location = &loc
		}
		markers = append(markers, MapMarker{
			Title:       card.Title,
			Category:    card.Category,
			Coordinates: *card.Coordinates,
			Location:    location,
			DetailsURL:  firstNonEmpty(card.DetailsURL, card.RegistrationURL),
		})
		coords = append(coords, *card.Coordinates)
	}

	center, ok := AverageCoordinates(coords)
	if !ok {
		center = DefaultCityCenter
	}

	return MapData{
		Markers:       markers,
		Center:        center,
		DefaultCenter: DefaultCityCenter,
		MarkerCount:   len(markers),
	}
}

func decodeText(text string) string {
	return html.UnescapeString(text)
}

func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
