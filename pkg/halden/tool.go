package halden

import (
	"context"
	"encoding/json"
	"log/slog"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	weather "github.com/mutablelogic/go-weather"
	forecast "github.com/mutablelogic/go-weather/pkg/forecast"
	tool "github.com/mutablelogic/go-weather/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type currentWeather struct {
	*handlers
}

type hourlyForecast struct {
	*handlers
}

type dailyForecast struct {
	*handlers
}

type activities struct {
	*handlers
}

type localSearch struct {
	*handlers
}

var _ tool.Tool = (*currentWeather)(nil)
var _ tool.Tool = (*hourlyForecast)(nil)
var _ tool.Tool = (*dailyForecast)(nil)
var _ tool.Tool = (*activities)(nil)
var _ tool.Tool = (*localSearch)(nil)

///////////////////////////////////////////////////////////////////////////////
// CURRENT WEATHER

func (*currentWeather) Name() string {
	return "halden_current_weather"
}

func (*currentWeather) Description() string {
	return "Get current weather conditions in Halden, Norway including temperature, wind, humidity, and pressure."
}

// Return the JSON schema for the tool input
func (*currentWeather) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[EmptyRequest](nil)
}

// Run the tool with the given input
func (c *currentWeather) Run(ctx context.Context, _ json.RawMessage) (any, error) {
	response, err := c.source.Forecast(ctx)
	if err != nil {
		slog.Warn("forecast fetch failed", "tool", c.Name(), "err", err)
		return msgCurrentFailed, nil
	}
	return formatCurrent(response.Entries()[0]), nil
}

///////////////////////////////////////////////////////////////////////////////
// HOURLY FORECAST

func (*hourlyForecast) Name() string {
	return "halden_hourly_forecast"
}

func (*hourlyForecast) Description() string {
	return "Get an hour-by-hour weather forecast for Halden, Norway for the next 12 hours."
}

// Return the JSON schema for the tool input
func (*hourlyForecast) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[EmptyRequest](nil)
}

// Run the tool with the given input
func (h *hourlyForecast) Run(ctx context.Context, _ json.RawMessage) (any, error) {
	response, err := h.source.Forecast(ctx)
	if err != nil {
		slog.Warn("forecast fetch failed", "tool", h.Name(), "err", err)
		return msgHourlyFailed, nil
	}

	// First 12 entries, fewer when the series is shorter
	entries := response.Entries()
	if len(entries) > hourlyEntries {
		entries = entries[:hourlyEntries]
	}
	return formatHourly(entries, h.loc), nil
}

///////////////////////////////////////////////////////////////////////////////
// 3-DAY FORECAST

func (*dailyForecast) Name() string {
	return "halden_daily_forecast"
}

func (*dailyForecast) Description() string {
	return "Get a 3-day weather forecast for Halden, Norway with daily temperature ranges and precipitation."
}

// Return the JSON schema for the tool input
func (*dailyForecast) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[EmptyRequest](nil)
}

// Run the tool with the given input
func (d *dailyForecast) Run(ctx context.Context, _ json.RawMessage) (any, error) {
	response, err := d.source.Forecast(ctx)
	if err != nil {
		slog.Warn("forecast fetch failed", "tool", d.Name(), "err", err)
		return msgDailyFailed, nil
	}
	return formatDaily(forecast.SummarizeByDay(response.Entries())), nil
}

///////////////////////////////////////////////////////////////////////////////
// ACTIVITY SUGGESTIONS

func (*activities) Name() string {
	return "halden_activities"
}

func (*activities) Description() string {
	return "Suggest activities in Halden, Norway based on the current weather, with nearby venue suggestions when search is enabled."
}

// Return the JSON schema for the tool input
func (*activities) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[EmptyRequest](nil)
}

// Run the tool with the given input
func (a *activities) Run(ctx context.Context, _ json.RawMessage) (any, error) {
	response, err := a.source.Forecast(ctx)
	if err != nil {
		slog.Warn("forecast fetch failed", "tool", a.Name(), "err", err)
		return msgActivitiesFailed, nil
	}

	// Pick a suggestion from the first mutually exclusive weather band
	// that applies: precipitation, then warm, then cold, then mild
	entry := response.Entries()[0]
	details := entry.Data.Instant.Details
	var text, query string
	switch {
	case entry.Precipitation() > 0:
		text = msgIndoor(entry.Precipitation())
		query = "indoor activities museums cafes"
	case details.AirTemperature > warmThreshold:
		text = msgOutdoor(details.AirTemperature)
		query = "outdoor activities hiking parks"
	case details.AirTemperature < coldThreshold:
		text = msgCold(details.AirTemperature)
		query = "winter activities"
	default:
		text = msgMild(details.AirTemperature)
		query = "walking tours sights"
	}

	// The wind warning is additive, not a band of its own
	if details.WindSpeed > windThreshold {
		text += "\n\n" + msgWindy(details.WindSpeed)
	}

	// Without a credential the venue section is replaced by a hint
	if a.searcher == nil {
		return text + "\n\n" + msgSearchHint, nil
	}

	// A failed search degrades to no venue section
	results, err := a.searcher.Search(ctx, query+" "+locationName+" Norway", venueSearchCount)
	if err != nil {
		slog.Warn("venue search failed", "tool", a.Name(), "err", err)
		return text, nil
	}
	if len(results) > 0 {
		text += "\n\n" + formatVenues(results)
	}
	return text, nil
}

///////////////////////////////////////////////////////////////////////////////
// LOCAL SEARCH

func (*localSearch) Name() string {
	return "halden_search"
}

func (*localSearch) Description() string {
	return "Search the web for local information about Halden, Norway."
}

// Return the JSON schema for the tool input
func (*localSearch) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[SearchRequest](nil)
	if err != nil {
		return nil, err
	}

	// Add validation constraints for count
	if count, ok := schema.Properties["count"]; ok && count != nil {
		min := float64(1)
		max := float64(maxSearchCount)
		count.Minimum = &min
		count.Maximum = &max
	}

	return schema, nil
}

// Run the tool with the given input
func (s *localSearch) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req SearchRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, weather.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}

	// Validate required fields
	if req.Query == "" {
		return nil, weather.ErrBadParameter.With("query is required")
	}
	if req.Count == 0 {
		req.Count = defaultSearchCount
	}
	if req.Count < 1 || req.Count > maxSearchCount {
		return nil, weather.ErrBadParameter.Withf("count must be between 1 and %d", maxSearchCount)
	}

	// Without a credential search is disabled, not an error
	if s.searcher == nil {
		return msgSearchDisabled, nil
	}

	results, err := s.searcher.Search(ctx, req.Query+" "+locationName+" Norway", req.Count)
	if err != nil {
		slog.Warn("search failed", "tool", s.Name(), "err", err)
		return msgSearchFailed, nil
	}
	if len(results) == 0 {
		return msgNoResults(req.Query), nil
	}
	return formatResults(req.Query, results), nil
}
