package halden

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	// Packages
	brave "github.com/mutablelogic/go-weather/pkg/brave"
	forecast "github.com/mutablelogic/go-weather/pkg/forecast"
	metno "github.com/mutablelogic/go-weather/pkg/metno"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Weather bands for activity suggestions, evaluated in priority order
const (
	warmThreshold = 15.0 // °C, above this is outdoor weather
	coldThreshold = 5.0  // °C, below this is cold weather
	windThreshold = 10.0 // m/s, above this adds a wind warning
)

// Number of entries in the hourly forecast
const hourlyEntries = 12

// Fixed failure and degradation messages. Callers receive exactly one of
// these or one fully formatted text block, never partial output.
const (
	msgCurrentFailed    = "Sorry, the current weather for Halden is not available right now."
	msgHourlyFailed     = "Sorry, the hourly forecast for Halden is not available right now."
	msgDailyFailed      = "Sorry, the 3-day forecast for Halden is not available right now."
	msgActivitiesFailed = "Sorry, activity suggestions for Halden are not available right now."
	msgSearchFailed     = "Sorry, the search request failed."
	msgSearchDisabled   = "Search is disabled. Set BRAVE_API_KEY to enable local search."
	msgSearchHint       = "Set BRAVE_API_KEY to enable local venue suggestions."
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func formatCurrent(entry metno.Entry) string {
	details := entry.Data.Instant.Details
	var b strings.Builder
	fmt.Fprintf(&b, "Current weather in %s: %s\n", locationName, forecast.Icon(entry.SymbolCode()))
	fmt.Fprintf(&b, "Temperature: %s°C\n", num(details.AirTemperature))
	fmt.Fprintf(&b, "Wind: %s m/s\n", num(details.WindSpeed))
	fmt.Fprintf(&b, "Humidity: %s%%\n", num(details.RelativeHumidity))
	fmt.Fprintf(&b, "Pressure: %s hPa", num(details.AirPressureAtSeaLevel))
	return b.String()
}

func formatHourly(entries []metno.Entry, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hourly forecast for %s:\n", locationName)
	for _, entry := range entries {
		details := entry.Data.Instant.Details
		fmt.Fprintf(&b, "\n%s %s %s°C, wind %s m/s",
			entry.Time.In(loc).Format("15:04"),
			forecast.Icon(entry.SymbolCode()),
			num(details.AirTemperature),
			num(details.WindSpeed),
		)
		if precipitation := entry.Precipitation(); precipitation > 0 {
			fmt.Fprintf(&b, " (%s mm rain)", num(precipitation))
		}
	}
	return b.String()
}

func formatDaily(days []forecast.Daily) string {
	var b strings.Builder
	fmt.Fprintf(&b, "3-day forecast for %s:\n", locationName)
	for _, day := range days {
		fmt.Fprintf(&b, "\n%s %s: %s°C to %s°C",
			forecast.Icon(day.SymbolCode),
			dayLabel(day.Date),
			num(day.MinTemp),
			num(day.MaxTemp),
		)
		// Threshold check on the raw value, before formatting
		if day.Precipitation > 0 {
			fmt.Fprintf(&b, ", %s mm precipitation", num(day.Precipitation))
		}
	}
	return b.String()
}

func msgIndoor(precipitation float64) string {
	return fmt.Sprintf("It's raining in %s (%s mm in the next hour) - a good day for indoor activities.", locationName, num(precipitation))
}

func msgOutdoor(temperature float64) string {
	return fmt.Sprintf("It's a warm %s°C in %s - great weather for outdoor activities.", num(temperature), locationName)
}

func msgCold(temperature float64) string {
	return fmt.Sprintf("It's a chilly %s°C in %s - dress warmly if you head out.", num(temperature), locationName)
}

func msgMild(temperature float64) string {
	return fmt.Sprintf("Mild weather in %s at %s°C - a pleasant day for a walk.", locationName, num(temperature))
}

func msgWindy(windSpeed float64) string {
	return fmt.Sprintf("Note: it's windy (%s m/s) - take care outdoors.", num(windSpeed))
}

func msgNoResults(query string) string {
	return fmt.Sprintf("No results found for %q.", query)
}

func formatVenues(results []brave.Result) string {
	var b strings.Builder
	b.WriteString("Nearby suggestions:")
	for _, result := range results {
		fmt.Fprintf(&b, "\n- %s\n  %s", result.Title, result.Url)
	}
	return b.String()
}

func formatResults(query string, results []brave.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Search results for %q:\n", query)
	for i, result := range results {
		fmt.Fprintf(&b, "\n%d. %s\n   %s", i+1, result.Title, result.Url)
		if result.Description != "" {
			fmt.Fprintf(&b, "\n   %s", result.Description)
		}
	}
	return b.String()
}

// num formats a measurement the way it arrived in the JSON body, with
// no trailing zeros
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// dayLabel converts a YYYY-MM-DD day key to a human-readable label
func dayLabel(date string) string {
	if t, err := time.Parse(time.DateOnly, date); err == nil {
		return t.Format("Mon, Jan 2")
	}
	return date
}
