/*
halden exposes weather and local-search tools for a fixed location,
Halden in Norway. Forecast data comes from the MET Norway
Locationforecast API and venue suggestions from the Brave search API.
*/
package halden

import (
	"context"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	brave "github.com/mutablelogic/go-weather/pkg/brave"
	metno "github.com/mutablelogic/go-weather/pkg/metno"
	tool "github.com/mutablelogic/go-weather/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Source fetches a forecast
type Source interface {
	Forecast(ctx context.Context) (*metno.Forecast, error)
}

// Searcher performs a web search
type Searcher interface {
	Search(ctx context.Context, query string, count int) ([]brave.Result, error)
}

// handlers is the shared state for all tools. The searcher is nil when
// no search credential is configured, which degrades the search-backed
// features without affecting the forecast tools.
type handlers struct {
	source   Source
	searcher Searcher
	loc      *time.Location
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Fixed coordinates for Halden, Norway
const (
	Latitude  = 59.1242
	Longitude = 11.3872
)

const locationName = "Halden"

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the weather and search tools for Halden. The search
// key is optional; when empty the search-backed features report that
// search is disabled instead of failing.
func NewTools(searchKey string, opts ...client.ClientOpt) ([]tool.Tool, error) {
	// Forecast client
	source, err := metno.New(Latitude, Longitude, opts...)
	if err != nil {
		return nil, err
	}

	// Search client, only when a credential is configured
	var searcher Searcher
	if searchKey != "" {
		client, err := brave.New(searchKey, opts...)
		if err != nil {
			return nil, err
		}
		searcher = client
	}

	return newTools(source, searcher), nil
}

func newTools(source Source, searcher Searcher) []tool.Tool {
	h := &handlers{
		source:   source,
		searcher: searcher,
		loc:      location(),
	}
	return []tool.Tool{
		&currentWeather{h},
		&hourlyForecast{h},
		&dailyForecast{h},
		&activities{h},
		&localSearch{h},
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// Hour-of-day labels use local time for the location
func location() *time.Location {
	if loc, err := time.LoadLocation("Europe/Oslo"); err == nil {
		return loc
	}
	return time.UTC
}
