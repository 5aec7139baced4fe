/*
metno implements an API client for the MET Norway Locationforecast API
https://api.met.no/weatherapi/locationforecast/2.0/documentation
*/
package metno

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	// Packages
	client "github.com/mutablelogic/go-client"
	weather "github.com/mutablelogic/go-weather"
	version "github.com/mutablelogic/go-weather/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	lat, lon float64
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://api.met.no/weatherapi/locationforecast/2.0"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client for a fixed latitude and longitude. The MET Norway
// terms of service require an identifying User-Agent, which is set here
// unless overridden by the caller.
func New(lat, lon float64, opts ...client.ClientOpt) (*Client, error) {
	// Check for valid coordinates
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, weather.ErrBadParameter.Withf("invalid coordinates: %v,%v", lat, lon)
	}

	// Create client - defaults are prepended so callers can override the
	// endpoint when testing against a mock upstream
	opts = append([]client.ClientOpt{
		client.OptEndpoint(endPoint),
		client.OptUserAgent("go-weather/" + version.Version() + " (https://github.com/mutablelogic/go-weather)"),
		client.OptHeader("Accept", "application/json"),
	}, opts...)
	client, err := client.New(opts...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{
		Client: client,
		lat:    lat,
		lon:    lon,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Forecast fetches the compact forecast for the client's coordinates.
// A single attempt is made; any transport, status or decode failure is
// returned as an error and an empty timeseries is treated the same way.
func (c *Client) Forecast(ctx context.Context) (*Forecast, error) {
	var response Forecast

	// Request -> Response
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("compact"), client.OptQuery(c.values())); err != nil {
		return nil, err
	}

	// An empty timeseries is no data
	if len(response.Properties.Timeseries) == 0 {
		return nil, weather.ErrUnavailable.With("forecast contains no timeseries entries")
	}

	slog.Debug("forecast fetched", "lat", c.lat, "lon", c.lon, "entries", len(response.Properties.Timeseries))

	// Return success
	return &response, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) values() url.Values {
	result := url.Values{}
	result.Set("lat", strconv.FormatFloat(c.lat, 'f', 4, 64))
	result.Set("lon", strconv.FormatFloat(c.lon, 'f', 4, 64))
	return result
}
