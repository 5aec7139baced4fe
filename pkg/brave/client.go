/*
brave implements an API client for the Brave web search API
https://api.search.brave.com/app/documentation
*/
package brave

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
}

// Result is a single web search result
type Result struct {
	Title       string `json:"title"`
	Url         string `json:"url"`
	Description string `json:"description,omitempty"`
}

type respSearch struct {
	Web struct {
		Results []Result `json:"results"`
	} `json:"web"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://api.search.brave.com/res/v1"

	// All queries are scoped to Norway
	countryCode = "NO"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client with the given API key
func New(ApiKey string, opts ...client.ClientOpt) (*Client, error) {
	// Check for missing API key
	if ApiKey == "" {
		return nil, weather.ErrBadParameter.With("missing API key")
	}

	// Create client - defaults are prepended so callers can override the
	// endpoint when testing against a mock upstream
	opts = append([]client.ClientOpt{
		client.OptEndpoint(endPoint),
		client.OptHeader("X-Subscription-Token", ApiKey),
		client.OptHeader("Accept", "application/json"),
		client.OptUserAgent("go-weather/" + version.Version() + " (https://github.com/mutablelogic/go-weather)"),
	}, opts...)
	client, err := client.New(opts...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{
		Client: client,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Search issues a web search for the query, returning at most count
// results in upstream order. A zero-length result list is a valid
// response, distinct from an error.
func (c *Client) Search(ctx context.Context, query string, count int) ([]Result, error) {
	var response respSearch

	// Check parameters
	if query == "" {
		return nil, weather.ErrBadParameter.With("missing query")
	}
	if count < 1 {
		return nil, weather.ErrBadParameter.Withf("invalid count: %d", count)
	}

	// Request -> Response
	values := url.Values{}
	values.Set("q", query)
	values.Set("count", strconv.Itoa(count))
	values.Set("country", countryCode)
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("web/search"), client.OptQuery(values)); err != nil {
		return nil, err
	}

	slog.Debug("search completed", "query", query, "results", len(response.Web.Results))

	// Return success - which includes the degenerate case of no results
	return response.Web.Results, nil
}
