package halden

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	// Packages
	assert "github.com/stretchr/testify/assert"
	brave "github.com/mutablelogic/go-weather/pkg/brave"
	metno "github.com/mutablelogic/go-weather/pkg/metno"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

type fakeSource struct {
	forecast *metno.Forecast
	err      error
}

func (f *fakeSource) Forecast(_ context.Context) (*metno.Forecast, error) {
	return f.forecast, f.err
}

type fakeSearcher struct {
	results   []brave.Result
	err       error
	calls     int
	lastQuery string
	lastCount int
}

func (f *fakeSearcher) Search(_ context.Context, query string, count int) ([]brave.Result, error) {
	f.calls++
	f.lastQuery = query
	f.lastCount = count
	return f.results, f.err
}

func makeEntry(t *testing.T, ts string, temp, wind, humidity, pressure float64, code string, precipitation float64) metno.Entry {
	t.Helper()
	var e metno.Entry
	when, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		t.Fatal(err)
	}
	e.Time = when
	e.Data.Instant.Details.AirTemperature = temp
	e.Data.Instant.Details.WindSpeed = wind
	e.Data.Instant.Details.RelativeHumidity = humidity
	e.Data.Instant.Details.AirPressureAtSeaLevel = pressure
	if code != "" || precipitation != 0 {
		next := new(metno.NextHour)
		next.Summary.SymbolCode = code
		next.Details.PrecipitationAmount = precipitation
		e.Data.Next1Hours = next
	}
	return e
}

func makeForecast(entries ...metno.Entry) *metno.Forecast {
	forecast := new(metno.Forecast)
	forecast.Properties.Timeseries = entries
	return forecast
}

// testHandlers uses UTC so that hour labels are independent of the
// host timezone database
func testHandlers(source Source, searcher Searcher) *handlers {
	return &handlers{source: source, searcher: searcher, loc: time.UTC}
}

func runTool(t *testing.T, tool interface {
	Run(context.Context, json.RawMessage) (any, error)
}, input string) string {
	t.Helper()
	var raw json.RawMessage
	if input != "" {
		raw = json.RawMessage(input)
	}
	result, err := tool.Run(context.Background(), raw)
	if err != nil {
		t.Fatal(err)
	}
	text, ok := result.(string)
	if !ok {
		t.Fatalf("expected string result, got %T", result)
	}
	return text
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_tools_001(t *testing.T) {
	assert := assert.New(t)

	// Without a search key the tools are still created
	tools, err := NewTools("")
	assert.NoError(err)
	assert.Len(tools, 5)

	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name())
		assert.NotEmpty(tool.Description())
		schema, err := tool.Schema()
		assert.NoError(err)
		assert.NotNil(schema)
	}
	assert.Contains(names, "halden_current_weather")
	assert.Contains(names, "halden_hourly_forecast")
	assert.Contains(names, "halden_daily_forecast")
	assert.Contains(names, "halden_activities")
	assert.Contains(names, "halden_search")
}

func Test_current_001(t *testing.T) {
	assert := assert.New(t)

	// Temperature 3°C, wind 12 m/s, no rain
	source := &fakeSource{forecast: makeForecast(
		makeEntry(t, "2024-01-01T12:00:00Z", 3, 12, 78, 1003.4, "cloudy", 0),
	)}
	text := runTool(t, &currentWeather{testHandlers(source, nil)}, "")

	assert.Contains(text, "Current weather in Halden")
	assert.Contains(text, "☁️")
	assert.Contains(text, "3°C")
	assert.Contains(text, "12 m/s")
	assert.Contains(text, "78%")
	assert.Contains(text, "1003.4 hPa")

	// The wind warning belongs to the activities tool only
	assert.NotContains(text, "windy")
}

func Test_current_002(t *testing.T) {
	assert := assert.New(t)

	source := &fakeSource{err: context.DeadlineExceeded}
	text := runTool(t, &currentWeather{testHandlers(source, nil)}, "")
	assert.Equal(msgCurrentFailed, text)
}

func Test_hourly_001(t *testing.T) {
	assert := assert.New(t)

	// Fifteen entries are cut to twelve lines; the precipitation
	// annotation appears only where the amount is positive
	entries := make([]metno.Entry, 0, 15)
	for i := 0; i < 15; i++ {
		ts := time.Date(2024, 1, 1, i, 0, 0, 0, time.UTC).Format(time.RFC3339)
		entries = append(entries, makeEntry(t, ts, 5, 2, 80, 1000, "fair_day", 0))
	}
	entries[1].Data.Next1Hours.Summary.SymbolCode = "lightrain"
	entries[1].Data.Next1Hours.Details.PrecipitationAmount = 0.4

	source := &fakeSource{forecast: makeForecast(entries...)}
	text := runTool(t, &hourlyForecast{testHandlers(source, nil)}, "")

	lines := strings.Split(text, "\n")
	assert.Equal("Hourly forecast for Halden:", lines[0])
	assert.Len(lines, 14) // header, blank separator, 12 entries
	assert.Contains(text, "00:00")
	assert.Contains(text, "11:00")
	assert.NotContains(text, "12:00")
	assert.Contains(text, "01:00 🌧️ 5°C, wind 2 m/s (0.4 mm rain)")
	assert.Equal(1, strings.Count(text, "mm rain"))
}

func Test_hourly_002(t *testing.T) {
	assert := assert.New(t)

	// A series shorter than twelve entries is not an error
	source := &fakeSource{forecast: makeForecast(
		makeEntry(t, "2024-01-01T00:00:00Z", 5, 2, 80, 1000, "fair_day", 0),
		makeEntry(t, "2024-01-01T01:00:00Z", 6, 2, 80, 1000, "fair_day", 0),
	)}
	text := runTool(t, &hourlyForecast{testHandlers(source, nil)}, "")
	assert.Contains(text, "00:00")
	assert.Contains(text, "01:00")
}

func Test_hourly_003(t *testing.T) {
	assert := assert.New(t)

	source := &fakeSource{err: context.DeadlineExceeded}
	text := runTool(t, &hourlyForecast{testHandlers(source, nil)}, "")
	assert.Equal(msgHourlyFailed, text)
}

func Test_daily_001(t *testing.T) {
	assert := assert.New(t)

	source := &fakeSource{forecast: makeForecast(
		makeEntry(t, "2024-01-01T06:00:00Z", 2, 2, 80, 1000, "cloudy", 0),
		makeEntry(t, "2024-01-01T12:00:00Z", 8, 2, 80, 1000, "cloudy", 0),
		makeEntry(t, "2024-01-02T06:00:00Z", -1, 2, 80, 1000, "snow", 2.5),
		makeEntry(t, "2024-01-02T12:00:00Z", 1, 2, 80, 1000, "snow", 1.5),
	)}
	text := runTool(t, &dailyForecast{testHandlers(source, nil)}, "")

	assert.Contains(text, "3-day forecast for Halden:")
	assert.Contains(text, "☁️ Mon, Jan 1: 2°C to 8°C")
	assert.Contains(text, "❄️ Tue, Jan 2: -1°C to 1°C, 4 mm precipitation")

	// The dry day carries no precipitation annotation
	assert.Equal(1, strings.Count(text, "precipitation"))
}

func Test_daily_002(t *testing.T) {
	assert := assert.New(t)

	source := &fakeSource{err: context.DeadlineExceeded}
	text := runTool(t, &dailyForecast{testHandlers(source, nil)}, "")
	assert.Equal(msgDailyFailed, text)
}

func Test_activities_001(t *testing.T) {
	assert := assert.New(t)

	// Warm, dry, calm, no credential: outdoor message plus the
	// enable-search hint, and no search call is attempted
	source := &fakeSource{forecast: makeForecast(
		makeEntry(t, "2024-06-01T12:00:00Z", 18, 4, 60, 1015, "clearsky_day", 0),
	)}
	text := runTool(t, &activities{testHandlers(source, nil)}, "")

	assert.Contains(text, "great weather for outdoor activities")
	assert.Contains(text, msgSearchHint)
	assert.NotContains(text, "windy")
}

func Test_activities_002(t *testing.T) {
	assert := assert.New(t)

	// Raining and windy: indoor message first, wind warning after
	source := &fakeSource{forecast: makeForecast(
		makeEntry(t, "2024-06-01T12:00:00Z", 10, 15, 90, 995, "heavyrain", 1.2),
	)}
	searcher := &fakeSearcher{err: context.DeadlineExceeded}
	text := runTool(t, &activities{testHandlers(source, searcher)}, "")

	indoor := strings.Index(text, "indoor activities")
	windy := strings.Index(text, "windy")
	assert.True(indoor >= 0, "missing indoor message")
	assert.True(windy > indoor, "wind warning must follow the indoor message")

	// The failed search degrades to no venue section
	assert.Equal(1, searcher.calls)
	assert.NotContains(text, "Nearby suggestions")
	assert.NotContains(text, msgSearchHint)
}

func Test_activities_003(t *testing.T) {
	assert := assert.New(t)

	// Cold band, with venue suggestions appended
	source := &fakeSource{forecast: makeForecast(
		makeEntry(t, "2024-01-01T12:00:00Z", 2, 3, 80, 1010, "snow", 0),
	)}
	searcher := &fakeSearcher{results: []brave.Result{
		{Title: "Halden Ski Centre", Url: "https://example.com/ski"},
		{Title: "Ice Rink", Url: "https://example.com/rink"},
	}}
	text := runTool(t, &activities{testHandlers(source, searcher)}, "")

	assert.Contains(text, "dress warmly")
	assert.Contains(text, "Nearby suggestions:")
	assert.Contains(text, "Halden Ski Centre")
	assert.Contains(text, "https://example.com/rink")

	// The derived query is scoped to the location
	assert.Equal("winter activities Halden Norway", searcher.lastQuery)
	assert.Equal(venueSearchCount, searcher.lastCount)
}

func Test_activities_004(t *testing.T) {
	assert := assert.New(t)

	// Mild band: between the cold and warm thresholds, dry
	source := &fakeSource{forecast: makeForecast(
		makeEntry(t, "2024-04-01T12:00:00Z", 10, 3, 70, 1010, "partlycloudy_day", 0),
	)}
	searcher := &fakeSearcher{}
	text := runTool(t, &activities{testHandlers(source, searcher)}, "")

	assert.Contains(text, "pleasant day for a walk")
	assert.Equal("walking tours sights Halden Norway", searcher.lastQuery)

	// Empty results append nothing
	assert.NotContains(text, "Nearby suggestions")
}

func Test_activities_005(t *testing.T) {
	assert := assert.New(t)

	// Precipitation takes priority over temperature bands
	source := &fakeSource{forecast: makeForecast(
		makeEntry(t, "2024-06-01T12:00:00Z", 20, 3, 70, 1010, "rainshowers_day", 0.2),
	)}
	text := runTool(t, &activities{testHandlers(source, nil)}, "")
	assert.Contains(text, "indoor activities")
	assert.NotContains(text, "outdoor activities")
}

func Test_activities_006(t *testing.T) {
	assert := assert.New(t)

	source := &fakeSource{err: context.DeadlineExceeded}
	text := runTool(t, &activities{testHandlers(source, nil)}, "")
	assert.Equal(msgActivitiesFailed, text)
}

func Test_search_001(t *testing.T) {
	assert := assert.New(t)

	// No credential: fixed disabled message, no search call
	tool := &localSearch{testHandlers(&fakeSource{}, nil)}
	text := runTool(t, tool, `{"query": "restaurants"}`)
	assert.Equal(msgSearchDisabled, text)
}

func Test_search_002(t *testing.T) {
	assert := assert.New(t)

	searcher := &fakeSearcher{results: []brave.Result{
		{Title: "Curtisen", Url: "https://example.com/curtisen", Description: "Restaurant in the old town."},
	}}
	tool := &localSearch{testHandlers(&fakeSource{}, searcher)}
	text := runTool(t, tool, `{"query": "restaurants"}`)

	assert.Contains(text, `Search results for "restaurants":`)
	assert.Contains(text, "1. Curtisen")
	assert.Contains(text, "https://example.com/curtisen")
	assert.Contains(text, "Restaurant in the old town.")
	assert.Equal("restaurants Halden Norway", searcher.lastQuery)
	assert.Equal(defaultSearchCount, searcher.lastCount)
}

func Test_search_003(t *testing.T) {
	assert := assert.New(t)

	searcher := &fakeSearcher{}
	tool := &localSearch{testHandlers(&fakeSource{}, searcher)}
	text := runTool(t, tool, `{"query": "nothing", "count": 3}`)
	assert.Equal(msgNoResults("nothing"), text)
	assert.Equal(3, searcher.lastCount)
}

func Test_search_004(t *testing.T) {
	assert := assert.New(t)

	// A missing query is a tool error, not a formatted message
	tool := &localSearch{testHandlers(&fakeSource{}, &fakeSearcher{})}
	_, err := tool.Run(context.Background(), json.RawMessage(`{}`))
	assert.Error(err)

	_, err = tool.Run(context.Background(), json.RawMessage(`{"query": "x", "count": 100}`))
	assert.Error(err)
}

func Test_search_005(t *testing.T) {
	assert := assert.New(t)

	// An upstream failure yields the fixed failure message
	searcher := &fakeSearcher{err: context.DeadlineExceeded}
	tool := &localSearch{testHandlers(&fakeSource{}, searcher)}
	text := runTool(t, tool, `{"query": "restaurants"}`)
	assert.Equal(msgSearchFailed, text)
}
