/*
forecast holds the pure domain logic for reshaping a forecast timeseries:
mapping condition codes to display glyphs and deriving per-day summaries.
*/
package forecast

import "strings"

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Substring matches are checked in priority order, first match wins.
// A met.no symbol code such as "lightrainshowers_day" therefore maps to
// the rain glyph even though it also contains "showers".
var icons = []struct {
	Substr string
	Glyph  string
}{
	{"rain", "🌧️"},
	{"snow", "❄️"},
	{"thunder", "⛈️"},
	{"fog", "🌫️"},
	{"cloudy", "☁️"},
	{"fair", "🌤️"},
	{"clear", "☀️"},
}

const defaultIcon = "🌡️"

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Icon maps a condition code to a display glyph. It is total over all
// inputs: an empty or unrecognised code yields the default glyph.
func Icon(symbolCode string) string {
	for _, icon := range icons {
		if strings.Contains(symbolCode, icon.Substr) {
			return icon.Glyph
		}
	}
	return defaultIcon
}
