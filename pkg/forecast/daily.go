package forecast

import (
	// Packages
	metno "github.com/mutablelogic/go-weather/pkg/metno"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Daily is the derived aggregate for one calendar day
type Daily struct {
	Date          string  `json:"date"` // YYYY-MM-DD, UTC
	MinTemp       float64 `json:"min_temp"`
	MaxTemp       float64 `json:"max_temp"`
	SymbolCode    string  `json:"symbol_code"`
	Precipitation float64 `json:"precipitation"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Number of distinct days emitted by SummarizeByDay
const SummaryDays = 3

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// SummarizeByDay groups entries by UTC calendar date, in first-seen
// order, and returns summaries for at most SummaryDays distinct days.
// The dominant condition code is the most frequent code among the day's
// entries; ties are broken in favour of the code that occurs first.
func SummarizeByDay(entries []metno.Entry) []Daily {
	var order []string
	byDay := make(map[string][]metno.Entry)

	for _, entry := range entries {
		day := entry.Time.UTC().Format("2006-01-02")
		if _, exists := byDay[day]; !exists {
			if len(order) == SummaryDays {
				continue
			}
			order = append(order, day)
		}
		byDay[day] = append(byDay[day], entry)
	}

	result := make([]Daily, 0, len(order))
	for _, day := range order {
		result = append(result, summarize(day, byDay[day]))
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func summarize(day string, entries []metno.Entry) Daily {
	summary := Daily{
		Date:    day,
		MinTemp: entries[0].Data.Instant.Details.AirTemperature,
		MaxTemp: entries[0].Data.Instant.Details.AirTemperature,
	}

	counts := make(map[string]int)
	var codes []string
	for _, entry := range entries {
		temp := entry.Data.Instant.Details.AirTemperature
		if temp < summary.MinTemp {
			summary.MinTemp = temp
		}
		if temp > summary.MaxTemp {
			summary.MaxTemp = temp
		}
		summary.Precipitation += entry.Precipitation()
		if code := entry.SymbolCode(); code != "" {
			if _, exists := counts[code]; !exists {
				codes = append(codes, code)
			}
			counts[code]++
		}
	}

	// Dominant code: highest count, ties to the first-occurring code
	best := 0
	for _, code := range codes {
		if counts[code] > best {
			best = counts[code]
			summary.SymbolCode = code
		}
	}

	return summary
}
