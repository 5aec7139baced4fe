package metno

import "time"

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Forecast is the Locationforecast "compact" response
type Forecast struct {
	Type     string `json:"type"`
	Geometry struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		Meta       Meta    `json:"meta"`
		Timeseries []Entry `json:"timeseries"`
	} `json:"properties"`
}

type Meta struct {
	UpdatedAt time.Time `json:"updated_at"`
	Units     struct {
		AirPressureAtSeaLevel string `json:"air_pressure_at_sea_level"`
		AirTemperature        string `json:"air_temperature"`
		PrecipitationAmount   string `json:"precipitation_amount"`
		RelativeHumidity      string `json:"relative_humidity"`
		WindSpeed             string `json:"wind_speed"`
	} `json:"units"`
}

// Entry is one timestamped data point in the forecast timeseries
type Entry struct {
	Time time.Time `json:"time"`
	Data struct {
		Instant struct {
			Details Instant `json:"details"`
		} `json:"instant"`
		Next1Hours *NextHour `json:"next_1_hours,omitempty"`
	} `json:"data"`
}

// Instant are the instantaneous measurements for an entry
type Instant struct {
	AirPressureAtSeaLevel float64 `json:"air_pressure_at_sea_level"`
	AirTemperature        float64 `json:"air_temperature"`
	RelativeHumidity      float64 `json:"relative_humidity"`
	WindSpeed             float64 `json:"wind_speed"`
}

// NextHour is the optional summary for the hour following an entry
type NextHour struct {
	Summary struct {
		SymbolCode string `json:"symbol_code"`
	} `json:"summary"`
	Details struct {
		PrecipitationAmount float64 `json:"precipitation_amount"`
	} `json:"details"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Entries returns the forecast timeseries
func (f *Forecast) Entries() []Entry {
	return f.Properties.Timeseries
}

// SymbolCode returns the next-hour condition code for the entry, or the
// empty string when no next-hour summary is present
func (e Entry) SymbolCode() string {
	if e.Data.Next1Hours == nil {
		return ""
	}
	return e.Data.Next1Hours.Summary.SymbolCode
}

// Precipitation returns the next-hour precipitation amount in mm, or zero
// when no next-hour summary is present
func (e Entry) Precipitation() float64 {
	if e.Data.Next1Hours == nil {
		return 0
	}
	return e.Data.Next1Hours.Details.PrecipitationAmount
}
