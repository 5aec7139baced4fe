package halden

///////////////////////////////////////////////////////////////////////////////
// REQUEST TYPES

// EmptyRequest is the input for tools that take no parameters
type EmptyRequest struct{}

// SearchRequest defines the input for a local search
type SearchRequest struct {
	Query string `json:"query" jsonschema:"What to search for"`
	Count int    `json:"count,omitempty" jsonschema:"Maximum number of results to return"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Default and maximum result counts for a local search
	defaultSearchCount = 5
	maxSearchCount     = 20

	// Result count for venue suggestions in the activities tool
	venueSearchCount = 2
)
