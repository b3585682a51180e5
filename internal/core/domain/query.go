package domain

// QueryType labels a travel query by which retrieval paths it needs.
type QueryType string

const (
	QueryFlightOnly QueryType = "flight_only"
	QueryInfoOnly   QueryType = "info_only"
	QueryBoth       QueryType = "both"
)

// ParseQueryType maps a classifier label to a QueryType. Anything outside
// the known set falls back to QueryBoth: it is the only label that never
// drops a relevant retrieval path.
func ParseQueryType(label string) QueryType {
	switch QueryType(label) {
	case QueryFlightOnly, QueryInfoOnly, QueryBoth:
		return QueryType(label)
	default:
		return QueryBoth
	}
}

// SearchMode selects dense-only or hybrid dense+sparse retrieval.
type SearchMode string

const (
	SearchDense  SearchMode = "dense"
	SearchHybrid SearchMode = "hybrid"
)

// Filters maps a vocabulary field name to a scalar constraint. Values are
// equality matches except max_price (<= on price_usd) and min_price (>=).
// A Filters object never holds nulls; cleaning happens at synthesis time.
type Filters map[string]any

// SearchOutcome is what the workflow returns to the request layer.
type SearchOutcome struct {
	Answer        string    `json:"answer"`
	QueryType     QueryType `json:"query_type"`
	Filters       Filters   `json:"filters_applied,omitempty"`
	DocumentsUsed int       `json:"documents_used"`
}
