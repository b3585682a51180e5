// Package vocabulary enumerates every filterable metadata field and its
// legal values. The set is static per process and mirrors the fields the
// ingestion side indexes for filtering.
package vocabulary

// PriceBand is a suggested price range shown to the filter synthesizer.
type PriceBand struct {
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Label string `json:"label"`
}

type PriceRanges struct {
	Min             int         `json:"min"`
	Max             int         `json:"max"`
	SuggestedRanges []PriceBand `json:"suggested_ranges"`
}

// Options is the full filter vocabulary handed to the filter synthesizer.
type Options struct {
	Airline         []string    `json:"airline"`
	Alliance        []string    `json:"alliance"`
	FromCountry     []string    `json:"from_country"`
	ToCountry       []string    `json:"to_country"`
	TravelClass     []string    `json:"travel_class"`
	Refundable      []bool      `json:"refundable"`
	BaggageIncluded []bool      `json:"baggage_included"`
	WifiAvailable   []bool      `json:"wifi_available"`
	MealService     []string    `json:"meal_service"`
	AircraftType    []string    `json:"aircraft_type"`
	PriceRanges     PriceRanges `json:"price_ranges"`
}

// filterFields is the set of keys a synthesized filter object may carry.
// max_price and min_price both constrain the price_usd metadata field.
var filterFields = map[string]struct{}{
	"airline":          {},
	"alliance":         {},
	"from_country":     {},
	"to_country":       {},
	"travel_class":     {},
	"max_price":        {},
	"min_price":        {},
	"refundable":       {},
	"baggage_included": {},
	"wifi_available":   {},
	"meal_service":     {},
	"aircraft_type":    {},
}

// FieldAllowed reports whether a synthesized filter key belongs to the
// vocabulary's field set.
func FieldAllowed(field string) bool {
	_, ok := filterFields[field]
	return ok
}

// Get returns the static filter vocabulary.
func Get() Options {
	return Options{
		Airline: []string{
			"Aeromexico", "Air Canada", "Air France", "Alitalia", "All Nippon Airways",
			"American Airlines", "British Airways", "Cathay Pacific", "China Eastern",
			"Delta Air Lines", "Emirates", "Etihad Airways", "Finnair", "Iberia",
			"Japan Airlines", "JetBlue Airways", "KLM", "Korean Air", "Lufthansa",
			"Norwegian Air", "Qantas", "Qatar Airways", "Ryanair", "Singapore Airlines",
			"Southwest Airlines", "Spirit Airlines", "Swiss International", "Thai Airways",
			"Turkish Airlines", "United Airlines", "Vietnam Airlines", "Virgin Atlantic",
		},
		Alliance: []string{"Non-Alliance", "OneWorld", "SkyTeam", "Star Alliance"},
		FromCountry: []string{
			"Australia", "Canada", "Egypt", "France", "Germany", "Hong Kong", "India",
			"Italy", "Japan", "Netherlands", "Qatar", "Singapore", "South Korea",
			"Spain", "Thailand", "Turkey", "UAE", "UK", "USA",
		},
		ToCountry: []string{
			"Australia", "Canada", "Egypt", "France", "Germany", "Hong Kong", "India",
			"Italy", "Japan", "Netherlands", "Qatar", "Singapore", "South Korea",
			"Spain", "Thailand", "Turkey", "UAE", "UK", "USA",
		},
		TravelClass:     []string{"business", "economy", "first", "premium_economy"},
		Refundable:      []bool{false, true},
		BaggageIncluded: []bool{false, true},
		WifiAvailable:   []bool{false, true},
		MealService:     []string{"meal", "none", "premium_meal", "snack"},
		AircraftType: []string{
			"Airbus A320", "Airbus A330", "Airbus A350", "Airbus A380",
			"Boeing 737", "Boeing 777", "Boeing 787",
		},
		PriceRanges: PriceRanges{
			Min: 300,
			Max: 12430,
			SuggestedRanges: []PriceBand{
				{Min: 0, Max: 500, Label: "Budget (0-500 USD)"},
				{Min: 500, Max: 1000, Label: "Economy (500-1000 USD)"},
				{Min: 1000, Max: 2000, Label: "Mid-range (1000-2000 USD)"},
				{Min: 2000, Max: 5000, Label: "Premium (2000-5000 USD)"},
				{Min: 5000, Max: 12430, Label: "Luxury (5000+ USD)"},
			},
		},
	}
}
