// Command datagen writes synthetic travel documents into a data directory
// so the ingestion pipeline and search workflow can be exercised without
// real airline feeds. It produces a flights.json fact table plus two
// markdown knowledge documents.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

type city struct {
	City    string
	Country string
	Airport string
}

type layover struct {
	City          string  `json:"city"`
	Airport       string  `json:"airport"`
	DurationHours float64 `json:"duration_hours"`
}

type flight struct {
	FlightID               string    `json:"flight_id"`
	Airline                string    `json:"airline"`
	Alliance               string    `json:"alliance"`
	From                   string    `json:"from"`
	FromAirport            string    `json:"from_airport"`
	FromCountry            string    `json:"from_country"`
	To                     string    `json:"to"`
	ToAirport              string    `json:"to_airport"`
	ToCountry              string    `json:"to_country"`
	DepartureDate          time.Time `json:"departure_date"`
	ReturnDate             time.Time `json:"return_date"`
	TravelClass            string    `json:"travel_class"`
	Layovers               []layover `json:"layovers"`
	LayoverDurationHours   float64   `json:"layover_duration_hours"`
	PriceUSD               int       `json:"price_usd"`
	Refundable             bool      `json:"refundable"`
	CancellationFeePercent int       `json:"cancellation_fee_percent"`
	BaggageIncluded        bool      `json:"baggage_included"`
	WifiAvailable          bool      `json:"wifi_available"`
	MealService            string    `json:"meal_service"`
	FlightDurationHours    int       `json:"flight_duration_hours"`
	AircraftType           string    `json:"aircraft_type"`
	Availability           int       `json:"availability"`
}

var alliances = map[string][]string{
	"Star Alliance": {
		"United Airlines", "Lufthansa", "Air Canada", "Singapore Airlines",
		"Turkish Airlines", "Thai Airways", "All Nippon Airways", "Swiss International",
	},
	"OneWorld": {
		"American Airlines", "British Airways", "Cathay Pacific", "Qatar Airways",
		"Japan Airlines", "Qantas", "Iberia", "Finnair",
	},
	"SkyTeam": {
		"Delta Air Lines", "Air France", "KLM", "Korean Air",
		"China Eastern", "Alitalia", "Aeromexico", "Vietnam Airlines",
	},
	"Non-Alliance": {
		"Emirates", "Etihad Airways", "JetBlue Airways", "Southwest Airlines",
		"Virgin Atlantic", "Norwegian Air", "Spirit Airlines", "Ryanair",
	},
}

var allianceNames = []string{"Star Alliance", "OneWorld", "SkyTeam", "Non-Alliance"}

var cities = []city{
	{"Dubai", "UAE", "DXB"},
	{"Tokyo", "Japan", "NRT"},
	{"London", "UK", "LHR"},
	{"New York", "USA", "JFK"},
	{"Paris", "France", "CDG"},
	{"Singapore", "Singapore", "SIN"},
	{"Frankfurt", "Germany", "FRA"},
	{"Los Angeles", "USA", "LAX"},
	{"Sydney", "Australia", "SYD"},
	{"Hong Kong", "Hong Kong", "HKG"},
	{"Istanbul", "Turkey", "IST"},
	{"Amsterdam", "Netherlands", "AMS"},
	{"Bangkok", "Thailand", "BKK"},
	{"Seoul", "South Korea", "ICN"},
	{"Mumbai", "India", "BOM"},
	{"Cairo", "Egypt", "CAI"},
	{"Madrid", "Spain", "MAD"},
	{"Rome", "Italy", "FCO"},
	{"Toronto", "Canada", "YYZ"},
	{"Doha", "Qatar", "DOH"},
}

var hubCities = []city{
	{"Dubai", "UAE", "DXB"},
	{"Istanbul", "Turkey", "IST"},
	{"Doha", "Qatar", "DOH"},
	{"Frankfurt", "Germany", "FRA"},
	{"Amsterdam", "Netherlands", "AMS"},
	{"London", "UK", "LHR"},
	{"Singapore", "Singapore", "SIN"},
	{"Hong Kong", "Hong Kong", "HKG"},
}

var layoverDurations = []float64{0.5, 1, 1.5, 2, 3, 4, 6, 12, 24}

var aircraftTypes = []string{
	"Boeing 737", "Boeing 777", "Boeing 787", "Airbus A320",
	"Airbus A330", "Airbus A350", "Airbus A380",
}

var mealOptions = []string{"none", "snack", "meal", "premium_meal"}

func main() {
	var (
		count   = flag.Int("flights", 500, "number of flight records to generate")
		outDir  = flag.String("out", "data", "output directory")
		seedVal = flag.Int64("seed", 0, "random seed, 0 uses the current time")
	)
	flag.Parse()

	seed := *seedVal
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	flights := generateFlights(rng, *count)
	if err := writeJSON(filepath.Join(*outDir, "flights.json"), flights); err != nil {
		log.Fatalf("write flights: %v", err)
	}
	if err := os.WriteFile(filepath.Join(*outDir, "visa_rules.md"), []byte(visaRulesDoc), 0o644); err != nil {
		log.Fatalf("write visa rules: %v", err)
	}
	if err := os.WriteFile(filepath.Join(*outDir, "refund_policies.md"), []byte(refundPoliciesDoc), 0o644); err != nil {
		log.Fatalf("write refund policies: %v", err)
	}

	fmt.Printf("generated %d flights, visa rules, and refund policies in %s (seed %d)\n", len(flights), *outDir, seed)
}

func generateFlights(rng *rand.Rand, count int) []flight {
	flights := make([]flight, 0, count)
	now := time.Now()
	for i := 0; i < count; i++ {
		from := cities[rng.Intn(len(cities))]
		to := from
		for to == from {
			to = cities[rng.Intn(len(cities))]
		}
		alliance := allianceNames[rng.Intn(len(allianceNames))]
		members := alliances[alliance]
		airline := members[rng.Intn(len(members))]

		departure := now.
			AddDate(0, 0, 1+rng.Intn(180)).
			Add(time.Duration(rng.Intn(24)) * time.Hour).
			Add(time.Duration(15*rng.Intn(4)) * time.Minute)
		ret := departure.
			AddDate(0, 0, 1+rng.Intn(30)).
			Add(time.Duration(rng.Intn(24)) * time.Hour)

		layovers := generateLayovers(rng, from, to)
		var layoverHours float64
		for _, l := range layovers {
			layoverHours += l.DurationHours
		}

		travelClass, multiplier := pickTravelClass(rng)
		price := int(float64(300+rng.Intn(2201)) * multiplier)

		flights = append(flights, flight{
			FlightID:               fmt.Sprintf("FL%d", 1000+rng.Intn(9000)),
			Airline:                airline,
			Alliance:               alliance,
			From:                   from.City,
			FromAirport:            from.Airport,
			FromCountry:            from.Country,
			To:                     to.City,
			ToAirport:              to.Airport,
			ToCountry:              to.Country,
			DepartureDate:          departure,
			ReturnDate:             ret,
			TravelClass:            travelClass,
			Layovers:               layovers,
			LayoverDurationHours:   layoverHours,
			PriceUSD:               price,
			Refundable:             rng.Intn(2) == 0,
			CancellationFeePercent: 5 * rng.Intn(5),
			BaggageIncluded:        rng.Intn(2) == 0,
			WifiAvailable:          rng.Intn(2) == 0,
			MealService:            mealOptions[rng.Intn(len(mealOptions))],
			FlightDurationHours:    2 + rng.Intn(17),
			AircraftType:           aircraftTypes[rng.Intn(len(aircraftTypes))],
			Availability:           rng.Intn(301),
		})
	}
	return flights
}

// Class weights skew towards economy, with a price multiplier per class.
func pickTravelClass(rng *rand.Rand) (string, float64) {
	switch roll := rng.Intn(100); {
	case roll < 60:
		return "economy", 1.0
	case roll < 80:
		return "premium_economy", 1.5
	case roll < 95:
		return "business", 3.0
	default:
		return "first", 5.0
	}
}

func generateLayovers(rng *rand.Rand, from, to city) []layover {
	var count int
	switch roll := rng.Intn(100); {
	case roll < 40:
		count = 0
	case roll < 90:
		count = 1
	default:
		count = 2
	}
	if count == 0 {
		return []layover{}
	}

	available := make([]city, 0, len(hubCities))
	for _, hub := range hubCities {
		if hub.City != from.City && hub.City != to.City {
			available = append(available, hub)
		}
	}

	layovers := make([]layover, 0, count)
	for i := 0; i < count && len(available) > 0; i++ {
		idx := rng.Intn(len(available))
		hub := available[idx]
		available = append(available[:idx], available[idx+1:]...)
		layovers = append(layovers, layover{
			City:          hub.City,
			Airport:       hub.Airport,
			DurationHours: layoverDurations[rng.Intn(len(layoverDurations))],
		})
	}
	return layovers
}

func writeJSON(path string, payload any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
