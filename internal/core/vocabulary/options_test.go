package vocabulary

import "testing"

func TestFieldAllowed(t *testing.T) {
	allowed := []string{
		"airline", "alliance", "from_country", "to_country", "travel_class",
		"max_price", "min_price", "refundable", "baggage_included",
		"wifi_available", "meal_service", "aircraft_type",
	}
	for _, field := range allowed {
		if !FieldAllowed(field) {
			t.Fatalf("expected field %q to be allowed", field)
		}
	}

	for _, field := range []string{"price_usd", "departure_date", "flight_id", "", "Airline"} {
		if FieldAllowed(field) {
			t.Fatalf("expected field %q to be rejected", field)
		}
	}
}

func TestGetCoversEveryCategoricalField(t *testing.T) {
	opts := Get()

	if len(opts.Airline) != 32 {
		t.Fatalf("expected 32 airlines, got %d", len(opts.Airline))
	}
	if len(opts.Alliance) != 4 {
		t.Fatalf("expected 4 alliances, got %d", len(opts.Alliance))
	}
	if len(opts.FromCountry) != 19 || len(opts.ToCountry) != 19 {
		t.Fatalf("expected 19 countries on each side, got %d/%d", len(opts.FromCountry), len(opts.ToCountry))
	}
	if len(opts.TravelClass) != 4 {
		t.Fatalf("expected 4 travel classes, got %d", len(opts.TravelClass))
	}
	if opts.PriceRanges.Min != 300 || opts.PriceRanges.Max != 12430 {
		t.Fatalf("unexpected price bounds %d-%d", opts.PriceRanges.Min, opts.PriceRanges.Max)
	}
	if len(opts.PriceRanges.SuggestedRanges) != 5 {
		t.Fatalf("expected 5 suggested price bands, got %d", len(opts.PriceRanges.SuggestedRanges))
	}
}
