package qdrant

import "github.com/kavaklabs/travel-assistant/internal/core/domain"

// filterFieldOrder fixes condition order so identical filters compile to
// identical request bodies.
var filterFieldOrder = []string{
	"airline",
	"alliance",
	"from_country",
	"to_country",
	"travel_class",
	"max_price",
	"min_price",
	"refundable",
	"baggage_included",
	"wifi_available",
	"meal_service",
	"aircraft_type",
}

// compileFilter translates domain filters into a qdrant filter clause.
// max_price and min_price become range conditions on the price_usd
// payload field; everything else is an exact match. Multiple conditions
// combine with should (OR) so an over-specified filter still matches;
// a single condition is a hard must.
func compileFilter(filters domain.Filters) map[string]any {
	conditions := make([]map[string]any, 0, len(filters))
	for _, field := range filterFieldOrder {
		value, ok := filters[field]
		if !ok || value == nil {
			continue
		}
		switch field {
		case "max_price":
			conditions = append(conditions, map[string]any{
				"key":   "price_usd",
				"range": map[string]any{"lte": value},
			})
		case "min_price":
			conditions = append(conditions, map[string]any{
				"key":   "price_usd",
				"range": map[string]any{"gte": value},
			})
		default:
			conditions = append(conditions, map[string]any{
				"key":   field,
				"match": map[string]any{"value": value},
			})
		}
	}

	if len(conditions) == 0 {
		return nil
	}
	if len(conditions) > 1 {
		return map[string]any{"should": conditions}
	}
	return map[string]any{"must": conditions}
}
