package gemini

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
)

const classifySystemPrompt = `You are a travel query classifier.
Classify the user's query into exactly one of three categories:
- flight_only: the query asks about specific flights, prices, routes, airlines, or booking attributes
- info_only: the query asks about policies, rules, visa requirements, or general travel information
- both: the query mixes flight search with policy or informational questions

Return a strict JSON object: {"query_type": "<flight_only|info_only|both>"}.
No markdown, no extra keys.`

func buildFilterSystemPrompt(optionsJSON, query string) string {
	return fmt.Sprintf(`You are a filter generation assistant. Based on the user's query and available filter options, generate appropriate filters to narrow down the search results.

Available filter options:
%s

Instructions:
1. Analyze the user's query to identify relevant filters
2. Select specific values from the available options that match the query intent
3. When the query says "flights to X" and X is a city, set to_country to that city's country, even if X could also be a layover or transit stop
4. Only include filters that are explicitly mentioned or strongly implied in the query
5. Return a JSON object with the selected filters
6. Use null for filters that are not applicable

Example output format:
{
    "airline": "Emirates",
    "from_country": "India",
    "to_country": "UAE",
    "travel_class": "business",
    "max_price": 5000,
    "refundable": true,
    "baggage_included": null,
    "wifi_available": null,
    "meal_service": null,
    "aircraft_type": null
}

User Query: %s`, optionsJSON, query)
}

func buildRerankSystemPrompt(query string, docs []domain.Document, topN int) string {
	var listing strings.Builder
	for idx, doc := range docs {
		snippet := doc.Content
		const maxSnippet = 1500
		if len(snippet) > maxSnippet {
			cut := maxSnippet
			for cut > 0 && !utf8.RuneStart(snippet[cut]) {
				cut--
			}
			snippet = snippet[:cut]
		}
		listing.WriteString(fmt.Sprintf("[%d]\n%s\n\n", idx, snippet))
	}

	return fmt.Sprintf(`You are a relevance ranking assistant. Rank the documents below by relevance to the user's query.

Query: %s

Documents:
%s
Return a strict JSON object: {"ranking": [<document indexes, most relevant first>]}.
Include at most %d indexes. Use only indexes that appear above. No markdown, no extra keys.`, query, listing.String(), topN)
}

func buildAnswerSystemPrompt(query string, docs []domain.Document) string {
	contents := make([]string, len(docs))
	for i, doc := range docs {
		contents[i] = doc.Content
	}

	return fmt.Sprintf(`You are a helpful assistant that answers questions based on the provided context.
Context:
%s

Please answer the following question based on the context above. If the context doesn't contain enough information to answer the question, say so. Be concise and accurate.

Question: %s`, strings.Join(contents, "\n\n"), query)
}
