package domain

// Document is an opaque unit of retrieved content. Flight documents carry
// vocabulary-aligned metadata (airline, to_country, price_usd, ...); policy
// documents carry bibliographic metadata (source, chunk_index, ...).
type Document struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Score    float64        `json:"score,omitempty"`
}

func (d Document) MetadataString(key string) string {
	if d.Metadata == nil {
		return ""
	}
	s, _ := d.Metadata[key].(string)
	return s
}
