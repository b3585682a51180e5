package qdrant

import (
	"sort"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
)

const rrfK = 60

// fuseRRF merges dense and sparse result lists with reciprocal rank
// fusion. Documents appearing in both lists accumulate both rank scores.
func fuseRRF(dense, sparse []domain.Document, limit int) []domain.Document {
	type fused struct {
		doc   domain.Document
		score float64
	}

	acc := make(map[string]fused, len(dense)+len(sparse))
	addList := func(docs []domain.Document) {
		for rank, doc := range docs {
			candidate, ok := acc[doc.ID]
			if !ok {
				candidate.doc = doc
			}
			candidate.score += 1.0 / float64(rrfK+rank+1)
			acc[doc.ID] = candidate
		}
	}

	addList(dense)
	addList(sparse)

	out := make([]domain.Document, 0, len(acc))
	for _, c := range acc {
		doc := c.doc
		doc.Score = c.score
		out = append(out, doc)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
