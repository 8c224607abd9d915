// Package search implements the knowledge base search endpoint logic.
package search

import (
	"context"
	"log/slog"

	"github.com/rosemira/rosebot/pkg/knowledge"
)

// Result is a single search hit.
type Result struct {
	// ID is the document identifier.
	ID string `json:"id"`

	// Content is the stored document text.
	Content string `json:"content"`

	// Metadata carries the document attributes.
	Metadata map[string]string `json:"metadata,omitempty"`

	// Score is the similarity score (higher = more similar).
	Score float32 `json:"score"`
}

// Output is the response payload for a search request.
type Output struct {
	// Query echoes the search query.
	Query string `json:"query"`

	// Count is the number of results.
	Count int `json:"count"`

	// Results are ordered by descending similarity.
	Results []Result `json:"results"`
}

// Search runs a similarity search against the knowledge base.
func Search(
	ctx context.Context,
	query string,
	topK int,
	base *knowledge.Base,
	logger *slog.Logger,
) (*Output, error) {
	hits, err := base.Search(ctx, query, topK)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		results = append(results, Result{
			ID:       hit.ID,
			Content:  hit.Content,
			Metadata: hit.Metadata,
			Score:    hit.Score,
		})
	}

	logger.Debug("search completed", "query", query, "results", len(results))

	return &Output{
		Query:   query,
		Count:   len(results),
		Results: results,
	}, nil
}
