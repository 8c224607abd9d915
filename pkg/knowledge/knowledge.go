// Package knowledge implements retrieval-augmented prompt construction over
// the Rosemira knowledge base.
//
// A Base wraps an embedder and a vector driver. Retrieve embeds the customer
// query, pulls the closest documents, splits them into past conversations and
// products, and builds the prompt handed to the chat model. Product
// recommendations are only included when the query asks for them, and
// products already suggested earlier in the conversation are filtered out.
package knowledge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rosemira/rosebot/pkg/embeddings"
	"github.com/rosemira/rosebot/pkg/vector"
)

// DefaultTopK is the number of documents retrieved per query.
const DefaultTopK = 3

// recommendationKeywords mark a query as asking for product suggestions.
var recommendationKeywords = []string{
	"recommend",
	"suggest",
	"product",
	"what should i use",
}

// Base ties an embedder to a vector driver.
type Base struct {
	embedder embeddings.Embedder
	driver   vector.Driver
	topK     int
	logger   *slog.Logger
}

// Config holds configuration for the knowledge base.
type Config struct {
	// TopK is the number of documents retrieved per query.
	// Defaults to DefaultTopK when zero.
	TopK int
}

// Retrieval is the outcome of retrieving context for a query.
type Retrieval struct {
	// Prompt is the fully constructed prompt for the chat model.
	Prompt string

	// NewProducts are product titles introduced by this retrieval, in
	// the order they appear in the prompt. The caller records them as
	// suggested.
	NewProducts []string

	// Recommendation reports whether the query asked for suggestions.
	Recommendation bool
}

// IngestDocument is a document to add to the knowledge base.
type IngestDocument struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
}

// NewBase creates a knowledge base over the given embedder and driver.
func NewBase(embedder embeddings.Embedder, driver vector.Driver, cfg Config, logger *slog.Logger) *Base {
	topK := cfg.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	return &Base{
		embedder: embedder,
		driver:   driver,
		topK:     topK,
		logger:   logger,
	}
}

// IsRecommendationQuery reports whether the query asks for product
// suggestions.
func IsRecommendationQuery(query string) bool {
	lowered := strings.ToLower(query)
	for _, keyword := range recommendationKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// Retrieve builds the chat prompt for a query. alreadySuggested lists product
// titles recommended earlier in the conversation; they are never suggested
// again. Retrieval failures degrade to a prompt without knowledge base
// context rather than failing the turn.
func (b *Base) Retrieve(ctx context.Context, query string, alreadySuggested []string) Retrieval {
	recommendation := IsRecommendationQuery(query)

	results, err := b.search(ctx, query, b.topK)
	if err != nil {
		b.logger.Error("knowledge retrieval failed, falling back to bare prompt",
			"error", err,
		)
		return Retrieval{
			Prompt:         ConstructPrompt(query, nil, nil),
			Recommendation: recommendation,
		}
	}

	var conversations []string
	var products []Product
	for _, result := range results {
		switch result.Metadata[vector.MetaKind] {
		case KindConversation:
			conversations = append(conversations, result.Content)
		case KindProduct:
			title := result.Metadata[vector.MetaTitle]
			if title == "" {
				title = "Product Name Unknown"
			}
			productType := result.Metadata[vector.MetaProductType]
			if productType == "" {
				productType = "Uncategorized"
			}
			products = append(products, Product{Title: title, Type: productType})
		}
	}

	if !recommendation {
		return Retrieval{
			Prompt: ConstructPrompt(query, conversations, nil),
		}
	}

	seen := make(map[string]struct{}, len(alreadySuggested))
	for _, title := range alreadySuggested {
		seen[title] = struct{}{}
	}

	var newProducts []Product
	var newTitles []string
	for _, p := range products {
		if _, ok := seen[p.Title]; ok {
			continue
		}
		seen[p.Title] = struct{}{}
		newProducts = append(newProducts, p)
		newTitles = append(newTitles, p.Title)
	}

	return Retrieval{
		Prompt:         ConstructPrompt(query, conversations, newProducts),
		NewProducts:    newTitles,
		Recommendation: true,
	}
}

// Search embeds the query and returns the closest documents.
func (b *Base) Search(ctx context.Context, query string, topK int) ([]vector.QueryResult, error) {
	if topK <= 0 {
		topK = b.topK
	}
	return b.search(ctx, query, topK)
}

func (b *Base) search(ctx context.Context, query string, topK int) ([]vector.QueryResult, error) {
	embedding, err := b.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := b.driver.Query(ctx, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("querying vector store: %w", err)
	}

	b.logger.Debug("retrieved documents", "query_len", len(query), "results", len(results))

	return results, nil
}

// Ingest embeds and stores documents.
func (b *Base) Ingest(ctx context.Context, docs []IngestDocument) error {
	if len(docs) == 0 {
		return nil
	}

	vectorDocs := make([]vector.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.ID == "" {
			return fmt.Errorf("document ID is required")
		}
		if doc.Content == "" {
			return fmt.Errorf("document %s has no content", doc.ID)
		}

		embedding, err := b.embedder.Embed(ctx, doc.Content)
		if err != nil {
			return fmt.Errorf("embedding document %s: %w", doc.ID, err)
		}

		vectorDocs = append(vectorDocs, vector.Document{
			ID:        doc.ID,
			Content:   doc.Content,
			Metadata:  doc.Metadata,
			Embedding: embedding,
		})
	}

	if err := b.driver.Add(ctx, vectorDocs); err != nil {
		return fmt.Errorf("storing documents: %w", err)
	}

	b.logger.Info("ingested documents", "count", len(docs))

	return nil
}

// Count returns the number of stored documents.
func (b *Base) Count(ctx context.Context) (int, error) {
	return b.driver.Count(ctx)
}

// Close releases the embedder and driver.
func (b *Base) Close() error {
	embErr := b.embedder.Close()
	if err := b.driver.Close(); err != nil {
		return err
	}
	return embErr
}
