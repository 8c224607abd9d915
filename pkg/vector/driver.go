// Package vector provides interfaces and implementations for knowledge
// base vector storage.
package vector

import "context"

// Metadata keys shared by the knowledge base and its drivers.
const (
	// MetaKind distinguishes document categories ("product", "conversation").
	MetaKind = "kind"

	// MetaTitle is the product title for product documents.
	MetaTitle = "title"

	// MetaProductType is the product category for product documents.
	MetaProductType = "product_type"

	// MetaTopic is the subject for conversation documents.
	MetaTopic = "topic"
)

// Document represents a stored knowledge base item with its embedding and
// metadata.
type Document struct {
	// ID is a unique identifier for the document.
	ID string

	// Content is the document text that was embedded.
	Content string

	// Metadata carries document attributes (kind, title, product_type, ...).
	Metadata map[string]string

	// Embedding is the vector representation of the document content.
	Embedding []float32
}

// QueryResult represents a search result with similarity score.
type QueryResult struct {
	Document

	// Score represents the similarity score (higher = more similar).
	Score float32
}

// Driver handles storage and retrieval of vector embeddings.
type Driver interface {
	// Add stores documents with their embeddings.
	// If a document with the same ID already exists, implementers should
	// update the document.
	Add(ctx context.Context, docs []Document) error

	// Query finds the topK most similar documents to the given embedding.
	Query(ctx context.Context, embedding []float32, topK int) ([]QueryResult, error)

	// Get retrieves documents by their IDs.
	Get(ctx context.Context, ids []string) ([]Document, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// Delete removes documents by their IDs.
	Delete(ctx context.Context, ids []string) error

	// Close releases any resources held by the driver.
	Close() error
}
