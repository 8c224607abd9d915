// Package pgvector provides a PostgreSQL vector driver using the pgvector
// extension.
package pgvector

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	pgv "github.com/pgvector/pgvector-go"

	"github.com/rosemira/rosebot/pkg/vector"
)

// Driver implements vector.Driver backed by PostgreSQL with pgvector.
type Driver struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Config holds configuration for the pgvector driver.
type Config struct {
	// DSN is the PostgreSQL connection string.
	DSN string

	// Dimensions is the number of dimensions for the embedding vectors.
	Dimensions uint
}

// NewDriver creates a new pgvector driver and ensures the schema exists.
func NewDriver(ctx context.Context, c Config, logger *slog.Logger) (*Driver, error) {
	if c.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}
	if c.Dimensions == 0 {
		return nil, fmt.Errorf("pgvector embedding dimensions cannot be 0, must be configured")
	}

	pool, err := pgxpool.New(ctx, c.DSN)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		pool.Close()
		return nil, fmt.Errorf("enabling pgvector extension: %w", err)
	}

	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS kb_documents (
			doc_id    TEXT PRIMARY KEY,
			content   TEXT NOT NULL DEFAULT '',
			metadata  JSONB NOT NULL DEFAULT '{}',
			embedding vector(%d) NOT NULL
		)
	`, c.Dimensions)
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating documents table: %w", err)
	}

	logger.Info("pgvector driver initialized", "dimensions", c.Dimensions)

	return &Driver{pool: pool, logger: logger}, nil
}

// Add stores documents with their embeddings, upserting on doc_id.
func (d *Driver) Add(ctx context.Context, docs []vector.Document) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, doc := range docs {
		metaJSON, err := json.Marshal(doc.Metadata)
		if err != nil {
			return fmt.Errorf("marshaling metadata for doc %s: %w", doc.ID, err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO kb_documents (doc_id, content, metadata, embedding)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (doc_id) DO UPDATE
			SET content = EXCLUDED.content,
				metadata = EXCLUDED.metadata,
				embedding = EXCLUDED.embedding
		`, doc.ID, doc.Content, metaJSON, pgv.NewVector(doc.Embedding))
		if err != nil {
			return fmt.Errorf("upserting document %s: %w", doc.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	d.logger.Debug("added documents to pgvector", "count", len(docs))

	return nil
}

// Query finds the topK most similar documents using cosine distance.
func (d *Driver) Query(ctx context.Context, embedding []float32, topK int) ([]vector.QueryResult, error) {
	if topK <= 0 {
		topK = 10
	}

	rows, err := d.pool.Query(ctx, `
		SELECT doc_id, content, metadata, embedding <=> $1 AS distance
		FROM kb_documents
		ORDER BY distance
		LIMIT $2
	`, pgv.NewVector(embedding), topK)
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	defer rows.Close()

	var results []vector.QueryResult
	for rows.Next() {
		var (
			docID    string
			content  string
			metaJSON []byte
			distance float64
		)
		if err := rows.Scan(&docID, &content, &metaJSON, &distance); err != nil {
			return nil, fmt.Errorf("scanning query result: %w", err)
		}

		metadata := map[string]string{}
		if err := json.Unmarshal(metaJSON, &metadata); err != nil {
			d.logger.Warn("failed to parse metadata", "doc_id", docID, "error", err)
		}

		results = append(results, vector.QueryResult{
			Document: vector.Document{
				ID:       docID,
				Content:  content,
				Metadata: metadata,
			},
			Score: float32(1.0 / (1.0 + distance)),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating query results: %w", err)
	}

	d.logger.Debug("queried pgvector", "results", len(results))

	return results, nil
}

// Get retrieves documents by their IDs.
func (d *Driver) Get(ctx context.Context, ids []string) ([]vector.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := d.pool.Query(ctx, `
		SELECT doc_id, content, metadata, embedding
		FROM kb_documents
		WHERE doc_id = ANY($1)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []vector.Document
	for rows.Next() {
		var (
			docID    string
			content  string
			metaJSON []byte
			emb      pgv.Vector
		)
		if err := rows.Scan(&docID, &content, &metaJSON, &emb); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		metadata := map[string]string{}
		if err := json.Unmarshal(metaJSON, &metadata); err != nil {
			d.logger.Warn("failed to parse metadata", "doc_id", docID, "error", err)
		}

		docs = append(docs, vector.Document{
			ID:        docID,
			Content:   content,
			Metadata:  metadata,
			Embedding: emb.Slice(),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// Count returns the number of stored documents.
func (d *Driver) Count(ctx context.Context) (int, error) {
	var count int
	if err := d.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM kb_documents`,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return count, nil
}

// Delete removes documents by their IDs.
func (d *Driver) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	if _, err := d.pool.Exec(ctx,
		`DELETE FROM kb_documents WHERE doc_id = ANY($1)`, ids,
	); err != nil {
		return fmt.Errorf("deleting documents: %w", err)
	}

	d.logger.Debug("deleted documents from pgvector", "count", len(ids))

	return nil
}

// Close releases the connection pool.
func (d *Driver) Close() error {
	d.pool.Close()
	return nil
}

var _ vector.Driver = (*Driver)(nil)
