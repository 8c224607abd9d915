package vectorutils

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rosemira/rosebot/pkg/vector"
	"github.com/rosemira/rosebot/pkg/vector/chroma"
	"github.com/rosemira/rosebot/pkg/vector/pgvector"
	"github.com/rosemira/rosebot/pkg/vector/sqlitevec"
)

// IndexDBFile is the SQLite database filename created inside the knowledge
// index directory.
const IndexDBFile = "knowledge.db"

type NewVectorDriverOpts struct {
	ProviderType string

	// Target is provider specific: the index directory for sqlite, the
	// server URL for chroma, the DSN for pgvector.
	Target string

	Dimensions uint
	Logger     *slog.Logger
}

func NewVectorDriver(ctx context.Context, o *NewVectorDriverOpts) (vector.Driver, error) {
	switch o.ProviderType {
	case "sqlite":
		if err := os.MkdirAll(o.Target, 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
		return sqlitevec.NewSQLiteVecDriver(sqlitevec.Config{
			DBPath:     filepath.Join(o.Target, IndexDBFile),
			Dimensions: o.Dimensions,
		}, o.Logger)
	case "chroma":
		return chroma.NewDriver(chroma.Config{
			URL: o.Target,
		}, o.Logger)
	case "pgvector":
		return pgvector.NewDriver(ctx, pgvector.Config{
			DSN:        o.Target,
			Dimensions: o.Dimensions,
		}, o.Logger)
	default:
		return nil, fmt.Errorf("unsupported vector store provider: %s", o.ProviderType)
	}
}
