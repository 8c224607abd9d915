package knowledge

import (
	"context"
	"fmt"

	"github.com/rosemira/rosebot/pkg/vector"
)

// starterDocuments seed an empty index so retrieval has something to work
// with before real catalog and conversation data is ingested.
var starterDocuments = []IngestDocument{
	{
		ID:      "seed-gentle-cleanser",
		Content: "Rosemira offers organic skincare products for sensitive skin.",
		Metadata: map[string]string{
			vector.MetaKind:        KindProduct,
			vector.MetaTitle:       "Gentle Cleanser",
			vector.MetaProductType: "Cleanser",
		},
	},
	{
		ID:      "seed-hydrating-moisturizer",
		Content: "Our moisturizers are fragrance-free and suitable for all skin types.",
		Metadata: map[string]string{
			vector.MetaKind:        KindProduct,
			vector.MetaTitle:       "Hydrating Moisturizer",
			vector.MetaProductType: "Moisturizer",
		},
	},
	{
		ID:      "seed-free-shipping",
		Content: "We offer free shipping on orders over $50.",
		Metadata: map[string]string{
			vector.MetaKind:  KindConversation,
			vector.MetaTopic: "shipping",
		},
	},
}

// EnsureSeeded populates an empty index with the starter documents.
// A non-empty index is left untouched.
func (b *Base) EnsureSeeded(ctx context.Context) error {
	count, err := b.driver.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting documents: %w", err)
	}

	if count > 0 {
		return nil
	}

	b.logger.Warn("knowledge index is empty, seeding starter documents",
		"count", len(starterDocuments),
	)

	return b.Ingest(ctx, starterDocuments)
}
