// Package seedcmder provides the seed command for loading starter documents.
package seedcmder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rosemira/rosebot/pkg/cliui"
	"github.com/rosemira/rosebot/pkg/config"
	embeddingutils "github.com/rosemira/rosebot/pkg/embeddings/utils"
	"github.com/rosemira/rosebot/pkg/knowledge"
	"github.com/rosemira/rosebot/pkg/logger"
	vectorutils "github.com/rosemira/rosebot/pkg/vector/utils"
)

const seedLongDesc string = `Seed the knowledge base.

Without --file, an empty index gets a small set of starter catalog and
conversation documents so retrieval has something to work with before
real data is ingested; an index that already holds documents is left
untouched. With --file, the given JSON array of documents
([{"id", "content", "metadata"}, ...]) is embedded and ingested.

Examples:
  rosebot seed
  rosebot seed --index ./faiss_index
  rosebot seed --file ./catalog.json
  rosebot seed --vector-store-provider pgvector --vector-store-target $DSN`

const seedShortDesc string = "Seed the knowledge base"

// seedFlags are the registry keys for flags registered on the seed command.
var seedFlags = []string{
	config.FlagIndexPath,
	config.FlagVectorProv,
	config.FlagVectorTgt,
	config.FlagEmbeddingProv,
	config.FlagEmbeddingTgt,
	config.FlagEmbeddingModel,
	config.FlagEmbeddingDims,
}

type seedCommander struct {
	file           string
	indexPath      string
	vectorProvider string
	vectorTarget   string
	embedProvider  string
	embedTarget    string
	embedModel     string
	embedDims      uint

	apiKey string
}

func NewSeedCmd() *cobra.Command {
	cmder := &seedCommander{}
	fs := config.DefaultFlagSet()

	cmd := &cobra.Command{
		Use:   "seed",
		Short: seedShortDesc,
		Long:  seedLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}
			config.BindRegisteredFlags(v, cmd, fs, seedFlags)

			cmder.indexPath = v.GetString("knowledge.index_path")
			cmder.vectorProvider = v.GetString("vector_store.provider")
			cmder.vectorTarget = v.GetString("vector_store.target")
			cmder.embedProvider = v.GetString("embedding.provider")
			cmder.embedTarget = v.GetString("embedding.target")
			cmder.embedModel = v.GetString("embedding.model")
			cmder.embedDims = v.GetUint("embedding.dimensions")
			cmder.apiKey = v.GetString("llm.api_key")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&cmder.file, "file", "f", "", "JSON file holding an array of documents to ingest")
	config.AddStringFlag(cmd, fs, config.FlagIndexPath, &cmder.indexPath)
	config.AddStringFlag(cmd, fs, config.FlagVectorProv, &cmder.vectorProvider)
	config.AddStringFlag(cmd, fs, config.FlagVectorTgt, &cmder.vectorTarget)
	config.AddStringFlag(cmd, fs, config.FlagEmbeddingProv, &cmder.embedProvider)
	config.AddStringFlag(cmd, fs, config.FlagEmbeddingTgt, &cmder.embedTarget)
	config.AddStringFlag(cmd, fs, config.FlagEmbeddingModel, &cmder.embedModel)
	config.AddUintFlag(cmd, fs, config.FlagEmbeddingDims, &cmder.embedDims)

	return cmd
}

func (c *seedCommander) run(ctx context.Context) error {
	log := logger.Nop()

	target := c.vectorTarget
	if c.vectorProvider == "sqlite" {
		target = c.indexPath
	}

	driver, err := vectorutils.NewVectorDriver(ctx, &vectorutils.NewVectorDriverOpts{
		ProviderType: c.vectorProvider,
		Target:       target,
		Dimensions:   c.embedDims,
		Logger:       log,
	})
	if err != nil {
		return fmt.Errorf("creating vector driver: %w", err)
	}
	defer driver.Close()

	embedder, err := embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
		ProviderType: c.embedProvider,
		TargetURL:    c.embedTarget,
		Model:        c.embedModel,
		APIKey:       c.apiKey,
	})
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	defer embedder.Close()

	base := knowledge.NewBase(embedder, driver, knowledge.Config{}, log)

	if c.file != "" {
		docs, err := loadDocuments(c.file)
		if err != nil {
			return err
		}
		if err := cliui.Step(os.Stdout, fmt.Sprintf("Ingesting %d documents", len(docs)), func() error {
			return base.Ingest(ctx, docs)
		}); err != nil {
			return err
		}
	} else if err := cliui.Step(os.Stdout, "Seeding knowledge base", func() error {
		return base.EnsureSeeded(ctx)
	}); err != nil {
		return err
	}

	count, err := base.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting documents: %w", err)
	}

	fmt.Printf("\n  %s Knowledge base holds %s documents %s\n\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(fmt.Sprintf("%d", count)),
		cliui.DimStyle.Render(fmt.Sprintf("(%s)", c.vectorProvider)),
	)
	return nil
}

// loadDocuments reads a JSON array of documents from path.
func loadDocuments(path string) ([]knowledge.IngestDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading documents file: %w", err)
	}

	var docs []knowledge.IngestDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing documents file %s: %w", path, err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("documents file %s holds no documents", path)
	}
	return docs, nil
}
