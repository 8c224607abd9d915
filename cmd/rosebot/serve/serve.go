// Package servecmder provides the serve command running the webhook API server.
package servecmder

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rosemira/rosebot/api"
	"github.com/rosemira/rosebot/pkg/config"
	embeddingutils "github.com/rosemira/rosebot/pkg/embeddings/utils"
	eventstreamutils "github.com/rosemira/rosebot/pkg/eventstream/utils"
	"github.com/rosemira/rosebot/pkg/knowledge"
	llmutils "github.com/rosemira/rosebot/pkg/llm/utils"
	"github.com/rosemira/rosebot/pkg/logger"
	"github.com/rosemira/rosebot/pkg/session/local"
	"github.com/rosemira/rosebot/pkg/shopify"
	vectorutils "github.com/rosemira/rosebot/pkg/vector/utils"
)

// serveFlags are the registry keys for flags registered on the serve command.
var serveFlags = []string{
	config.FlagListen,
	config.FlagIndexPath,
	config.FlagTopK,
	config.FlagVectorProv,
	config.FlagVectorTgt,
	config.FlagEmbeddingProv,
	config.FlagEmbeddingTgt,
	config.FlagEmbeddingModel,
	config.FlagEmbeddingDims,
	config.FlagLLMProv,
	config.FlagLLMTgt,
	config.FlagLLMModel,
	config.FlagEventsProv,
	config.FlagEventsBrokers,
	config.FlagEventsTopic,
}

type ServeCommander struct {
	listen         string
	indexPath      string
	topK           int
	vectorProvider string
	vectorTarget   string
	embedProvider  string
	embedTarget    string
	embedModel     string
	embedDims      uint
	llmProvider    string
	llmTarget      string
	llmModel       string
	eventsProvider string
	eventsBrokers  string
	eventsTopic    string

	debug  bool
	logger *slog.Logger
	viper  *viper.Viper
}

const serveLongDesc string = `Run the Rosebot webhook API server.

The server answers Shopify chat webhooks on POST /api/shopify-webhook and
exposes knowledge base search and ingest endpoints under /v1/.

Configuration follows the precedence chain flag > environment > config
file > default. Environment variables use the ROSEBOT_ prefix, e.g.
ROSEBOT_SHOPIFY_ACCESS_TOKEN and ROSEBOT_LLM_API_KEY. When no --listen
flag is given and PORT is set, the server listens on :$PORT.`

const serveShortDesc string = "Run the Rosebot webhook API server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}
	fs := config.DefaultFlagSet()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.bind(cmd, fs)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, fs, config.FlagListen, &cmder.listen)
	config.AddStringFlag(cmd, fs, config.FlagIndexPath, &cmder.indexPath)
	config.AddIntFlag(cmd, fs, config.FlagTopK, &cmder.topK)
	config.AddStringFlag(cmd, fs, config.FlagVectorProv, &cmder.vectorProvider)
	config.AddStringFlag(cmd, fs, config.FlagVectorTgt, &cmder.vectorTarget)
	config.AddStringFlag(cmd, fs, config.FlagEmbeddingProv, &cmder.embedProvider)
	config.AddStringFlag(cmd, fs, config.FlagEmbeddingTgt, &cmder.embedTarget)
	config.AddStringFlag(cmd, fs, config.FlagEmbeddingModel, &cmder.embedModel)
	config.AddUintFlag(cmd, fs, config.FlagEmbeddingDims, &cmder.embedDims)
	config.AddStringFlag(cmd, fs, config.FlagLLMProv, &cmder.llmProvider)
	config.AddStringFlag(cmd, fs, config.FlagLLMTgt, &cmder.llmTarget)
	config.AddStringFlag(cmd, fs, config.FlagLLMModel, &cmder.llmModel)
	config.AddStringFlag(cmd, fs, config.FlagEventsProv, &cmder.eventsProvider)
	config.AddStringFlag(cmd, fs, config.FlagEventsBrokers, &cmder.eventsBrokers)
	config.AddStringFlag(cmd, fs, config.FlagEventsTopic, &cmder.eventsTopic)

	return cmd
}

// bind connects flags to the viper precedence chain and resolves final
// values back into the commander fields.
func (c *ServeCommander) bind(cmd *cobra.Command, fs config.FlagSet) error {
	configDir, _ := cmd.Flags().GetString("config-dir")

	v, err := config.InitViper(configDir)
	if err != nil {
		return err
	}
	config.BindRegisteredFlags(v, cmd, fs, serveFlags)
	c.viper = v

	c.listen = v.GetString("api.listen")
	c.indexPath = v.GetString("knowledge.index_path")
	c.topK = v.GetInt("knowledge.top_k")
	c.vectorProvider = v.GetString("vector_store.provider")
	c.vectorTarget = v.GetString("vector_store.target")
	c.embedProvider = v.GetString("embedding.provider")
	c.embedTarget = v.GetString("embedding.target")
	c.embedModel = v.GetString("embedding.model")
	c.embedDims = v.GetUint("embedding.dimensions")
	c.llmProvider = v.GetString("llm.provider")
	c.llmTarget = v.GetString("llm.target")
	c.llmModel = v.GetString("llm.model")
	c.eventsProvider = v.GetString("events.provider")
	c.eventsBrokers = v.GetString("events.brokers")
	c.eventsTopic = v.GetString("events.topic")

	// Hosted platforms hand out the port via PORT. An explicit --listen
	// flag still wins.
	if port := os.Getenv("PORT"); port != "" && !cmd.Flags().Changed("listen") {
		c.listen = ":" + port
	}

	return nil
}

func (c *ServeCommander) run(cmd *cobra.Command) error {
	c.logger = logger.New(
		logger.WithDebug(c.debug),
		logger.WithJSON(true),
	)

	ctx := cmd.Context()

	vectorTarget := c.vectorTarget
	if c.vectorProvider == "sqlite" {
		vectorTarget = c.indexPath
	}
	driver, err := vectorutils.NewVectorDriver(ctx, &vectorutils.NewVectorDriverOpts{
		ProviderType: c.vectorProvider,
		Target:       vectorTarget,
		Dimensions:   c.embedDims,
		Logger:       c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating vector driver: %w", err)
	}
	defer driver.Close()

	embedder, err := embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
		ProviderType: c.embedProvider,
		TargetURL:    c.embedTarget,
		Model:        c.embedModel,
		APIKey:       c.viper.GetString("llm.api_key"),
	})
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	defer embedder.Close()

	base := knowledge.NewBase(embedder, driver, knowledge.Config{
		TopK: c.topK,
	}, c.logger)
	if err := base.EnsureSeeded(ctx); err != nil {
		return fmt.Errorf("seeding knowledge base: %w", err)
	}

	chatModel, err := llmutils.NewChatModel(&llmutils.NewChatModelOpts{
		ProviderType: c.llmProvider,
		TargetURL:    c.llmTarget,
		Model:        c.llmModel,
		APIKey:       c.viper.GetString("llm.api_key"),
		Temperature:  float32(c.viper.GetFloat64("llm.temperature")),
		MaxTokens:    c.viper.GetInt("llm.max_tokens"),
	})
	if err != nil {
		return fmt.Errorf("creating chat model: %w", err)
	}
	defer chatModel.Close()

	publisher, err := eventstreamutils.NewPublisher(&eventstreamutils.NewPublisherOpts{
		ProviderType: c.eventsProvider,
		Brokers:      splitBrokers(c.eventsBrokers),
		Topic:        c.eventsTopic,
		Logger:       c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating event publisher: %w", err)
	}
	defer publisher.Close()

	replier, err := c.newReplier()
	if err != nil {
		return err
	}

	sessions := local.NewStore(local.Config{
		Window: c.viper.GetInt("session.window"),
	})
	defer sessions.Close()

	server, err := api.NewServer(api.Config{
		ListenAddr:    c.listen,
		WebhookSecret: c.viper.GetString("shopify.webhook_secret"),
		SendReplies:   c.viper.GetBool("shopify.send_replies"),
		LLMProvider:   c.llmProvider,
		LLMModel:      c.llmModel,
	}, base, sessions, chatModel, replier, publisher, c.logger)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	c.logger.Info("starting rosebot",
		"listen", c.listen,
		"vector_store", c.vectorProvider,
		"embedding_provider", c.embedProvider,
		"llm_provider", c.llmProvider,
		"events_provider", c.eventsProvider,
	)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", "signal", sig.String())
		return server.Shutdown()
	}
}

// newReplier builds the Shopify reply client when a shop URL is configured.
// Without one the server only echoes answers in the webhook response.
func (c *ServeCommander) newReplier() (api.Replier, error) {
	shopURL := c.viper.GetString("shopify.shop_url")
	if shopURL == "" {
		c.logger.Info("no shopify shop URL configured, replies disabled")
		return nil, nil
	}

	client, err := shopify.NewClient(shopify.Config{
		ShopURL:     shopURL,
		APIVersion:  c.viper.GetString("shopify.api_version"),
		AccessToken: c.viper.GetString("shopify.access_token"),
	}, c.logger)
	if err != nil {
		return nil, fmt.Errorf("creating shopify client: %w", err)
	}
	return client, nil
}

func splitBrokers(brokers string) []string {
	if strings.TrimSpace(brokers) == "" {
		return nil
	}

	parts := strings.Split(brokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
