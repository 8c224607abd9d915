package api

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/rosemira/rosebot/pkg/eventstream"
	"github.com/rosemira/rosebot/pkg/knowledge"
	"github.com/rosemira/rosebot/pkg/llm"
	"github.com/rosemira/rosebot/pkg/session"
)

// Replier posts generated answers back into a chat conversation.
type Replier interface {
	SendReply(ctx context.Context, conversationID, message string) error
}

// Server is the API server answering Shopify chat webhooks.
type Server struct {
	config    Config
	base      *knowledge.Base
	sessions  session.Store
	chatModel llm.ChatModel
	replier   Replier
	publisher eventstream.Publisher
	logger    *slog.Logger
	app       *fiber.App
}

// NewServer creates a new API server. The replier may be nil when replies
// are disabled; base and sessions may be nil in degraded test setups, in
// which case the affected endpoints report service unavailable.
func NewServer(
	config Config,
	base *knowledge.Base,
	sessions session.Store,
	chatModel llm.ChatModel,
	replier Replier,
	publisher eventstream.Publisher,
	logger *slog.Logger,
) (*Server, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:    config,
		base:      base,
		sessions:  sessions,
		chatModel: chatModel,
		replier:   replier,
		publisher: publisher,
		logger:    logger,
		app:       app,
	}

	app.Get("/", s.handleHealth)
	app.Post("/api/shopify-webhook", s.handleShopifyWebhook)
	app.Post("/test", s.handleTestEcho)
	app.Get("/v1/search", s.handleSearchEndpoint)
	app.Post("/v1/documents", s.handleIngestDocuments)

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		"listen", s.config.ListenAddr,
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
