package api

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rosemira/rosebot/api/chat"
	"github.com/rosemira/rosebot/pkg/eventstream"
	"github.com/rosemira/rosebot/pkg/shopify"
	"github.com/rosemira/rosebot/pkg/utils"
)

// ErrorResponse is the error payload returned by all endpoints.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// WebhookResponse is the payload returned for an answered webhook turn.
type WebhookResponse struct {
	Status            string   `json:"status"`
	Query             string   `json:"query"`
	Response          string   `json:"response"`
	ConversationID    string   `json:"conversation_id"`
	SuggestedProducts []string `json:"suggested_products"`
}

// handleHealth returns the service health payload.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "online",
		Service: "Rosemira Chat Bot API",
	})
}

// handleTestEcho echoes the received payload for webhook debugging.
func (s *Server) handleTestEcho(c *fiber.Ctx) error {
	var payload map[string]any
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Detail: "Invalid JSON payload",
		})
	}

	return c.JSON(map[string]any{
		"status":   "success",
		"received": payload,
	})
}

// handleShopifyWebhook answers an incoming chat message webhook.
func (s *Server) handleShopifyWebhook(c *fiber.Ctx) error {
	s.logger.Info("received webhook from Shopify")

	body := c.Body()

	if s.config.WebhookSecret != "" {
		signature := c.Get(shopify.HMACHeader)
		if !shopify.VerifyWebhookHMAC(s.config.WebhookSecret, body, signature) {
			s.logger.Warn("webhook signature verification failed")
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Detail: "Invalid webhook signature",
			})
		}
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		s.logger.Error("invalid JSON in webhook payload")
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Detail: "Invalid JSON payload",
		})
	}

	conversationID := extractConversationID(payload)
	message := extractMessageText(payload)
	senderID := extractSenderID(payload)

	if message == "" {
		s.logger.Warn("no message text found in payload")
		return c.JSON(map[string]string{
			"status": "error",
			"detail": "No message text found in payload",
		})
	}

	s.logger.Info("processing message",
		"conversation_id", conversationID,
		"sender_id", senderID,
		"query", utils.Truncate(message, 120),
	)

	startedAt := time.Now().UTC()

	output, err := chat.Answer(c.Context(), chat.Input{
		ConversationID: conversationID,
		SenderID:       senderID,
		Query:          message,
	}, s.base, s.sessions, s.chatModel, s.logger)
	if err != nil {
		s.logger.Error("error processing webhook", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Detail: err.Error(),
		})
	}

	s.publishTurn(c, startedAt, conversationID, senderID, message, output)

	if s.config.SendReplies && s.replier != nil {
		if err := s.replier.SendReply(c.Context(), conversationID, output.Response); err != nil {
			s.logger.Error("failed to send reply to shopify",
				"conversation_id", conversationID,
				"error", err,
			)
		}
	}

	suggested := output.SuggestedProducts
	if suggested == nil {
		suggested = []string{}
	}

	return c.JSON(WebhookResponse{
		Status:            "success",
		Query:             message,
		Response:          output.Response,
		ConversationID:    conversationID,
		SuggestedProducts: suggested,
	})
}

// publishTurn emits a turn event. Publish failures are logged, not returned;
// the customer already has their answer.
func (s *Server) publishTurn(
	c *fiber.Ctx,
	startedAt time.Time,
	conversationID, senderID, query string,
	output *chat.Output,
) {
	completedAt := time.Now().UTC()

	event := &eventstream.TurnAnsweredEvent{
		SchemaVersion: eventstream.SchemaVersionV1,
		EventType:     eventstream.EventTypeTurnAnswered,
		EventID:       uuid.New().String(),
		EmittedAt:     completedAt,
		Source: eventstream.EventSource{
			Provider: s.config.LLMProvider,
			Model:    s.config.LLMModel,
		},
		RequestMeta: eventstream.TurnRequestMeta{
			Path:        c.Path(),
			StartedAt:   startedAt,
			CompletedAt: completedAt,
			DurationMs:  completedAt.Sub(startedAt).Milliseconds(),
			HTTPStatus:  fiber.StatusOK,
		},
		Turn: eventstream.TurnMeta{
			ConversationID:    conversationID,
			SenderID:          senderID,
			Query:             query,
			Response:          output.Response,
			SuggestedProducts: output.SuggestedProducts,
			Recommendation:    output.Recommendation,
		},
	}

	if err := s.publisher.PublishTurn(c.Context(), event); err != nil {
		s.logger.Error("failed to publish turn event", "error", err)
	}
}

// extractConversationID extracts the conversation ID with fallbacks for
// different payload formats.
func extractConversationID(payload map[string]any) string {
	if id := getString(payload, "conversation_id"); id != "" {
		return id
	}
	if id := getString(getMap(payload, "conversation"), "id"); id != "" {
		return id
	}
	data := getMap(payload, "data")
	if id := getString(data, "conversation_id"); id != "" {
		return id
	}
	if id := getString(getMap(data, "conversation"), "id"); id != "" {
		return id
	}
	return "unknown_conversation"
}

// extractMessageText extracts the message text with fallbacks for different
// payload formats.
func extractMessageText(payload map[string]any) string {
	if text := getString(getMap(payload, "message"), "text"); text != "" {
		return text
	}
	data := getMap(payload, "data")
	if text := getString(getMap(data, "message"), "text"); text != "" {
		return text
	}
	if text := getString(payload, "content"); text != "" {
		return text
	}
	return getString(data, "content")
}

// extractSenderID extracts the sender ID with fallbacks.
func extractSenderID(payload map[string]any) string {
	if id := getString(getMap(payload, "sender"), "id"); id != "" {
		return id
	}
	if id := getString(getMap(getMap(payload, "data"), "sender"), "id"); id != "" {
		return id
	}
	if id := getString(payload, "author_id"); id != "" {
		return id
	}
	return "unknown_sender"
}

func getMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	child, _ := m[key].(map[string]any)
	return child
}

// getString reads a string value, rendering JSON numbers as integers when
// payloads carry numeric IDs.
func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	switch v := m[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return ""
	default:
		return ""
	}
}
