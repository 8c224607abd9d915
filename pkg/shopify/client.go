// Package shopify provides a client for replying to Shopify chat
// conversations and verification of webhook signatures.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultAPIVersion is the Shopify API version used when none is configured.
const DefaultAPIVersion = "2023-07"

// Client sends bot replies into Shopify chat conversations.
type Client struct {
	shopURL string

	// apiVersion is held for Admin API calls; the chat messages
	// endpoint is unversioned and does not take it in its path.
	apiVersion  string
	accessToken string
	httpClient  *http.Client
	logger      *slog.Logger
}

// Config holds configuration for the Shopify client.
type Config struct {
	// ShopURL is the base shop URL (e.g., "https://example.myshopify.com").
	ShopURL string

	// APIVersion is the Shopify API version.
	// Defaults to DefaultAPIVersion if empty.
	APIVersion string

	// AccessToken is sent as X-Shopify-Access-Token.
	AccessToken string
}

// replyRequest is the request body for a chat reply.
type replyRequest struct {
	Message string `json:"message"`
	Author  string `json:"author"`
}

// NewClient creates a new Shopify chat client.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.ShopURL == "" {
		return nil, fmt.Errorf("shop URL is required")
	}

	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}

	return &Client{
		shopURL:     cfg.ShopURL,
		apiVersion:  apiVersion,
		accessToken: cfg.AccessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}, nil
}

// SendReply posts a bot message into a chat conversation.
func (c *Client) SendReply(ctx context.Context, conversationID, message string) error {
	reqBody := replyRequest{
		Message: message,
		Author:  "bot",
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshaling reply request: %w", err)
	}

	url := fmt.Sprintf("%s/api/chat/conversations/%s/messages", c.shopURL, conversationID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("creating reply request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending reply request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("shopify returned status %d: %s", resp.StatusCode, string(body))
	}

	c.logger.Info("sent reply to shopify conversation",
		"conversation_id", conversationID,
	)

	return nil
}
