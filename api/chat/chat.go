// Package chat runs the retrieval-augmented answer pipeline for a single
// conversation turn.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rosemira/rosebot/pkg/knowledge"
	"github.com/rosemira/rosebot/pkg/llm"
	"github.com/rosemira/rosebot/pkg/session"
)

// Input identifies the turn to answer.
type Input struct {
	ConversationID string
	SenderID       string
	Query          string
}

// Output is the answered turn.
type Output struct {
	// Response is the generated reply text.
	Response string

	// SuggestedProducts is every product suggested so far in the
	// conversation, including earlier turns.
	SuggestedProducts []string

	// Recommendation reports whether the query asked for suggestions.
	Recommendation bool
}

// Answer runs one turn through the pipeline: retrieve context, complete the
// chat, and record the turn in the session.
func Answer(
	ctx context.Context,
	in Input,
	base *knowledge.Base,
	sessions session.Store,
	model llm.ChatModel,
	logger *slog.Logger,
) (*Output, error) {
	history, err := sessions.History(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("loading conversation history: %w", err)
	}

	alreadySuggested, err := sessions.Suggested(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("loading suggested products: %w", err)
	}

	retrieval := base.Retrieve(ctx, in.Query, alreadySuggested)

	// The retrieval prompt carries the query and knowledge base context;
	// prior turns ride along as chat history.
	messages := make([]llm.Message, 0, len(history)+1)
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: retrieval.Prompt})

	reply, err := model.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("generating response: %w", err)
	}
	reply = strings.TrimSpace(reply)

	// Session bookkeeping failures lose context for later turns but do
	// not invalidate this reply, so log and continue.
	if err := sessions.AppendTurn(ctx, in.ConversationID, session.Turn{
		Role:    llm.RoleUser,
		Content: in.Query,
	}); err != nil {
		logger.Error("failed to record user turn", "error", err)
	}
	if err := sessions.AppendTurn(ctx, in.ConversationID, session.Turn{
		Role:    llm.RoleAssistant,
		Content: reply,
	}); err != nil {
		logger.Error("failed to record assistant turn", "error", err)
	}
	if len(retrieval.NewProducts) > 0 {
		if err := sessions.AddSuggested(ctx, in.ConversationID, retrieval.NewProducts); err != nil {
			logger.Error("failed to record suggested products", "error", err)
		}
	}

	suggested, err := sessions.Suggested(ctx, in.ConversationID)
	if err != nil {
		logger.Error("failed to load suggested products", "error", err)
		suggested = retrieval.NewProducts
	}

	logger.Info("answered conversation turn",
		"conversation_id", in.ConversationID,
		"sender_id", in.SenderID,
		"recommendation", retrieval.Recommendation,
		"suggested_products", len(suggested),
	)

	return &Output{
		Response:          reply,
		SuggestedProducts: suggested,
		Recommendation:    retrieval.Recommendation,
	}, nil
}
