package testutils

import (
	"context"
	"fmt"

	"github.com/rosemira/rosebot/pkg/llm"
)

// MockChatModel is a test chat model that records transcripts and returns a
// canned reply.
type MockChatModel struct {
	// Reply is returned by Complete.
	Reply string

	// Transcripts accumulates the messages passed to Complete.
	Transcripts [][]llm.Message

	// FailComplete causes Complete to return an error.
	FailComplete bool
}

func NewMockChatModel(reply string) *MockChatModel {
	return &MockChatModel{Reply: reply}
}

func (m *MockChatModel) Complete(_ context.Context, messages []llm.Message) (string, error) {
	if m.FailComplete {
		return "", fmt.Errorf("mock completion failure")
	}
	m.Transcripts = append(m.Transcripts, messages)
	return m.Reply, nil
}

func (m *MockChatModel) Close() error {
	return nil
}

var _ llm.ChatModel = (*MockChatModel)(nil)
