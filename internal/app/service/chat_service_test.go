package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubAI struct {
	configured bool
	reply      string
	err        error
}

func (s *stubAI) Configured() bool { return s.configured }

func (s *stubAI) GenerateContent(ctx context.Context, message string) (string, error) {
	return s.reply, s.err
}

func TestChatService_Ask_NotConfigured(t *testing.T) {
	svc := NewChatService(&stubAI{configured: false})
	assert.Equal(t, replyNotConfigured, svc.Ask(context.Background(), "hello"))

	svc = NewChatService(nil)
	assert.Equal(t, replyNotConfigured, svc.Ask(context.Background(), "hello"))
}

func TestChatService_Ask_BackendError(t *testing.T) {
	svc := NewChatService(&stubAI{configured: true, err: errors.New("boom")})
	assert.Equal(t, replyUnavailable, svc.Ask(context.Background(), "hello"))
}

func TestChatService_Ask_EmptyReply(t *testing.T) {
	svc := NewChatService(&stubAI{configured: true, reply: ""})
	assert.Equal(t, replyEmpty, svc.Ask(context.Background(), "hello"))
}

func TestChatService_Ask_Success(t *testing.T) {
	svc := NewChatService(&stubAI{configured: true, reply: "Velvet works well in low light."})
	assert.Equal(t, "Velvet works well in low light.", svc.Ask(context.Background(), "which fabric?"))
}

func TestChatService_Concierge(t *testing.T) {
	svc := NewChatService(nil)

	tests := []struct {
		message string
		want    string
	}{
		{"Hi there!", "Hello! Welcome to Interno. How can I help you with your interior design needs today?"},
		{"How much does a consultation cost?", "Our pricing depends on the project scope. An initial consultation starts at $150/hour. Would you like to book a call?"},
		{"What's your phone number?", "You can reach us at contact@interno.com or call us at (123) 456 - 7890."},
		{"What services do you offer?", "We offer Interior Design, Furniture Selection, Flooring Solutions, and comprehensive Project Management."},
		{"Where are you located?", "Our studio is located at 55 East Birchwood Ave. Brooklyn, New York 11201, USA."},
		{"Thanks a lot", "You're very welcome! Is there anything else I can help you with?"},
		{"Can you paint my fence?", conciergeDefault},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.Concierge(tt.message), "message: %s", tt.message)
	}
}

func TestChatService_Concierge_CaseInsensitive(t *testing.T) {
	svc := NewChatService(nil)
	assert.Equal(t,
		"Our studio is located at 55 East Birchwood Ave. Brooklyn, New York 11201, USA.",
		svc.Concierge("WHERE is your studio?"))
}
