package service

import (
	"context"
	"strings"

	"github.com/interno-studio/interno-backend/pkg/gemini"
	"github.com/interno-studio/interno-backend/pkg/logger"
)

// Canned replies used when the AI backend cannot answer.
const (
	replyNotConfigured = "Sorry, the AI service is not configured. Please set up your Gemini API key."
	replyUnavailable   = "Sorry, I'm having trouble connecting to the AI service. Please try again later."
	replyEmpty         = "Sorry, I couldn't generate a response."
)

// conciergeEntry maps keywords in a visitor's question to a scripted answer.
type conciergeEntry struct {
	keywords []string
	answer   string
}

var conciergeEntries = []conciergeEntry{
	{
		keywords: []string{"hello", "hi", "hey", "start"},
		answer:   "Hello! Welcome to Interno. How can I help you with your interior design needs today?",
	},
	{
		keywords: []string{"price", "cost", "much", "quote", "fee"},
		answer:   "Our pricing depends on the project scope. An initial consultation starts at $150/hour. Would you like to book a call?",
	},
	{
		keywords: []string{"contact", "email", "phone", "call", "reach"},
		answer:   "You can reach us at contact@interno.com or call us at (123) 456 - 7890.",
	},
	{
		keywords: []string{"service", "offer", "do"},
		answer:   "We offer Interior Design, Furniture Selection, Flooring Solutions, and comprehensive Project Management.",
	},
	{
		keywords: []string{"location", "address", "where"},
		answer:   "Our studio is located at 55 East Birchwood Ave. Brooklyn, New York 11201, USA.",
	},
	{
		keywords: []string{"thank", "thanks"},
		answer:   "You're very welcome! Is there anything else I can help you with?",
	},
}

const conciergeDefault = "I'm not sure about that specifically. Could you please try asking about our 'services', 'pricing', or 'contact' details?"

// AIClient is the slice of the Gemini client the chat service needs.
type AIClient interface {
	Configured() bool
	GenerateContent(ctx context.Context, message string) (string, error)
}

type ChatService interface {
	Ask(ctx context.Context, message string) string
	Concierge(message string) string
}

type chatService struct {
	ai AIClient
}

// NewChatService builds the chat service. ai may be nil when no AI backend
// is wired up.
func NewChatService(ai AIClient) ChatService {
	return &chatService{ai: ai}
}

// Ask forwards a free-form question to the AI backend. Failures never
// surface as errors: the visitor always gets a readable reply.
func (s *chatService) Ask(ctx context.Context, message string) string {
	if s.ai == nil || !s.ai.Configured() {
		return replyNotConfigured
	}

	reply, err := s.ai.GenerateContent(ctx, message)
	if err != nil {
		logger.Error("AI chat request failed", err, nil)
		return replyUnavailable
	}
	if reply == "" {
		return replyEmpty
	}
	return reply
}

// Concierge answers from the scripted knowledge base by keyword match.
// Entries are checked in order; the first hit wins.
func (s *chatService) Concierge(message string) string {
	normalized := strings.ToLower(message)
	for _, entry := range conciergeEntries {
		for _, keyword := range entry.keywords {
			if strings.Contains(normalized, keyword) {
				return entry.answer
			}
		}
	}
	return conciergeDefault
}

var _ AIClient = (*gemini.Client)(nil)
