// File: internal/usecase/chat_uc.go
package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"cuisine-chat/internal/domain"
	"cuisine-chat/internal/domain/ports/adapter"
	"cuisine-chat/internal/infra/logging"
	"cuisine-chat/internal/infra/metrics"
)

// systemPrompt is the fixed persona prepended to every model request.
const systemPrompt = `You are a knowledgeable and friendly expert on Brazilian cuisine. Your expertise includes:

- Traditional dishes: feijoada, pão de queijo, churrasco, moqueca, vatapá, acarajé
- Regional cuisines: Bahian (African-influenced), Mineiro (comfort food), Gaucho (grilled meats), Northern (Amazonian ingredients)
- Street food: coxinha, pastel, açaí, tapioca
- Beverages: caipirinha, guaraná, cachaça, café brasileiro
- Ingredients: mandioca, dendê oil, hearts of palm, black beans, farofa
- Cooking techniques and cultural context

Guidelines:
1. Provide detailed, accurate information about Brazilian food
2. Include cultural context when relevant
3. Offer recipe suggestions with ingredients and steps when asked
4. Be enthusiastic and share interesting facts
5. If asked about non-Brazilian cuisine topics, politely explain that you specialize in Brazilian cuisine and redirect the conversation

Respond in the same language as the user's question (Portuguese or English).`

// FallbackReply is returned when the provider succeeds but produces no
// content. A reply is never empty.
const FallbackReply = "I apologize, but I could not generate a response."

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 1000
)

// Compile-time check
var _ ChatUseCase = (*chatUC)(nil)

type ChatUseCase interface {
	// ProcessMessage forwards one validated user message to the model
	// and returns the reply. Provider failures come back as
	// domain.ErrServiceUnavailable; raw provider detail stays in logs.
	ProcessMessage(ctx context.Context, userMessage string) (string, error)
}

type chatUC struct {
	ai        adapter.AIServiceAdapter
	sanitizer *PromptSanitizer
	provider  string
	model     string
	log       *zerolog.Logger
}

func NewChatUseCase(ai adapter.AIServiceAdapter, sanitizer *PromptSanitizer, provider, model string, logger *zerolog.Logger) *chatUC {
	return &chatUC{ai: ai, sanitizer: sanitizer, provider: provider, model: model, log: logger}
}

func (c *chatUC) ProcessMessage(ctx context.Context, userMessage string) (string, error) {
	l := logging.With(ctx, c.log)
	defer logging.TraceDuration(l, "ChatUC.ProcessMessage")()

	outbound := c.sanitizer.Clean(userMessage)
	if outbound != userMessage {
		metrics.IncFiltered()
		l.Warn().Msg("injection pattern detected; message filtered")
	}

	msgs := []adapter.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: outbound},
	}
	params := adapter.CompletionParams{
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}

	start := time.Now()
	reply, err := c.ai.Chat(ctx, c.model, msgs, params)
	metrics.ObserveAICall(c.provider, c.model, int(time.Since(start).Milliseconds()), err == nil)
	if err != nil {
		l.Error().Err(err).Str("provider", c.provider).Str("model", c.model).Msg("AI call failed")
		return "", domain.ErrServiceUnavailable
	}
	if reply == "" {
		l.Debug().Msg("provider returned empty content; using fallback reply")
		return FallbackReply, nil
	}
	return reply, nil
}
