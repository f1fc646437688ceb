package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"consulting-backend/internal/domains/chat/model"
)

// Completer produces a free-form answer for the conversation.
type Completer interface {
	Complete(ctx context.Context, history []model.Message, message string) (string, error)
}

const systemPrompt = `You are the website assistant of a business consulting firm offering investment consulting, business development, tax advisory and marketing services.
Answer briefly (at most 120 words), politely and in the language of the user.
Do not quote prices; suggest a free initial consultation instead.
If you are unsure, invite the user to leave their details on the Contact page.`

// maxHistory caps how many transcript turns are forwarded.
const maxHistory = 10

var errEmptyCompletion = errors.New("empty completion")

type OpenAICompleter struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAICompleter(apiKey, model string, timeout time.Duration) *OpenAICompleter {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAICompleter{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, history []model.Message, message string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    buildMessages(history, message),
		MaxTokens:   300,
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyCompletion
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", errEmptyCompletion
	}
	return answer, nil
}

func buildMessages(history []model.Message, message string) []openai.ChatCompletionMessage {
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	for _, h := range history {
		role := openai.ChatMessageRoleUser
		if h.Role == model.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		if strings.TrimSpace(h.Content) == "" {
			continue
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: h.Content})
	}
	return append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})
}
