package ollama

import (
	"context"
	"fmt"
	"strings"
	"time"

	"claimsdesk/app/config"

	"github.com/samber/do"
	"github.com/samber/oops"
	"github.com/tmc/langchaingo/llms"
	lcollama "github.com/tmc/langchaingo/llms/ollama"
)

const maxCallDuration = 30 * time.Second

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Client struct {
	cfg *config.Config
	llm *lcollama.LLM
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	llm, err := lcollama.New(
		lcollama.WithServerURL(cfg.Ollama.BaseURL),
		lcollama.WithModel(cfg.Ollama.Model),
	)
	if err != nil {
		return nil, oops.Errorf("failed to create ollama client: %w", err)
	}

	return &Client{
		cfg: cfg,
		llm: llm,
	}, nil
}

// Chat sends the role-tagged transcript to the local model and returns the
// trimmed completion text.
func (c *Client) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, maxCallDuration)
	defer cancel()

	content := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		role := llms.ChatMessageTypeHuman
		switch msg.Role {
		case RoleSystem:
			role = llms.ChatMessageTypeSystem
		case RoleAssistant:
			role = llms.ChatMessageTypeAI
		}

		content = append(content, llms.TextParts(role, msg.Content))
	}

	resp, err := c.llm.GenerateContent(ctx, content)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no chat completion found")
	}

	return strings.TrimSpace(resp.Choices[0].Content), nil
}
