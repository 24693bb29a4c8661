// Package completion adapts the go-agents chat interface into the narrow
// language model contract the pipeline depends on. The pipeline never sees
// provider or model internals, only the returned text.
package completion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Roles used in message histories handed to the model.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversational turn handed to the model.
type Message struct {
	Role    string
	Content string
}

// System is the language model contract used by pipeline stages.
// Complete sends the system prompt plus the oldest-first message history
// and returns the model's text response.
type System interface {
	Complete(ctx context.Context, systemPrompt string, history []Message) (string, error)
}

type completions struct {
	cfg    gaconfig.AgentConfig
	logger *slog.Logger
}

// New creates a completion system backed by a configured go-agents agent.
func New(cfg gaconfig.AgentConfig, logger *slog.Logger) System {
	return &completions{
		cfg:    cfg,
		logger: logger.With("system", "completion", "agent", cfg.Name),
	}
}

func (c *completions) Complete(ctx context.Context, systemPrompt string, history []Message) (string, error) {
	a, err := agent.New(&c.cfg)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	prompt := composePrompt(systemPrompt, history)

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	content := strings.TrimSpace(resp.Text())
	c.logger.Debug("completion returned", "chars", len(content))

	return content, nil
}

// composePrompt folds the message history into a single prompt below the
// system instructions, oldest turn first.
func composePrompt(systemPrompt string, history []Message) string {
	if len(history) == 0 {
		return systemPrompt
	}

	var sb strings.Builder
	sb.WriteString(systemPrompt)
	sb.WriteString("\n\nConversation so far (oldest first):\n")

	for _, m := range history {
		fmt.Fprintf(&sb, "\n[%s]: %s", m.Role, m.Content)
	}

	return sb.String()
}
