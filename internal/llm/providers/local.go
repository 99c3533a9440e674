// File path: internal/llm/providers/local.go
package providers

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyResponse is returned when a provider answers without content.
var ErrEmptyResponse = errors.New("model returned no content")

type Message struct {
	Role    string
	Content string
}

// Request is one completion call. A nil Temperature leaves the provider
// default in place; MaxTokens <= 0 leaves the output budget unset.
type Request struct {
	Messages    []Message
	MaxTokens   int
	Temperature *float64
}

type Provider interface {
	Chat(ctx context.Context, req Request) (string, error)
	Name() string
}

// LocalProvider echoes the last message; it keeps the service usable
// without credentials.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (l *LocalProvider) Chat(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	messages, err := NormalizeMessages(req.Messages)
	if err != nil {
		return "", err
	}
	last := strings.TrimSpace(messages[len(messages)-1].Content)
	if last == "" {
		return "", ErrEmptyResponse
	}
	return "[local-stub] " + last, nil
}

func (l *LocalProvider) Name() string {
	return "local"
}
