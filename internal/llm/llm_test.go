// File path: internal/llm/llm_test.go
package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hadithlens/hadithlens/internal/llm/providers"
)

func TestNewProviderFallsBackToLocal(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	p := NewProvider(context.Background(), Options{})
	if p.Name() != "local" {
		t.Fatalf("expected local provider, got %s", p.Name())
	}
	out, err := p.Chat(context.Background(), Request{Messages: []Message{{Role: "user", Content: " hi "}}})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if out != "[local-stub] hi" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNewProviderSelectsOpenAI(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_ENDPOINT", "http://127.0.0.1:1/v1")
	p := NewProvider(context.Background(), Options{RPS: 5, Burst: 2})
	if p.Name() != "openai" {
		t.Fatalf("expected openai provider, got %s", p.Name())
	}
	if _, ok := p.(*providers.Throttled); !ok {
		t.Fatalf("expected throttled wrapper, got %T", p)
	}
}

func TestLocalProviderRejectsEmptyContent(t *testing.T) {
	p := providers.NewLocalProvider()
	_, err := p.Chat(context.Background(), Request{Messages: []Message{{Role: "user", Content: "  "}}})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestThrottledHonoursContext(t *testing.T) {
	p := providers.NewThrottled(providers.NewLocalProvider(), 0.001, 1)
	req := Request{Messages: []Message{{Role: "user", Content: "x"}}}
	if _, err := p.Chat(context.Background(), req); err != nil {
		t.Fatalf("first call uses the burst: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := p.Chat(ctx, req); err == nil {
		t.Fatalf("expected throttle to give up when the context expires")
	}
}

func TestTemperature(t *testing.T) {
	if got := Temperature(0); got == nil || *got != 0 {
		t.Fatalf("unexpected temperature pointer %v", got)
	}
}
