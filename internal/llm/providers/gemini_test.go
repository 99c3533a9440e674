// File path: internal/llm/providers/gemini_test.go
package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiProviderMapsRoles(t *testing.T) {
	type content struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	}
	var got struct {
		Contents          []content `json:"contents"`
		SystemInstruction *content  `json:"systemInstruction"`
	}
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":" reply "}]}}]}`))
	}))
	defer srv.Close()

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL + "/"},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	p := &GeminiProvider{client: client, model: "test-model"}
	out, err := p.Chat(context.Background(), Request{Messages: []Message{
		{Role: "System", Content: "be brief"},
		{Role: "USER", Content: "question"},
		{Role: " assistant ", Content: "earlier answer"},
		{Role: "user", Content: "follow up"},
	}})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if out != "reply" {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(path, "test-model:generateContent") {
		t.Fatalf("unexpected request path %q", path)
	}
	roles := make([]string, 0, len(got.Contents))
	for _, c := range got.Contents {
		roles = append(roles, c.Role)
	}
	if strings.Join(roles, ",") != "user,model,user" {
		t.Fatalf("unexpected roles: %v", roles)
	}
	if got.SystemInstruction == nil || len(got.SystemInstruction.Parts) == 0 || got.SystemInstruction.Parts[0].Text != "be brief" {
		t.Fatalf("system instruction not forwarded: %+v", got.SystemInstruction)
	}
}

func TestGeminiProviderRejectsSystemOnly(t *testing.T) {
	p := &GeminiProvider{}
	if _, err := p.Chat(context.Background(), Request{Messages: []Message{{Role: "system", Content: "x"}}}); err != ErrNoMessages {
		t.Fatalf("expected ErrNoMessages, got %v", err)
	}
}
