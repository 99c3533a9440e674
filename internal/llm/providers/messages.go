// File path: internal/llm/providers/messages.go
package providers

import (
	"errors"
	"strings"
)

// ErrNoMessages is returned for a request without any message.
var ErrNoMessages = errors.New("no messages provided")

// NormalizeMessages trims and lowercases roles; anything other than
// system or assistant becomes user. The input is left untouched.
func NormalizeMessages(messages []Message) ([]Message, error) {
	if len(messages) == 0 {
		return nil, ErrNoMessages
	}
	out := make([]Message, len(messages))
	for i, msg := range messages {
		role := strings.ToLower(strings.TrimSpace(msg.Role))
		if role != "system" && role != "assistant" {
			role = "user"
		}
		out[i] = Message{Role: role, Content: msg.Content}
	}
	return out, nil
}

// splitSystem separates system instructions from the conversation turns of
// normalized messages.
func splitSystem(messages []Message) (string, []Message) {
	var system []string
	turns := make([]Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == "system" {
			system = append(system, msg.Content)
			continue
		}
		turns = append(turns, msg)
	}
	return strings.Join(system, "\n\n"), turns
}
