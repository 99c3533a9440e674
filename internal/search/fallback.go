// File path: internal/search/fallback.go
package search

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hadithlens/hadithlens/internal/common"
	"github.com/hadithlens/hadithlens/internal/common/telemetry"
	"github.com/hadithlens/hadithlens/internal/llm"
)

const (
	// AIReference marks generated answers so they are never mistaken for a
	// corpus citation.
	AIReference = "AI Generated"

	SearchTip = "Search tip: try a distinctive phrase from the hadith, or a collection name and number."

	NotFoundWarning = "⚠️ This exact phrase was not found in the nine hadith collections. The explanation above is AI generated and must be verified with a qualified scholar."

	FailureMessage = "Sorry, no matching hadith was found and an AI explanation could not be generated right now. Please try again later."

	defaultFallbackTokens  = 600
	defaultFallbackTimeout = 30 * time.Second
)

// ErrFallbackUnavailable wraps every failure of the generative call.
var ErrFallbackUnavailable = errors.New("ai fallback unavailable")

// Scholars is the allow-list the model may cite when asserting weakness.
var Scholars = []string{
	"al-Bukhari",
	"Muslim ibn al-Hajjaj",
	"Ahmad ibn Hanbal",
	"Yahya ibn Ma'in",
	"Abu Hatim al-Razi",
	"al-Daraqutni",
	"Ibn Hajar al-Asqalani",
	"al-Dhahabi",
	"al-Albani",
}

var fallbackSystemPrompt = strings.Join([]string{
	"You are a careful scholar of hadith sciences.",
	"The user gives a statement that was not found verbatim in Sahih al-Bukhari, Sahih Muslim, Sunan Abi Dawud, Jami at-Tirmidhi, Sunan an-Nasai, Sunan Ibn Majah, Muwatta Malik, Musnad Ahmad or Sunan ad-Darimi.",
	"State whether the statement is authentic, weak, fabricated, or not found in these nine collections.",
	"If it is authentic, name the collection it is closest to. If you assert weakness, cite only these scholars: " + strings.Join(Scholars, ", ") + ".",
	"Never invent sources, chains, numbers or quotations. If you are not sure, say that it could not be verified.",
	"Write two to four short paragraphs in plain English without headings or lists.",
}, " ")

// FallbackConfig tunes the generative call. A nil Temperature keeps the
// provider default.
type FallbackConfig struct {
	MaxTokens   int
	Temperature *float64
	Timeout     time.Duration
}

// Fallback explains a query the corpus could not answer.
type Fallback struct {
	provider llm.Provider
	cfg      FallbackConfig
}

func NewFallback(provider llm.Provider, cfg FallbackConfig) *Fallback {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultFallbackTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultFallbackTimeout
	}
	return &Fallback{provider: provider, cfg: cfg}
}

// Explain asks the model about query and shapes its answer. Errors wrap
// ErrFallbackUnavailable; their text is for logs only.
func (f *Fallback) Explain(ctx context.Context, query string) (string, error) {
	if f == nil || f.provider == nil {
		return "", fmt.Errorf("%w: no provider configured", ErrFallbackUnavailable)
	}
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	start := time.Now()
	raw, err := f.provider.Chat(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: "system", Content: fallbackSystemPrompt},
			{Role: "user", Content: "Statement: " + strings.TrimSpace(query)},
		},
		MaxTokens:   f.cfg.MaxTokens,
		Temperature: f.cfg.Temperature,
	})
	telemetry.RecordModelCall("fallback", time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFallbackUnavailable, err)
	}
	body := FormatParagraphs(raw)
	if body == "" {
		return "", fmt.Errorf("%w: %v", ErrFallbackUnavailable, llm.ErrEmptyResponse)
	}
	common.Logger().Debug("search: fallback generated", "provider", f.provider.Name(), "chars", len(body))
	return shapeFallback(body), nil
}

func shapeFallback(body string) string {
	var b strings.Builder
	b.WriteString("---\nEnglish Matn:\n")
	b.WriteString(body)
	b.WriteString("\n\nReference: ")
	b.WriteString(AIReference)
	b.WriteString("\n\n")
	b.WriteString(SearchTip)
	b.WriteString("\n\n")
	b.WriteString(NotFoundWarning)
	return b.String()
}

var (
	sentenceEnd = regexp.MustCompile(`([.!?]["')\]]?)\s+(\S)`)
	blankRuns   = regexp.MustCompile(`\n{3,}`)
	lineSpaces  = regexp.MustCompile(`[ \t]+\n`)
)

// FormatParagraphs puts a blank line after every sentence so the answer
// renders as short paragraphs.
func FormatParagraphs(text string) string {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n")
	if text == "" {
		return ""
	}
	text = sentenceEnd.ReplaceAllString(text, "$1\n\n$2")
	text = lineSpaces.ReplaceAllString(text, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
