// File path: internal/search/service.go

// Package search answers free-text hadith queries from the corpus and falls
// back to a labelled AI explanation when nothing matches.
package search

import (
	"context"
	"strings"

	"github.com/hadithlens/hadithlens/internal/classify"
	"github.com/hadithlens/hadithlens/internal/common"
	"github.com/hadithlens/hadithlens/internal/common/telemetry"
	"github.com/hadithlens/hadithlens/internal/corpus"
	"github.com/hadithlens/hadithlens/internal/retriever"
	"github.com/hadithlens/hadithlens/internal/textnorm"
)

const (
	NoArabicText  = "No Arabic text available."
	NoEnglishText = "No English text available."

	EmptyQueryMessage = "Please enter a phrase or reference to search for."
)

// Source tells where a response came from.
type Source string

const (
	SourceCorpus  Source = "corpus"
	SourceAI      Source = "ai"
	SourceFailure Source = "failure"
	SourceInvalid Source = "invalid"
)

const blockSeparator = "---"

type Matcher interface {
	Search(query string) []retriever.Match
	Ready() bool
}

type Classifier interface {
	Classify(ref string) classify.Classification
}

type Explainer interface {
	Explain(ctx context.Context, query string) (string, error)
}

// Result is the outcome of one query. Text is never empty.
type Result struct {
	Text    string
	Source  Source
	Matches []retriever.Match
}

type Service struct {
	matcher    Matcher
	classifier Classifier
	fallback   Explainer
}

func New(matcher Matcher, classifier Classifier, fallback Explainer) *Service {
	return &Service{matcher: matcher, classifier: classifier, fallback: fallback}
}

// Search runs Validate, Match, then either formats the matches or asks the
// fallback. It never returns an error; failures become FailureMessage.
func (s *Service) Search(ctx context.Context, query string) Result {
	logger := common.Logger()
	if strings.TrimSpace(query) == "" {
		return Result{Text: EmptyQueryMessage, Source: SourceInvalid}
	}
	ctx, end := telemetry.StartSpan(ctx, "search.query")
	defer end()

	matches := s.match(query)
	if len(matches) > 0 {
		telemetry.RecordSearch(true)
		logger.Info("search: corpus matches", "matches", len(matches), "best_score", matches[0].Score)
		return Result{Text: s.format(matches), Source: SourceCorpus, Matches: matches}
	}

	telemetry.RecordSearch(false)
	if s.fallback == nil {
		logger.Warn("search: no match and no fallback configured")
		return Result{Text: FailureMessage, Source: SourceFailure}
	}
	text, err := s.fallback.Explain(ctx, strings.TrimSpace(query))
	if err != nil || strings.TrimSpace(text) == "" {
		logger.Error("search: fallback failed", "error", err)
		return Result{Text: FailureMessage, Source: SourceFailure}
	}
	logger.Info("search: served ai fallback")
	return Result{Text: text, Source: SourceAI}
}

func (s *Service) match(query string) []retriever.Match {
	trimmed := strings.TrimSpace(query)
	if len(textnorm.ExtractKeywords(trimmed)) == 0 {
		common.Logger().Debug("search: query has no keywords", "query", trimmed)
		return nil
	}
	if s.matcher == nil || !s.matcher.Ready() {
		common.Logger().Warn("search: index not ready")
		return nil
	}
	return s.matcher.Search(strings.ToLower(trimmed))
}

func (s *Service) format(matches []retriever.Match) string {
	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, s.formatBlock(m.Record))
	}
	return strings.Join(blocks, "\n")
}

func (s *Service) formatBlock(rec corpus.Record) string {
	arabic := strings.TrimSpace(rec.Arabic)
	if arabic == "" {
		arabic = NoArabicText
	}
	english := strings.TrimSpace(rec.English)
	if english == "" {
		english = NoEnglishText
	}
	reference := strings.TrimSpace(rec.Reference)
	if reference == "" {
		reference = corpus.UnknownNumber
	}
	grade := classify.Classification{Grade: classify.Ahad}
	if s.classifier != nil {
		grade = s.classifier.Classify(reference)
	}
	var b strings.Builder
	b.WriteString(blockSeparator)
	b.WriteString("\nArabic: ")
	b.WriteString(arabic)
	b.WriteString("\nEnglish Matn: ")
	b.WriteString(english)
	b.WriteString("\nReference: ")
	b.WriteString(reference)
	b.WriteString("\nClassification: ")
	b.WriteString(grade.String())
	b.WriteString("\n")
	return b.String()
}
