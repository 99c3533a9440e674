// File path: internal/commentary/service.go

// Package commentary produces structured scholarly commentary and narrator
// biographies from the generative model, behind a per-client quota and a
// process-lifetime cache.
package commentary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hadithlens/hadithlens/internal/cache"
	"github.com/hadithlens/hadithlens/internal/common"
	"github.com/hadithlens/hadithlens/internal/common/telemetry"
	"github.com/hadithlens/hadithlens/internal/corpus"
	"github.com/hadithlens/hadithlens/internal/llm"
)

const (
	MissingFieldsMessage = "Missing required fields."
	RateLimitedMessage   = "Daily commentary limit reached. Please try again later."
	NameRequiredMessage  = "Narrator name is required."
	BioRateLimited       = "Daily biography limit reached. Please try again later."
	BioUnavailable       = "Biography unavailable."

	bioBucketPrefix = "bio:"

	defaultCommentaryTokens = 900
	defaultBiographyTokens  = 600
	defaultTimeout          = 30 * time.Second
)

// Request identifies the hadith to comment on. All fields are required.
type Request struct {
	English    string `json:"english"`
	Arabic     string `json:"arabic"`
	Reference  string `json:"reference"`
	Collection string `json:"collection"`
}

// Result is the commentary payload. Error is set only for validation
// failures.
type Result struct {
	Error      string `json:"error,omitempty"`
	Commentary string `json:"commentary"`
	Chain      string `json:"chain"`
	Evaluation string `json:"evaluation"`
}

// Outcome classifies how a call was resolved so callers can pick a status.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeInvalid
	OutcomeRateLimited
	OutcomeModelFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeRateLimited:
		return "rate_limited"
	case OutcomeModelFailure:
		return "model_failure"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// RateLimiter is satisfied by *ratelimit.Limiter.
type RateLimiter interface {
	Allow(clientID string) bool
}

type Config struct {
	MaxTokens    int
	Temperature  float64
	BioMaxTokens int
	Timeout      time.Duration
}

type Service struct {
	provider llm.Provider
	limiter  RateLimiter
	cfg      Config

	commentaries *cache.Store[Result]
	biographies  *cache.Store[string]
	inflight     singleflight.Group
}

type Option func(*Service)

func WithCommentaryCache(store *cache.Store[Result]) Option {
	return func(s *Service) {
		if store != nil {
			s.commentaries = store
		}
	}
}

func WithBiographyCache(store *cache.Store[string]) Option {
	return func(s *Service) {
		if store != nil {
			s.biographies = store
		}
	}
}

func New(provider llm.Provider, limiter RateLimiter, cfg Config, opts ...Option) *Service {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultCommentaryTokens
	}
	if cfg.BioMaxTokens <= 0 {
		cfg.BioMaxTokens = defaultBiographyTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	s := &Service{
		provider:     provider,
		limiter:      limiter,
		cfg:          cfg,
		commentaries: cache.New[Result](),
		biographies:  cache.New[string](),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CacheKey is the commentary cache key for a request.
func CacheKey(reference, collection string) string {
	return strings.TrimSpace(reference) + "|" + strings.ToLower(strings.TrimSpace(collection))
}

func missingFields() Result {
	return Result{Error: MissingFieldsMessage}
}

func rateLimited() Result {
	return Result{Commentary: RateLimitedMessage}
}

func modelFailure() Result {
	return Result{Commentary: NoCommentary, Chain: NoChain, Evaluation: NoEvaluation}
}

// Commentary validates req, charges clientID one call, and serves the cached
// or freshly generated commentary. Concurrent misses for the same key share
// one model call; each caller stops waiting when its own ctx is done.
func (s *Service) Commentary(ctx context.Context, clientID string, req Request) (Result, Outcome) {
	logger := common.Logger().With("component", "commentary", "client", clientID)
	if blank(req.English) || blank(req.Arabic) || blank(req.Reference) || blank(req.Collection) {
		logger.Debug("commentary: missing fields", "reference", req.Reference)
		return missingFields(), OutcomeInvalid
	}
	if s.limiter != nil && !s.limiter.Allow(clientID) {
		telemetry.RecordRateLimited("commentary")
		logger.Warn("commentary: rate limit reached")
		return rateLimited(), OutcomeRateLimited
	}

	key := CacheKey(req.Reference, req.Collection)
	if cached, ok := s.commentaries.Get(key); ok {
		telemetry.RecordCommentary(true)
		logger.Debug("commentary: cache hit", "key", key)
		return cached, OutcomeOK
	}
	telemetry.RecordCommentary(false)

	ch := s.inflight.DoChan("commentary|"+key, func() (interface{}, error) {
		res, err := s.generateCommentary(context.WithoutCancel(ctx), req)
		if err != nil {
			return nil, err
		}
		return s.commentaries.SetIfAbsent(key, res), nil
	})
	v, shared, err := wait(ctx, ch)
	if err != nil {
		logger.Error("commentary: model call failed", "key", key, "error", err)
		return modelFailure(), OutcomeModelFailure
	}
	logger.Info("commentary: generated", "key", key, "shared", shared)
	return v.(Result), OutcomeOK
}

// wait blocks until the shared call finishes or ctx is done. The shared call
// runs detached from any one caller and is bounded by the model timeout, so
// a caller leaving early does not fail the others.
func wait(ctx context.Context, ch <-chan singleflight.Result) (interface{}, bool, error) {
	select {
	case r := <-ch:
		return r.Val, r.Shared, r.Err
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

func (s *Service) generateCommentary(ctx context.Context, req Request) (Result, error) {
	raw, err := s.call(ctx, "commentary", llm.Request{
		Messages: []llm.Message{
			{Role: "system", Content: commentarySystemPrompt},
			{Role: "user", Content: commentaryUserPrompt(req)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: llm.Temperature(s.cfg.Temperature),
	})
	if err != nil {
		return Result{}, err
	}
	res := ParseSections(raw)
	if soundByDefault(req.Collection) {
		res.Evaluation = applySoundDefault(res.Evaluation)
	}
	return res, nil
}

// soundByDefault reports whether collection names one of the two Sahih
// collections.
func soundByDefault(collection string) bool {
	c, ok := corpus.ParseCollection(collection)
	return ok && (c == corpus.Bukhari || c == corpus.Muslim)
}

// Biography returns a narrator biography for name. It draws on its own
// quota bucket and cache, keyed by the lowercased name.
func (s *Service) Biography(ctx context.Context, clientID, name string) (string, Outcome) {
	logger := common.Logger().With("component", "commentary", "client", clientID)
	name = strings.TrimSpace(name)
	if name == "" {
		return NameRequiredMessage, OutcomeInvalid
	}
	if s.limiter != nil && !s.limiter.Allow(bioBucketPrefix+clientID) {
		telemetry.RecordRateLimited("narrator-bio")
		logger.Warn("commentary: biography rate limit reached")
		return BioRateLimited, OutcomeRateLimited
	}

	key := strings.ToLower(name)
	if cached, ok := s.biographies.Get(key); ok {
		logger.Debug("commentary: biography cache hit", "name", key)
		return cached, OutcomeOK
	}

	ch := s.inflight.DoChan("bio|"+key, func() (interface{}, error) {
		raw, err := s.call(context.WithoutCancel(ctx), "biography", llm.Request{
			Messages: []llm.Message{
				{Role: "system", Content: biographySystemPrompt},
				{Role: "user", Content: biographyUserPrompt(name)},
			},
			MaxTokens:   s.cfg.BioMaxTokens,
			Temperature: llm.Temperature(s.cfg.Temperature),
		})
		if err != nil {
			return nil, err
		}
		return s.biographies.SetIfAbsent(key, raw), nil
	})
	v, _, err := wait(ctx, ch)
	if err != nil {
		logger.Error("commentary: biography failed", "name", key, "error", err)
		return BioUnavailable, OutcomeModelFailure
	}
	return v.(string), OutcomeOK
}

func (s *Service) call(ctx context.Context, purpose string, req llm.Request) (string, error) {
	if s.provider == nil {
		return "", fmt.Errorf("%s: no provider configured", purpose)
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	ctx, end := telemetry.StartSpan(ctx, "commentary."+purpose)
	defer end("provider", s.provider.Name())

	raw, err := s.provider.Chat(ctx, req)
	telemetry.RecordModelCall(purpose, telemetry.SpanDuration(ctx), err)
	if err != nil {
		return "", fmt.Errorf("%s: %w", purpose, err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%s: %w", purpose, llm.ErrEmptyResponse)
	}
	return raw, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
