// File path: cmd/hadithd/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hadithlens/hadithlens/internal/api"
	"github.com/hadithlens/hadithlens/internal/classify"
	"github.com/hadithlens/hadithlens/internal/commentary"
	"github.com/hadithlens/hadithlens/internal/common"
	"github.com/hadithlens/hadithlens/internal/config"
	"github.com/hadithlens/hadithlens/internal/corpus"
	"github.com/hadithlens/hadithlens/internal/data/orchestrator"
	"github.com/hadithlens/hadithlens/internal/llm"
	"github.com/hadithlens/hadithlens/internal/ratelimit"
	"github.com/hadithlens/hadithlens/internal/retriever"
	"github.com/hadithlens/hadithlens/internal/search"
)

func main() {
	logger := common.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		logger.Warn("hadithd: .env file not loaded", "error", err)
	} else {
		logger.Info("hadithd: environment loaded from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("hadithd: config load failed", "error", err)
		fmt.Println("config error:", err)
		os.Exit(1)
	}
	addr := flag.String("addr", cfg.Addr, "listen address")
	source := flag.String("source", cfg.SourceTemplate, "collection source template; %s is replaced by the collection key")
	flag.Parse()
	if trimmed := strings.TrimSpace(*source); trimmed != "" {
		cfg.SourceTemplate = trimmed
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("hadithd: invalid configuration", "error", err)
		fmt.Println("config error:", err)
		os.Exit(1)
	}

	logger.Info("hadithd: startup initiated", "addr", *addr, "source", cfg.SourceTemplate)

	classifier, err := classify.Load(cfg.MutawatirPath)
	if err != nil {
		logger.Error("hadithd: mutawatir table load failed", "path", cfg.MutawatirPath, "error", err)
		fmt.Println("classifier error:", err)
		os.Exit(1)
	}
	logger.Info("hadithd: mutawatir table ready", "entries", classifier.Len())

	retr := retriever.New(retriever.WithThreshold(cfg.MatchThreshold), retriever.WithLimit(cfg.MaxResults))
	orch, err := orchestrator.New(corpus.NewLoader(cfg.SourceTemplate, cfg.SourceTimeout), orchestrator.WithRetriever(retr))
	if err != nil {
		logger.Error("hadithd: orchestrator initialization failed", "error", err)
		fmt.Println("orchestrator error:", err)
		os.Exit(1)
	}

	provider := llm.NewProvider(ctx, llm.Options{RPS: cfg.ModelRPS, Burst: cfg.ModelBurst})
	logger.Info("hadithd: llm provider ready", "provider", provider.Name())

	searchSvc := search.New(retr, classifier, search.NewFallback(provider, search.FallbackConfig{
		MaxTokens:   cfg.FallbackMaxTokens,
		Temperature: cfg.FallbackTemperature,
		Timeout:     cfg.ModelTimeout,
	}))
	commentarySvc := commentary.New(provider, ratelimit.New(cfg.RateLimitMax, cfg.RateLimitWindow), commentary.Config{
		MaxTokens:    cfg.CommentaryMaxTokens,
		Temperature:  cfg.CommentaryTemperature,
		BioMaxTokens: cfg.BiographyMaxTokens,
		Timeout:      cfg.ModelTimeout,
	})

	server, err := api.NewServer(orch, searchSvc, commentarySvc)
	if err != nil {
		logger.Error("hadithd: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	// Searches arriving before the first load completes see an empty index.
	go func() {
		if _, err := orch.Reload(ctx); err != nil {
			logger.Error("hadithd: initial corpus load failed", "error", err)
		}
	}()

	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	reachable := *addr
	if strings.HasPrefix(reachable, ":") {
		reachable = "localhost" + reachable
	}
	logger.Info("hadithd: server listening", "addr", *addr, "health", "/healthz", "ready", "/readyz")
	logger.Info("hadithd: verify reachability", "suggestion", fmt.Sprintf("curl http://%s/readyz", reachable))
	fmt.Printf("Serving on %s\n", *addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("hadithd: server stopped", "error", err)
		fmt.Println("server stopped:", err)
		os.Exit(1)
	}
	logger.Info("hadithd: shut down")
}
