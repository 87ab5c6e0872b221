package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/noon/backend/config"
	httpDelivery "github.com/noon/backend/internal/delivery/http"
	"github.com/noon/backend/internal/infrastructure/cache"
	"github.com/noon/backend/internal/infrastructure/lexicon"
	"github.com/noon/backend/internal/infrastructure/openfoodfacts"
	"github.com/noon/backend/internal/infrastructure/speller"
	"github.com/noon/backend/internal/logging"
	"github.com/noon/backend/internal/usecase"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	logger.WithFields(logrus.Fields{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
	}).Info("starting noon backend")

	spell, err := newSpeller(cfg.Speller)
	if err != nil {
		return err
	}
	corrections := cache.NewMemoryCache[string](time.Minute)
	defer corrections.Close()
	corrector := speller.NewCachedCorrector(spell, corrections, cfg.Speller.CacheTTL)

	lex, err := newLexicon(cfg.Lexicon)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"dictionary_words": spell.Size(),
		"synsets":          lex.Size(),
	}).Info("language resources loaded")

	offClient := openfoodfacts.NewClient(openfoodfacts.ClientConfig{
		BaseURL:           cfg.OpenFoodFacts.BaseURL,
		UserAgent:         cfg.OpenFoodFacts.UserAgent,
		Timeout:           cfg.OpenFoodFacts.Timeout,
		PageSize:          cfg.OpenFoodFacts.PageSize,
		RequestsPerSecond: cfg.OpenFoodFacts.RequestsPerSecond,
		Burst:             cfg.OpenFoodFacts.Burst,
	}, logger)

	searchService := usecase.NewSearchService(corrector, lex, offClient, usecase.SearchServiceConfig{
		MaxConcurrency: cfg.Search.MaxConcurrency,
		TermTimeout:    cfg.OpenFoodFacts.Timeout,
		MaxSynonyms:    cfg.Search.MaxSynonyms,
	}, logger)

	handler := httpDelivery.NewHandler(searchService)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newSpeller(cfg config.SpellerConfig) (*speller.Speller, error) {
	if cfg.DictionaryPath != "" {
		return speller.Load(cfg.DictionaryPath, cfg.MaxEditDistance)
	}
	return speller.NewDefault(cfg.MaxEditDistance)
}

func newLexicon(cfg config.LexiconConfig) (*lexicon.Lexicon, error) {
	if cfg.Path != "" {
		return lexicon.Load(cfg.Path)
	}
	return lexicon.Default()
}
