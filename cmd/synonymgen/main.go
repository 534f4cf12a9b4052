package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lynxshop/backend/internal/adapters/database"
	"github.com/lynxshop/backend/internal/application/services"
	"github.com/lynxshop/backend/internal/infrastructure/clients/postgres"
	"github.com/lynxshop/backend/internal/infrastructure/observability"
	"github.com/lynxshop/backend/pkg/config"
)

func main() {
	var mode string
	var limit int
	flag.StringVar(&mode, "mode", "generate", "generate: insert auto-learning synonyms; candidates: print unmatched search terms")
	flag.IntVar(&limit, "limit", 20, "Maximum candidate terms to print")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger("lynxshop-synonymgen", cfg.Server.Env)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pgClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch mode {
	case "generate":
		runGenerate(ctx, cfg, pgClient)
	case "candidates":
		runCandidates(ctx, pgClient, limit)
	default:
		log.Fatal().Str("mode", mode).Msg("unknown mode, expected generate or candidates")
	}
}

func runGenerate(ctx context.Context, cfg *config.Config, pgClient *postgres.Client) {
	classifier, err := services.NewCategoryClassifier(filepath.Join(cfg.Search.ConfigDir, "semantic_categories.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load semantic categories")
	}

	generator := services.NewSynonymGeneratorService(
		database.NewProductAdapter(pgClient),
		database.NewSynonymAdapter(pgClient),
		classifier,
	)

	start := time.Now()
	summary, err := generator.Generate(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("generation failed")
	}

	log.Info().
		Int("products_scanned", summary.ProductsScanned).
		Int("products_matched", summary.ProductsMatched).
		Int("synonyms_inserted", summary.SynonymsInserted).
		Int("synonyms_skipped", summary.SynonymsSkipped).
		Dur("took", time.Since(start)).
		Msg("generation complete")
}

func runCandidates(ctx context.Context, pgClient *postgres.Client, limit int) {
	suggestions := services.NewSuggestionService(database.NewSearchMetricsAdapter(pgClient))

	candidates, err := suggestions.CandidateSynonyms(ctx, limit)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load candidate terms")
	}

	if len(candidates) == 0 {
		fmt.Println("no candidate terms found")
		return
	}

	fmt.Printf("%-30s %10s %10s\n", "TERM", "SEARCHES", "CLICKS")
	for _, candidate := range candidates {
		fmt.Printf("%-30s %10d %10d\n", candidate.Term, candidate.SearchCount, candidate.ClickCount)
	}
}
