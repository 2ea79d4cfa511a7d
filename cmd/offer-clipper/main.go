package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"meal-planner-api/internal/config"
	"meal-planner-api/internal/database"
	"meal-planner-api/internal/llm"
	"meal-planner-api/internal/metrics"
	"meal-planner-api/internal/offers"
)

func main() {
	_ = godotenv.Load()

	url := flag.String("url", "", "offer page URL to clip")
	chain := flag.String("chain", "", "retail chain the page belongs to")
	flag.Parse()

	if *url == "" || *chain == "" {
		fmt.Fprintln(os.Stderr, "usage: offer-clipper -url <page> -chain <name>")
		os.Exit(2)
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	geminiClient, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer geminiClient.Close()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	clipper := offers.NewClipper(geminiClient, offers.NewRepository(db.SQL))

	count, meta, err := clipper.ClipURL(ctx, *url, *chain)
	if err != nil {
		log.Fatalf("Failed to clip offers: %v", err)
	}

	if err := metrics.NewStore(db.SQL).RecordMeta(ctx, meta); err != nil {
		log.Printf("Failed to record metrics: %v", err)
	}

	fmt.Printf("Stored %d offers for %s\n", count, *chain)
}
