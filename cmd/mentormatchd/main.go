// File path: cmd/mentormatchd/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/novachain/mentormatch/internal/api"
	"github.com/novachain/mentormatch/internal/common"
	"github.com/novachain/mentormatch/internal/embed"
	"github.com/novachain/mentormatch/internal/indexer"
	"github.com/novachain/mentormatch/internal/match"
	"github.com/novachain/mentormatch/internal/mentor"
	"github.com/novachain/mentormatch/internal/vector"
)

func main() {
	logger := common.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logger.Warn("mentormatch: .env file not loaded", "error", err)
	} else {
		logger.Info("mentormatch: environment loaded from .env")
	}

	addr := flag.String("addr", ":8082", "listen address")
	dbPath := flag.String("db", "", "path to the mentor SQLite database (overrides MENTOR_DB_PATH)")
	seedPath := flag.String("seed", "", "JSONL mentor seed file imported at startup")
	reindex := flag.Bool("reindex", false, "rebuild the vector index at startup")
	strategyTimeout := flag.String("strategy-timeout", "", "per-strategy search budget (e.g. 3s)")
	autoStartIndex := flag.Bool("auto-start-index", false, "launch a local chroma server if one is installed")
	flag.Parse()

	logger.Info("mentormatch: startup initiated", "addr", *addr)

	storeCfg := mentor.LoadStoreConfig()
	if trimmed := strings.TrimSpace(*dbPath); trimmed != "" {
		storeCfg.Path = trimmed
	}
	store, err := mentor.OpenWithConfig(storeCfg)
	if err != nil {
		logger.Error("mentormatch: mentor store open failed", "error", err)
		fmt.Println("mentor store error:", err)
		os.Exit(1)
	}
	defer store.Close()

	if trimmed := strings.TrimSpace(*seedPath); trimmed != "" {
		imported, err := mentor.ImportSeed(ctx, store, trimmed)
		if err != nil {
			logger.Error("mentormatch: seed import failed", "path", trimmed, "error", err)
			fmt.Println("seed import error:", err)
			os.Exit(1)
		}
		logger.Info("mentormatch: seed imported", "path", trimmed, "mentors", imported)
	}

	embedder := embed.NewProvider()
	logger.Info("mentormatch: embedding provider ready", "provider", embedder.Name())

	vectorCfg, err := vector.LoadConfig()
	if err != nil {
		logger.Error("mentormatch: vector config load failed", "error", err)
		fmt.Println("vector config error:", err)
		os.Exit(1)
	}
	if *autoStartIndex {
		svc, err := startIndexService(ctx, vectorCfg, logger)
		if err != nil {
			logger.Error("mentormatch: local index launch failed", "error", err)
			fmt.Println("index launch error:", err)
			os.Exit(1)
		}
		defer stopIndexService(context.Background(), svc, logger)
	}

	index, err := vector.New(ctx, vectorCfg)
	if err != nil {
		logger.Error("mentormatch: vector client init failed", "error", err)
		fmt.Println("vector client error:", err)
		os.Exit(1)
	}
	defer index.Close()
	if index.Available() {
		logger.Info("mentormatch: vector index available", "host", vectorCfg.Host, "port", vectorCfg.Port)
	} else {
		logger.Warn("mentormatch: vector index unreachable, fallback matching active",
			"host", vectorCfg.Host, "port", vectorCfg.Port)
	}

	ix := indexer.New(embedder, index, store)
	if *reindex {
		summary, err := ix.Run(ctx)
		if err != nil {
			logger.Error("mentormatch: startup reindex failed", "error", err)
		} else {
			logger.Info("mentormatch: startup reindex complete",
				"mentors", summary.Mentors, "batches", summary.Batches)
		}
	}

	opts := make([]match.Option, 0, 1)
	if trimmed := strings.TrimSpace(*strategyTimeout); trimmed != "" {
		dur, err := time.ParseDuration(trimmed)
		if err != nil {
			logger.Error("mentormatch: invalid strategy timeout", "value", trimmed, "error", err)
			fmt.Println("strategy timeout error:", err)
			os.Exit(1)
		}
		opts = append(opts, match.WithStrategyTimeout(dur))
	}
	matcher := match.NewMatcher(embedder, index, store, opts...)

	server, err := api.NewServer(matcher, store, ix)
	if err != nil {
		logger.Error("mentormatch: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("mentormatch: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("mentormatch: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}
