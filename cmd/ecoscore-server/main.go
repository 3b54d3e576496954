package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/verdeloop/ecoscore/internal/api"
	"github.com/verdeloop/ecoscore/pkg/ecoscore"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/config"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/lexicon"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/store"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/store/memstore"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "Configuration file (optional)")
		dbPath     = flag.String("db", "", "SQLite database path (overrides config; empty with no config = in-memory)")
		addr       = flag.String("addr", "", "Listen address (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if *dbPath != "" {
		cfg.Store.Path = *dbPath
	}

	ctx := context.Background()

	var st store.Store
	if cfg.Store.Path != "" {
		st, err = sqlite.Open(ctx, cfg.Store.Path)
		if err != nil {
			log.Fatal("Failed to open database:", err)
		}
	} else {
		log.Println("No store path configured, using in-memory store")
		st = memstore.New()
	}

	lex := lexicon.Default()
	if cfg.Lexicon != "" {
		lex, err = lexicon.LoadFromYAML(cfg.Lexicon)
		if err != nil {
			log.Fatal("Failed to load lexicon:", err)
		}
	}

	var stopwords []string
	if cfg.Stopwords != "" {
		stopwords, err = config.LoadStopwords(cfg.Stopwords)
		if err != nil {
			log.Fatal("Failed to load stopwords:", err)
		}
	}

	policy := cfg.Policy()
	engine := ecoscore.New(ecoscore.Options{
		Store:     st,
		Lexicon:   lex,
		Policy:    &policy,
		Stopwords: stopwords,
	})
	defer engine.Close()

	listenAddr := *addr
	if listenAddr == "" {
		listenAddr = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	}

	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      api.NewServer(engine).Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Println("EcoScore server listening on", listenAddr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	case sig := <-sigCh:
		log.Println("Received signal, shutting down:", sig)
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Println("Shutdown error:", err)
		}
	}
}
