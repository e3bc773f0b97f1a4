package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/factlens/factlens/src/claimbuster"
	"github.com/factlens/factlens/src/claims"
	"github.com/factlens/factlens/src/factchecktools"
	"github.com/factlens/factlens/src/ingest"
	"github.com/factlens/factlens/src/llm"
	"github.com/factlens/factlens/src/pipeline"
	"github.com/factlens/factlens/src/web/config"
	"github.com/factlens/factlens/src/web/data"
	"github.com/factlens/factlens/src/web/webserver"
)

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func buildPipeline(cfg config.Config, cache pipeline.Cache) *pipeline.Pipeline {
	client := llm.NewClient(llm.FactoryConfig{
		Provider:  cfg.LLMProvider,
		OpenAIKey: cfg.OpenAIKey,
		ClaudeKey: cfg.ClaudeKey,
	})

	pipe := &pipeline.Pipeline{
		Extractor: ingest.NewExtractor(30*time.Second, ingest.NewTranscriber(cfg.WhisperModel)),
		Claims:    claims.NewExtractor(client, cfg.ExtractModel),
		Checker:   claims.NewChecker(client, cfg.FactCheckModel, cfg.EnableWebSearch),
		Cache:     cache,
		TopK:      cfg.TopK,
	}
	if cfg.ClaimBusterKey != "" {
		pipe.Ranker = claimbuster.NewClient(cfg.ClaimBusterKey)
	} else {
		log.Printf("CLAIMBUSTER_API_KEY not set; sentence ranking disabled")
	}
	if cfg.GoogleAPIKey != "" {
		pipe.Reviews = factchecktools.NewClient(cfg.GoogleAPIKey)
	} else {
		log.Printf("FACT_CHECK_API_KEY not set; external review lookup disabled")
	}
	return pipe
}

func main() {
	db := data.MustMySQL(getenv("MYSQL_DSN", "factlens:factlens@tcp(127.0.0.1:3306)/factlens?parseTime=true"))
	cfg := config.Load(db)
	rdb := data.MustRedis(cfg.RedisURL)

	pipe := buildPipeline(cfg, data.NewRedisCache(rdb))

	router := webserver.New(cfg, db, pipe)
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("FactLens listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
