// Connectivity check for the MySQL and Redis backends.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/factlens/factlens/src/web/data"
	"github.com/factlens/factlens/src/web/types"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := data.MustMySQL(getenv("MYSQL_DSN", "factlens:factlens@tcp(127.0.0.1:3306)/factlens?parseTime=true"))
	var count int64
	if err := db.Model(&types.Analysis{}).Count(&count).Error; err != nil {
		log.Fatalf("mysql count: %v", err)
	}
	log.Printf("mysql OK: %d analyses stored", count)

	if err := data.LoadSettings(db); err != nil {
		log.Fatalf("settings: %v", err)
	}
	log.Printf("settings OK")

	rdb := data.MustRedis(getenv("REDIS_URL", "redis://localhost:6379/0"))
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis ping: %v", err)
	}

	cache := data.NewRedisCache(rdb)
	cache.Set(ctx, "storage-check", "ok", time.Minute)
	if v, ok := cache.Get(ctx, "storage-check"); !ok || v != "ok" {
		log.Fatalf("redis cache roundtrip failed")
	}
	log.Printf("redis OK")
}
