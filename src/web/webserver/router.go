package webserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/factlens/factlens/src/pipeline"
	"github.com/factlens/factlens/src/web/config"
)

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, pipe *pipeline.Pipeline) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	analyzeH := NewAnalyze(db, pipe, NewRateLimiter(30*time.Second))
	authH := NewAuth(cfg.APIKey, []byte(cfg.JWTSecret))

	r.GET("/", analyzeH.Form)
	r.POST("/", analyzeH.Submit)
	r.GET("/history", analyzeH.History)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/token", authH.Token)

		secured := v1.Use(JWTMiddleware([]byte(cfg.JWTSecret)))
		secured.POST("/analyses", analyzeH.CreateAPI)
		secured.GET("/analyses", analyzeH.ListAPI)
		secured.GET("/analyses/:id", analyzeH.GetAPI)
	}
}
