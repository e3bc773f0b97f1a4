package webserver

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/factlens/factlens/src/pipeline"
	"github.com/factlens/factlens/src/web/config"
)

func New(cfg config.Config, db *gorm.DB, pipe *pipeline.Pipeline) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	g.LoadHTMLGlob(cfg.TemplateDir + "/*.html")
	attachRoutes(g, cfg, db, pipe)
	return g
}
