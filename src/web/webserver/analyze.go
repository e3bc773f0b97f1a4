package webserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/factlens/factlens/src/ingest"
	"github.com/factlens/factlens/src/pipeline"
	"github.com/factlens/factlens/src/web/types"
)

const (
	maxInputLength  = 20000
	analysisTimeout = 5 * time.Minute
)

// Analyze serves the form UI and the JSON analysis API.
type Analyze struct {
	db      *gorm.DB
	pipe    *pipeline.Pipeline
	limiter *RateLimiter
}

func NewAnalyze(db *gorm.DB, pipe *pipeline.Pipeline, limiter *RateLimiter) Analyze {
	return Analyze{db: db, pipe: pipe, limiter: limiter}
}

func (a Analyze) Form(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

func (a Analyze) Submit(c *gin.Context) {
	input := c.PostForm("user_input")
	if err := validateInput(input); err != nil {
		c.HTML(http.StatusBadRequest, "index.html", gin.H{"Error": err.Error(), "RawInput": input})
		return
	}

	if !a.limiter.CanUse(c.ClientIP()) {
		wait := a.limiter.TimeUntilNext(c.ClientIP())
		c.HTML(http.StatusTooManyRequests, "index.html", gin.H{
			"Error":    fmt.Sprintf("Too many requests; try again in %d seconds.", int(wait.Seconds())+1),
			"RawInput": input,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), analysisTimeout)
	defer cancel()

	res, err := a.pipe.Run(ctx, input)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, ingest.ErrSkipped) {
			status = http.StatusUnprocessableEntity
		}
		log.Printf("Analysis failed for IP %s: %v", c.ClientIP(), err)
		c.HTML(status, "index.html", gin.H{"Error": err.Error(), "RawInput": input})
		return
	}

	id := a.persist(res)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"RawInput":   input,
		"Result":     res,
		"AnalysisID": id,
	})
}

func (a Analyze) History(c *gin.Context) {
	var analyses []types.Analysis
	if a.db != nil {
		if err := a.db.Order("created_at DESC").Limit(20).Find(&analyses).Error; err != nil {
			log.Printf("Failed to load history: %v", err)
		}
	}
	c.HTML(http.StatusOK, "history.html", gin.H{"Analyses": analyses})
}

func (a Analyze) CreateAPI(c *gin.Context) {
	var req struct {
		Input string `json:"input" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if err := validateInput(req.Input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), analysisTimeout)
	defer cancel()

	res, err := a.pipe.Run(ctx, req.Input)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, ingest.ErrSkipped) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"err": err.Error()})
		return
	}

	id := a.persist(res)
	c.JSON(http.StatusOK, gin.H{"id": id, "result": res})
}

func (a Analyze) ListAPI(c *gin.Context) {
	var analyses []types.Analysis
	if err := a.db.Order("created_at DESC").Limit(50).Find(&analyses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to list analyses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"analyses": analyses})
}

func (a Analyze) GetAPI(c *gin.Context) {
	id := c.Param("id")
	var analysis types.Analysis
	err := a.db.Preload("Claims").Preload("Reviews").First(&analysis, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"err": "analysis not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to load analysis"})
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func validateInput(input string) error {
	if input == "" {
		return errors.New("empty input")
	}
	if len(input) > maxInputLength {
		return fmt.Errorf("input exceeds %d characters", maxInputLength)
	}
	if !utf8.ValidString(input) {
		return errors.New("invalid characters in input")
	}
	return nil
}
