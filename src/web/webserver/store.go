package webserver

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/factlens/factlens/src/ingest"
	"github.com/factlens/factlens/src/pipeline"
	"github.com/factlens/factlens/src/web/types"
)

const previewLength = 1000

// persist stores one finished analysis. Persistence failures never fail the
// request; the result was already computed and is returned to the caller.
func (a Analyze) persist(res *pipeline.Result) string {
	if a.db == nil || res == nil {
		return ""
	}

	record := buildRecord(res)
	if err := a.db.Create(&record).Error; err != nil {
		log.Printf("Failed to persist analysis: %v", err)
		return ""
	}
	return record.ID
}

func buildRecord(res *pipeline.Result) types.Analysis {
	record := types.Analysis{
		ID:          uuid.New().String(),
		InputKind:   res.Kind,
		TextPreview: truncate(res.Text, previewLength),
		Characters:  res.Stats.Characters,
		Words:       res.Stats.Words,
		Sentences:   res.Stats.Sentences,
		Warnings:    strings.Join(res.Warnings, "\n"),
		CreatedAt:   time.Now(),
	}
	if res.Kind != ingest.KindText.String() {
		record.Source = res.Input
	}
	if res.Report != nil {
		record.OverallScore = res.Report.OverallReliability.Score
		record.OverallBand = res.Report.OverallReliability.Band
		record.Summary = res.Report.OverallReliability.Summary
	}

	for _, cl := range res.Combined {
		record.Claims = append(record.Claims, types.AnalysisClaim{
			AnalysisID:         record.ID,
			Rank:               cl.Rank,
			Sentence:           cl.Sentence,
			Verdict:            cl.Verdict,
			Confidence:         cl.Confidence,
			ConfidenceBand:     cl.ConfidenceBand,
			CombinedConfidence: cl.CombinedConfidence,
			CombinedBand:       cl.CombinedBand,
			Reasoning:          cl.Reasoning,
			Sources:            strings.Join(cl.Sources, "\n"),
		})
	}

	for _, reviews := range res.Reviews {
		for _, r := range reviews {
			record.Reviews = append(record.Reviews, types.ExternalReview{
				AnalysisID: record.ID,
				Claim:      r.Claim,
				Date:       r.Date,
				Publisher:  r.Publisher,
				Title:      r.Title,
				URL:        r.URL,
				Rating:     r.Rating,
			})
		}
	}

	return record
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if idx := strings.LastIndex(cut, " "); idx > max/2 {
		cut = cut[:idx]
	}
	return cut + "..."
}
