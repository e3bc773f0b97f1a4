package types

import "time"

// Settings
type Setting struct {
	ID    uint8  `gorm:"primaryKey"`
	Name  string `gorm:"size:64;not null"`
	Value string `gorm:"size:256;not null"`
}

// Analysis is one pipeline run.
type Analysis struct {
	ID           string `gorm:"primaryKey;size:36"`
	InputKind    string `gorm:"size:16;not null"` // text | article | youtube
	Source       string `gorm:"size:2048"`        // URL, or empty for raw text
	TextPreview  string `gorm:"size:1024"`
	Characters   int
	Words        int
	Sentences    int
	OverallScore int
	OverallBand  string `gorm:"size:32"`
	Summary      string `gorm:"type:text"`
	Warnings     string `gorm:"type:text"` // newline-separated
	CreatedAt    time.Time
	Claims       []AnalysisClaim  `gorm:"foreignKey:AnalysisID"`
	Reviews      []ExternalReview `gorm:"foreignKey:AnalysisID"`
}

// AnalysisClaim is one fact-checked claim within an analysis.
type AnalysisClaim struct {
	ID                 uint64 `gorm:"primaryKey;autoIncrement"`
	AnalysisID         string `gorm:"index;size:36;not null"`
	Rank               int
	Sentence           string `gorm:"type:text"`
	Verdict            string `gorm:"size:16"`
	Confidence         int
	ConfidenceBand     string `gorm:"size:32"`
	CombinedConfidence int
	CombinedBand       string `gorm:"size:32"`
	Reasoning          string `gorm:"type:text"`
	Sources            string `gorm:"type:text"` // newline-separated URLs
}

// ExternalReview is one published fact-check found for an extracted claim.
type ExternalReview struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	AnalysisID string `gorm:"index;size:36;not null"`
	Claim      string `gorm:"type:text"`
	Date       string `gorm:"size:32"`
	Publisher  string `gorm:"size:128"`
	Title      string `gorm:"size:512"`
	URL        string `gorm:"size:2048"`
	Rating     string `gorm:"size:128"`
}
