package dto

import (
	"github.com/Pratham08dixit/resume/internal/model"
	"github.com/google/uuid"
)

type AnalysisDTO struct {
	ID              uuid.UUID       `json:"id"`
	Feedback        *model.Feedback `json:"feedback,omitempty"`
	FeedbackRaw     string          `json:"feedback_raw,omitempty"`
	FeedbackWarning string          `json:"feedback_warning,omitempty"`
	ImprovedResume  string          `json:"improved_resume"`
	Guidance        string          `json:"guidance"`
}

type AnalysisMetaDTO struct {
	QualityScore     string `json:"quality_score"`
	SectionsDetected int64  `json:"sections_detected"`
}

type DownloadRequest struct {
	Text string `json:"text"`
}
