package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Feedback is the structured record Stage 1 asks the model to produce.
// QualityScore is a pointer so a missing field can be told apart from zero.
type Feedback struct {
	SectionsDetected    []string `json:"sections_detected"`
	MissingSections     []string `json:"missing_sections"`
	WellWrittenSections []string `json:"well_written_sections"`
	QualityScore        *float64 `json:"quality_score"`
	Suggestions         []string `json:"suggestions"`
}

// QualityScoreDisplay renders the score for the UI, "N/A" when absent.
func (f *Feedback) QualityScoreDisplay() string {
	if f == nil || f.QualityScore == nil {
		return "N/A"
	}
	return fmt.Sprintf("%g/100", *f.QualityScore)
}

// FeedbackResult is either a parsed Feedback or a raw-text fallback when
// parsing failed. Raw always holds the response exactly as the model
// returned it, so it can be inspected and passed to the next stage either
// way.
type FeedbackResult struct {
	Feedback *Feedback
	Raw      string
	Parsed   bool
	Warning  string
}

// StageResult is the outcome of a single generation stage. A failed stage
// carries its reason instead of output; Value renders it as inert text so
// the pipeline can keep going.
type StageResult struct {
	Text string
	Err  error
}

func OkStage(text string) StageResult {
	return StageResult{Text: text}
}

func FailedStage(err error) StageResult {
	return StageResult{Err: err}
}

func (r StageResult) Failed() bool {
	return r.Err != nil
}

func (r StageResult) Value() string {
	if r.Err != nil {
		return fmt.Sprintf("Error: %v", r.Err)
	}
	return r.Text
}

// Analysis holds everything one run produced. It only lives for the request
// that created it.
type Analysis struct {
	ID             uuid.UUID
	Feedback       FeedbackResult
	ImprovedResume StageResult
	Guidance       StageResult
}
