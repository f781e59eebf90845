package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Pratham08dixit/resume/internal/model"
	"github.com/Pratham08dixit/resume/internal/service"
	"github.com/Pratham08dixit/resume/internal/util"
	"github.com/google/uuid"
)

type AnalysisUsecase struct {
	generator service.Generator
}

func NewAnalysisUsecase(generator service.Generator) *AnalysisUsecase {
	return &AnalysisUsecase{generator: generator}
}

// Run executes the three stages strictly in order: feedback, rewrite,
// guidance. Each stage waits for its predecessor and consumes its output,
// degraded or not. The only error Run can return is the empty-input
// precondition; once the pipeline starts it always runs to the end.
func (uc *AnalysisUsecase) Run(ctx context.Context, resumeText string) (*model.Analysis, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("resume text is empty")
	}

	analysis := &model.Analysis{ID: uuid.New()}
	analysis.Feedback = uc.Analyze(ctx, resumeText)
	analysis.ImprovedResume = uc.Improve(ctx, resumeText, analysis.Feedback.Raw)
	analysis.Guidance = uc.Advise(ctx, analysis.ImprovedResume.Value())

	return analysis, nil
}

// Analyze requests structured feedback and parses it. Any failure, from the
// service call to a malformed JSON body, degrades to the raw-text fallback
// with a warning; Analyze never reports an error.
func (uc *AnalysisUsecase) Analyze(ctx context.Context, resumeText string) model.FeedbackResult {
	raw, err := uc.generator.Generate(ctx, buildFeedbackPrompt(resumeText))
	if err != nil {
		log.Printf("feedback stage failed: %v", err)
		return model.FeedbackResult{
			Raw:     fmt.Sprintf("Error: %v", err),
			Warning: fmt.Sprintf("feedback stage failed: %v", err),
		}
	}

	feedback, parseErr := util.ParseFeedback(raw)
	if parseErr != nil {
		log.Printf("could not parse feedback JSON: %v", parseErr)
		return model.FeedbackResult{
			Raw:     raw,
			Warning: fmt.Sprintf("could not parse feedback as JSON: %v", parseErr),
		}
	}

	return model.FeedbackResult{Feedback: feedback, Raw: raw, Parsed: true}
}

// Improve rewrites the resume using the Stage 1 feedback as context,
// whether or not it parsed.
func (uc *AnalysisUsecase) Improve(ctx context.Context, resumeText, feedback string) model.StageResult {
	text, err := uc.generator.Generate(ctx, buildImprovePrompt(resumeText, feedback))
	if err != nil {
		log.Printf("improve stage failed: %v", err)
		return model.FailedStage(err)
	}
	if strings.TrimSpace(text) == "" {
		return model.FailedStage(fmt.Errorf("empty response from model"))
	}
	return model.OkStage(strings.TrimSpace(text))
}

// Advise generates job-search guidance from the improved resume, which may
// itself be a degraded error string from Improve.
func (uc *AnalysisUsecase) Advise(ctx context.Context, improvedResume string) model.StageResult {
	text, err := uc.generator.Generate(ctx, buildGuidancePrompt(improvedResume))
	if err != nil {
		log.Printf("guidance stage failed: %v", err)
		return model.FailedStage(err)
	}
	if strings.TrimSpace(text) == "" {
		return model.FailedStage(fmt.Errorf("empty response from model"))
	}
	return model.OkStage(strings.TrimSpace(text))
}

// Test issues a one-off generation to verify the configured provider.
func (uc *AnalysisUsecase) Test(ctx context.Context) (string, error) {
	return uc.generator.Generate(ctx, "Explain how AI works in a few words")
}
