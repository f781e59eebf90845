package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

const goodFeedbackJSON = `{"sections_detected": ["Experience", "Skills"], "missing_sections": ["Education"], "well_written_sections": ["Experience"], "quality_score": 82, "suggestions": ["Add an education section"]}`

// fakeGenerator returns scripted responses in call order and records every
// prompt it saw.
type fakeGenerator struct {
	responses []string
	errs      []error
	prompts   []string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	i := len(g.prompts)
	g.prompts = append(g.prompts, prompt)
	if i < len(g.errs) && g.errs[i] != nil {
		return "", g.errs[i]
	}
	if i < len(g.responses) {
		return g.responses[i], nil
	}
	return "", fmt.Errorf("unexpected call %d", i)
}

func TestRunHappyPath(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		goodFeedbackJSON,
		"John Doe\nSenior Engineer with 5 years of experience building services.",
		"Recommended job titles: Backend Engineer. Target companies: Acme. Job boards: LinkedIn. Networking tips: attend meetups.",
	}}
	uc := NewAnalysisUsecase(gen)

	analysis, err := uc.Run(context.Background(), "John Doe\nExperience: 5 years...\n")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !analysis.Feedback.Parsed {
		t.Fatalf("feedback not parsed, warning: %s", analysis.Feedback.Warning)
	}
	if analysis.Feedback.Feedback.QualityScore == nil || *analysis.Feedback.Feedback.QualityScore != 82 {
		t.Fatalf("quality score = %v", analysis.Feedback.Feedback.QualityScore)
	}
	found := false
	for _, s := range analysis.Feedback.Feedback.SectionsDetected {
		if strings.Contains(s, "Experience") {
			found = true
		}
	}
	if !found {
		t.Fatalf("sections_detected missing Experience: %v", analysis.Feedback.Feedback.SectionsDetected)
	}
	if analysis.ImprovedResume.Failed() || analysis.ImprovedResume.Value() == "" {
		t.Fatalf("improved resume: %+v", analysis.ImprovedResume)
	}
	guidance := strings.ToLower(analysis.Guidance.Value())
	if !strings.Contains(guidance, "job title") && !strings.Contains(guidance, "company") && !strings.Contains(guidance, "network") {
		t.Fatalf("guidance does not look like job advice: %q", guidance)
	}
	if len(gen.prompts) != 3 {
		t.Fatalf("expected 3 stage calls, got %d", len(gen.prompts))
	}
}

func TestRunStageOrderingAndDataFlow(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		goodFeedbackJSON,
		"improved resume body",
		"guidance body",
	}}
	uc := NewAnalysisUsecase(gen)

	analysis, err := uc.Run(context.Background(), "resume text")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// Stage 2 must see the exact feedback Stage 1 produced, Stage 3 the
	// exact value Stage 2 produced.
	if !strings.Contains(gen.prompts[1], analysis.Feedback.Raw) {
		t.Fatalf("improve prompt does not embed feedback:\n%s", gen.prompts[1])
	}
	if !strings.Contains(gen.prompts[2], analysis.ImprovedResume.Value()) {
		t.Fatalf("advise prompt does not embed improved resume:\n%s", gen.prompts[2])
	}
	if !strings.Contains(gen.prompts[0], "resume text") {
		t.Fatalf("feedback prompt does not embed the resume:\n%s", gen.prompts[0])
	}
}

func TestRunNonJSONFeedbackFallsBack(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		"Sorry, I cannot help.",
		"improved anyway",
		"guidance anyway",
	}}
	uc := NewAnalysisUsecase(gen)

	analysis, err := uc.Run(context.Background(), "resume text")
	if err != nil {
		t.Fatalf("run must not fail on bad feedback: %v", err)
	}

	if analysis.Feedback.Parsed {
		t.Fatal("non-JSON feedback reported as parsed")
	}
	if analysis.Feedback.Raw != "Sorry, I cannot help." {
		t.Fatalf("raw fallback = %q", analysis.Feedback.Raw)
	}
	if analysis.Feedback.Warning == "" {
		t.Fatal("expected a parse warning")
	}
	// The raw text still feeds Stage 2.
	if !strings.Contains(gen.prompts[1], "Sorry, I cannot help.") {
		t.Fatalf("improve prompt does not embed raw feedback:\n%s", gen.prompts[1])
	}
}

func TestRunFencedFeedbackParsesLikePlain(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		"```json\n" + goodFeedbackJSON + "\n```",
		"improved",
		"guidance",
	}}
	uc := NewAnalysisUsecase(gen)

	analysis, err := uc.Run(context.Background(), "resume text")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !analysis.Feedback.Parsed {
		t.Fatalf("fenced feedback not parsed, warning: %s", analysis.Feedback.Warning)
	}
	if *analysis.Feedback.Feedback.QualityScore != 82 {
		t.Fatalf("quality score = %v", *analysis.Feedback.Feedback.QualityScore)
	}
}

func TestRunStageFailureFlowsDownstream(t *testing.T) {
	gen := &fakeGenerator{
		responses: []string{goodFeedbackJSON, "", "guidance from error text"},
		errs:      []error{nil, fmt.Errorf("service unavailable"), nil},
	}
	uc := NewAnalysisUsecase(gen)

	analysis, err := uc.Run(context.Background(), "resume text")
	if err != nil {
		t.Fatalf("run must not fail on a stage error: %v", err)
	}

	if !analysis.ImprovedResume.Failed() {
		t.Fatal("improve stage should be failed")
	}
	improved := analysis.ImprovedResume.Value()
	if !strings.HasPrefix(improved, "Error:") || !strings.Contains(improved, "service unavailable") {
		t.Fatalf("failed stage value = %q", improved)
	}
	// The degraded value contaminates Stage 3's input, by contract.
	if !strings.Contains(gen.prompts[2], improved) {
		t.Fatalf("advise prompt does not embed the degraded value:\n%s", gen.prompts[2])
	}
	if analysis.Guidance.Failed() {
		t.Fatalf("guidance should still succeed: %v", analysis.Guidance.Err)
	}
}

func TestRunAllStagesFailStillCompletes(t *testing.T) {
	boom := fmt.Errorf("boom")
	gen := &fakeGenerator{
		responses: []string{"", "", ""},
		errs:      []error{boom, boom, boom},
	}
	uc := NewAnalysisUsecase(gen)

	analysis, err := uc.Run(context.Background(), "resume text")
	if err != nil {
		t.Fatalf("run must complete even when every stage fails: %v", err)
	}
	if len(gen.prompts) != 3 {
		t.Fatalf("expected all 3 stages to run, got %d", len(gen.prompts))
	}
	if analysis.ImprovedResume.Value() == "" || analysis.Guidance.Value() == "" {
		t.Fatal("failed stages must still yield non-empty text")
	}
}

func TestRunEmptyResumeIsPrecondition(t *testing.T) {
	gen := &fakeGenerator{}
	uc := NewAnalysisUsecase(gen)

	if _, err := uc.Run(context.Background(), "   \n\t"); err == nil {
		t.Fatal("expected precondition error for empty resume text")
	}
	if len(gen.prompts) != 0 {
		t.Fatalf("no stage may run on empty input, got %d calls", len(gen.prompts))
	}
}

func TestImproveEmptyResponseIsFailure(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"   "}}
	uc := NewAnalysisUsecase(gen)

	result := uc.Improve(context.Background(), "resume", "feedback")
	if !result.Failed() {
		t.Fatal("blank model output should be a failed stage")
	}
	if result.Value() == "" {
		t.Fatal("failed stage must still render non-empty text")
	}
}
