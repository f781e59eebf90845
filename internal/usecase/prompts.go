package usecase

import "fmt"

// buildFeedbackPrompt asks for the five-field feedback object. The field
// names are load-bearing: the display layer reads them back by name.
func buildFeedbackPrompt(resume string) string {
	return fmt.Sprintf(`Analyze this resume and return ONLY a valid JSON object with exactly these fields:
- sections_detected: array of strings
- missing_sections: array of strings
- well_written_sections: array of strings
- quality_score: number between 0-100
- suggestions: array of strings

Resume:
%s

Return ONLY the JSON object, no other text or explanation.`, resume)
}

func buildImprovePrompt(resume, feedback string) string {
	return fmt.Sprintf(`Improve this resume based on the feedback below. Keep the candidate's experience intact but improve clarity, grammar, and formatting.

Feedback:
%s

Resume:
%s

Return the improved resume as plain text.`, feedback, resume)
}

func buildGuidancePrompt(improvedResume string) string {
	return fmt.Sprintf(`Based on the improved resume below, provide job search guidance including: 1) Recommended job titles to search for, 2) Top companies in the candidate's field, 3) Key job boards and websites to use, 4) Networking tips specific to their industry.

Resume:
%s`, improvedResume)
}
