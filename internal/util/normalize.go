package util

import (
	"encoding/json"
	"strings"

	"github.com/Pratham08dixit/resume/internal/model"
)

// NormalizeModelJSON strips the markdown fence a model sometimes wraps its
// JSON in, with or without a language tag. An unterminated fence has no
// closing marker to trim, so the remainder is returned as-is.
func NormalizeModelJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")

	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

// ParseFeedback decodes a model response into a Feedback record. Decoding is
// all-or-nothing: no repair beyond fence stripping is attempted.
func ParseFeedback(raw string) (*model.Feedback, error) {
	var feedback model.Feedback
	if err := json.Unmarshal([]byte(NormalizeModelJSON(raw)), &feedback); err != nil {
		return nil, err
	}
	return &feedback, nil
}
