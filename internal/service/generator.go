package service

import "context"

// Generator is a single request/response exchange with a text generation
// service. Implementations make exactly one call per invocation; the caller
// decides what a failure means.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
