// Package assist drafts summaries and replies for contact messages with a
// generative-text model.
package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrNotConfigured is returned by every operation when no API key was configured.
var ErrNotConfigured = errors.New("AI client is not initialized. Please configure the GEMINI_API_KEY.")

const (
	summaryFailed = "Could not generate summary. Please try again."
	replyFailed   = "Could not draft reply. Please try again."

	summaryPrompt = "Summarize the following customer inquiry concisely, in one or two sentences. " +
		"Focus on the main point or question.\n\n---\n\n%s"
	replyPrompt = "Draft a professional and helpful reply to the following customer message. " +
		"Keep it friendly but concise. Address the customer's main point directly. " +
		"Sign off as \"The BroTech Team\".\n\n---\n\nCustomer Message:\n%s"
)

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Error is a generation failure. Error() is safe to show to the operator;
// the cause is kept for logs.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

type Assistant struct {
	gen Generator
}

// New returns an assistant; a nil generator makes every call fail with ErrNotConfigured.
func New(gen Generator) *Assistant {
	return &Assistant{gen: gen}
}

func (a *Assistant) Configured() bool {
	return a != nil && a.gen != nil
}

func (a *Assistant) Summarize(ctx context.Context, message string) (string, error) {
	return a.run(ctx, "summarize", fmt.Sprintf(summaryPrompt, message), summaryFailed)
}

func (a *Assistant) DraftReply(ctx context.Context, message string) (string, error) {
	return a.run(ctx, "draft reply", fmt.Sprintf(replyPrompt, message), replyFailed)
}

func (a *Assistant) run(ctx context.Context, op, prompt, failure string) (string, error) {
	if !a.Configured() {
		return "", ErrNotConfigured
	}

	text, err := a.gen.Generate(ctx, prompt)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("model returned no text")
	}
	if err != nil {
		zap.L().Error("AI generation failed", zap.String("op", op), zap.Error(err))
		return "", &Error{Message: failure, Err: err}
	}
	return strings.TrimSpace(text), nil
}
