package narrative

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Veraticus/arkas/internal/budget"
	"github.com/Veraticus/arkas/internal/llm"
)

var (
	// ErrUnavailable is recorded when no text-generation client is configured.
	ErrUnavailable = errors.New("text generation is not configured")
	// ErrEmptyQuestion is returned by Ask for a blank question.
	ErrEmptyQuestion = errors.New("question is empty")
	// ErrEmptyResponse is recorded when the service answers with blank text.
	ErrEmptyResponse = errors.New("empty response from text generation service")
)

// Result is the explanation shown to the user. When Fallback is set, Err
// holds the reason the service answer was replaced; callers surface it as a
// warning, never as a failure.
type Result struct {
	Err      error
	Text     string
	Fallback bool
}

// Generator produces explanations, falling back to local templates whenever
// the client fails.
type Generator struct {
	client llm.Client
	logger *slog.Logger
}

// NewGenerator creates a generator. A nil client always uses the fallback.
func NewGenerator(client llm.Client, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{client: client, logger: logger}
}

// Explain describes an analysis.
func (g *Generator) Explain(ctx context.Context, a budget.Analysis) Result {
	text, err := g.complete(ctx, AnalysisPrompt(a))
	if err != nil {
		g.logger.Warn("using local analysis", "error", err)
		return Result{Text: Fallback(a), Fallback: true, Err: err}
	}
	return Result{Text: text}
}

// Ask answers a follow-up question about the session's figures and records
// the exchange in the session history.
func (g *Generator) Ask(ctx context.Context, s *budget.Session, question string) (Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Result{}, ErrEmptyQuestion
	}

	result := Result{}
	text, err := g.complete(ctx, ChatPrompt(s, question))
	if err != nil {
		g.logger.Warn("using local chat answer", "error", err)
		result = Result{Text: ChatFallback(question), Fallback: true, Err: err}
	} else {
		result.Text = text
	}

	s.AddExchange(budget.Exchange{Question: question, Answer: result.Text, Fallback: result.Fallback})
	return result, nil
}

func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", ErrUnavailable
	}

	g.logger.Debug("requesting completion", "prompt_length", len(prompt))

	text, err := g.client.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
