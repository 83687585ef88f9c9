// Package fallback resolves commands no skill claimed: a generative answer
// when one is available, a web search otherwise.
package fallback

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Kind tells the caller how to act on a Result.
type Kind int

const (
	// KindSearch means no answer was produced; open a web search for Query.
	KindSearch Kind = iota

	// KindAnswer means Text holds a spoken answer.
	KindAnswer
)

// Result is the outcome of resolving an unclaimed command.
type Result struct {
	Kind  Kind
	Text  string
	Query string
}

// Answerer produces a short spoken answer for a prompt.
type Answerer interface {
	Answer(ctx context.Context, prompt string) (string, error)
}

// Chain tries the answerer first and degrades to web search. A nil answerer
// is a valid configuration that always searches.
type Chain struct {
	answerer Answerer
	timeout  time.Duration
}

// New builds a Chain. answerer may be nil.
func New(answerer Answerer, timeout time.Duration) *Chain {
	return &Chain{answerer: answerer, timeout: timeout}
}

// Resolve never fails: any answerer problem turns into a search result
// carrying the original command as the query.
func (c *Chain) Resolve(ctx context.Context, cmd string) Result {
	search := Result{Kind: KindSearch, Query: cmd}
	if c.answerer == nil {
		return search
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	text, err := c.answerer.Answer(ctx, cmd)
	if err != nil {
		slog.Warn("answer backend failed, degrading to web search", "error", err)
		return search
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return search
	}
	return Result{Kind: KindAnswer, Text: text}
}
