// Package transcribe turns one captured audio segment into normalized text,
// tolerating backend failure.
//
// The pipeline tries an offline backend before an online one: a local
// recognizer avoids network latency and keeps audio on the machine by
// default, so the online backend is a correctness fallback. Every backend
// fault is absorbed here and converted to empty text; nothing below this
// layer ever sees a transcription error.
package transcribe

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nadzzz/nova/internal/text"
)

// Distinguished backend failure modes. Backends return these (wrapped) so
// the pipeline's logs can tell an unheard utterance from a dead service;
// both degrade to empty text at the pipeline boundary.
var (
	// ErrUnintelligible means audio was captured but nothing was recognized.
	ErrUnintelligible = errors.New("transcribe: audio not recognized")

	// ErrUnavailable means the backend is unreachable or misconfigured.
	ErrUnavailable = errors.New("transcribe: backend unavailable")
)

// Backend converts one bounded WAV segment into raw text.
type Backend interface {
	// Name returns the backend identifier (e.g., "vosk", "whisper").
	Name() string

	// Transcribe converts audio bytes to text.
	Transcribe(ctx context.Context, wav []byte) (string, error)

	// Close releases any resources held by the backend.
	Close() error
}

// Pipeline tries the offline backend first, then the online one, and
// normalizes whatever text it gets. Either backend may be nil when not
// configured; a pipeline with no backends always reports empty text.
type Pipeline struct {
	offline Backend
	online  Backend
	timeout time.Duration
}

// New builds a pipeline. timeout bounds each individual backend request.
func New(offline, online Backend, timeout time.Duration) *Pipeline {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Pipeline{offline: offline, online: online, timeout: timeout}
}

// Transcribe returns normalized text for one audio segment. An empty string
// means nothing usable was understood — a normal outcome, never a fault.
func (p *Pipeline) Transcribe(ctx context.Context, wav []byte) string {
	if len(wav) == 0 {
		return ""
	}
	raw := p.attempt(ctx, p.offline, wav)
	if raw == "" {
		raw = p.attempt(ctx, p.online, wav)
	}
	return text.Normalize(raw)
}

func (p *Pipeline) attempt(ctx context.Context, b Backend, wav []byte) string {
	if b == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := b.Transcribe(ctx, wav)
	if err != nil {
		if errors.Is(err, ErrUnintelligible) {
			slog.Debug("nothing recognized", "backend", b.Name())
		} else {
			slog.Warn("transcription backend failed", "backend", b.Name(), "error", err)
		}
		return ""
	}
	return out
}

// Close releases both backends.
func (p *Pipeline) Close() error {
	var errs []error
	if p.offline != nil {
		errs = append(errs, p.offline.Close())
	}
	if p.online != nil {
		errs = append(errs, p.online.Close())
	}
	return errors.Join(errs...)
}
