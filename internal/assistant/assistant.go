// Package assistant runs the dispatch loop: listen, transcribe, gate,
// route, fall back.
package assistant

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nadzzz/nova/internal/action"
	"github.com/nadzzz/nova/internal/audio"
	"github.com/nadzzz/nova/internal/fallback"
	"github.com/nadzzz/nova/internal/skill"
	"github.com/nadzzz/nova/internal/text"
	"github.com/nadzzz/nova/internal/wake"
)

// searchNotice is spoken when no skill and no answer claimed the command.
const searchNotice = "I didn't catch a specific command. I opened a web search for you."

// Transcriber turns captured audio into normalized text. Empty means the
// audio could not be understood.
type Transcriber interface {
	Transcribe(ctx context.Context, wav []byte) string
}

// Speaker voices assistant replies.
type Speaker interface {
	Say(ctx context.Context, text string)
}

// Options carries the assistant's collaborators.
type Options struct {
	Listener audio.Listener
	Scribe   Transcriber
	Gate     *wake.Gate
	Router   *skill.Router
	Chain    *fallback.Chain
	Speaker  Speaker
	Browser  action.Browser
	Greeting string
	Reprompt string
}

// Assistant owns one dispatch loop over the audio and text pipeline.
type Assistant struct {
	listener audio.Listener
	scribe   Transcriber
	gate     *wake.Gate
	router   *skill.Router
	chain    *fallback.Chain
	speaker  Speaker
	browser  action.Browser
	greeting string
	reprompt string

	stopCh   chan struct{}
	stopOnce sync.Once
}

// New builds an Assistant from its collaborators.
func New(opts Options) *Assistant {
	return &Assistant{
		listener: opts.Listener,
		scribe:   opts.Scribe,
		gate:     opts.Gate,
		router:   opts.Router,
		chain:    opts.Chain,
		speaker:  opts.Speaker,
		browser:  opts.Browser,
		greeting: opts.Greeting,
		reprompt: opts.Reprompt,
		stopCh:   make(chan struct{}),
	}
}

// Run speaks the greeting and cycles until an exit skill, Stop, or context
// cancellation ends the session.
func (a *Assistant) Run(ctx context.Context) error {
	// Stop must also unblock a Listen that is waiting on the context, not
	// just the check between cycles, so the loop runs under a context that
	// is cancelled when the stop channel closes.
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-a.stopCh:
			cancel()
		case <-loopCtx.Done():
		}
	}()

	a.speaker.Say(loopCtx, a.greeting)
	for {
		select {
		case <-a.stopCh:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if a.Cycle(loopCtx) == skill.SessionEnd {
			return nil
		}
	}
}

// Stop ends the session after the in-flight cycle. Safe to call more than
// once and from any goroutine.
func (a *Assistant) Stop() {
	a.stopOnce.Do(func() { close(a.stopCh) })
}

// Cycle runs one listen-and-dispatch turn. Unclaimed here means the turn
// ended without a command: silence, unintelligible audio, or no wake phrase.
func (a *Assistant) Cycle(ctx context.Context) skill.Outcome {
	heard := a.hear(ctx)
	if heard == "" {
		return skill.Unclaimed
	}
	slog.Info("heard", "text", heard)

	if !a.gate.Heard(heard) {
		slog.Debug("no wake phrase, ignoring", "text", heard)
		return skill.Unclaimed
	}

	cmd := a.gate.ExtractCommand(heard)
	if cmd == "" {
		// Bare wake phrase: prompt once and take the next utterance
		// verbatim as the command.
		a.speaker.Say(ctx, a.reprompt)
		cmd = a.hear(ctx)
		if cmd == "" {
			return skill.Unclaimed
		}
		slog.Info("heard", "text", cmd)
	}

	return a.Dispatch(ctx, cmd)
}

// Dispatch routes a command through the skills and, when none claims it,
// the fallback chain. The result is always Handled or SessionEnd.
func (a *Assistant) Dispatch(ctx context.Context, cmd string) skill.Outcome {
	outcome := a.router.Dispatch(ctx, cmd)
	if outcome != skill.Unclaimed {
		return outcome
	}

	res := a.chain.Resolve(ctx, cmd)
	switch res.Kind {
	case fallback.KindAnswer:
		a.speaker.Say(ctx, res.Text)
	case fallback.KindSearch:
		if err := a.browser.Open(action.SearchURL(res.Query)); err != nil {
			slog.Warn("opening web search failed", "error", err)
		}
		a.speaker.Say(ctx, searchNotice)
	}
	return skill.Handled
}

// DispatchText resolves a pre-transcribed utterance, normalizing it first
// and applying the wake gate when gated is set. It returns the extracted
// command and the dispatch outcome.
func (a *Assistant) DispatchText(ctx context.Context, raw string, gated bool) (string, skill.Outcome) {
	cmd := text.Normalize(raw)
	if gated {
		if !a.gate.Heard(cmd) {
			return "", skill.Unclaimed
		}
		cmd = a.gate.ExtractCommand(cmd)
	}
	if cmd == "" {
		return "", a.router.Dispatch(ctx, cmd)
	}
	return cmd, a.Dispatch(ctx, cmd)
}

// Skills lists registered skill names in match priority order.
func (a *Assistant) Skills() []string {
	return a.router.Names()
}

// hear captures one utterance and transcribes it. Empty means silence,
// capture failure, or unintelligible audio; the loop just continues.
func (a *Assistant) hear(ctx context.Context) string {
	wav, err := a.listener.Listen(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("listen failed", "error", err)
			// Pace retries so a broken capture stack cannot spin the loop.
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
			}
		}
		return ""
	}
	if len(wav) == 0 {
		return ""
	}
	return a.scribe.Transcribe(ctx, wav)
}
