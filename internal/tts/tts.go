// Package tts turns reply text into audible speech.
package tts

import (
	"context"
	"fmt"
	"log/slog"
)

// Synthesizer converts text to WAV audio.
type Synthesizer interface {
	// Synthesize converts text to speech, returning WAV audio bytes.
	Synthesize(ctx context.Context, text string) ([]byte, error)

	// Close releases any resources held by the synthesizer.
	Close() error
}

// Player plays WAV audio, blocking until playback completes.
type Player interface {
	PlayWAV(ctx context.Context, wav []byte) error
}

// Speaker voices reply text: synthesize, then play, blocking until the
// reply has been spoken. Every reply is also echoed to the console, and any
// synthesis or playback failure degrades to that echo alone so dispatch
// never fails because speech did.
type Speaker struct {
	synth  Synthesizer
	player Player
	name   string
}

// NewSpeaker builds a Speaker. synth may be nil for a console-only assistant.
func NewSpeaker(synth Synthesizer, player Player, name string) *Speaker {
	return &Speaker{synth: synth, player: player, name: name}
}

// Say voices text and blocks until it has been spoken.
func (s *Speaker) Say(ctx context.Context, text string) {
	fmt.Printf("%s: %s\n", s.name, text)
	if s.synth == nil || s.player == nil {
		return
	}

	wav, err := s.synth.Synthesize(ctx, text)
	if err != nil {
		slog.Warn("speech synthesis failed", "error", err)
		return
	}
	if err := s.player.PlayWAV(ctx, wav); err != nil {
		slog.Warn("speech playback failed", "error", err)
	}
}

// Close releases the underlying synthesizer.
func (s *Speaker) Close() error {
	if s.synth == nil {
		return nil
	}
	return s.synth.Close()
}
