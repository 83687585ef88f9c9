package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// SpeakerPlayer plays decoded audio through the default output device.
type SpeakerPlayer struct{}

// PlayWAV decodes and plays a WAV buffer, blocking until playback finishes
// or ctx is cancelled.
func (SpeakerPlayer) PlayWAV(ctx context.Context, b []byte) error {
	streamer, format, err := wav.Decode(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()
	return playStream(ctx, streamer, format)
}

// PlayFile plays a WAV or MP3 file by extension, blocking until done.
func (SpeakerPlayer) PlayFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(io.NopCloser(f))
	default:
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()
	return playStream(ctx, streamer, format)
}

func playStream(ctx context.Context, streamer beep.Streamer, format beep.Format) error {
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	// Buffered so a callback firing after a cancelled wait still has a
	// home for its send.
	done := make(chan bool, 1)
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		done <- true
	})))
	return waitPlayback(ctx, done)
}

// waitPlayback blocks until playback completes or ctx is cancelled, tearing
// the speaker down on cancellation.
func waitPlayback(ctx context.Context, done <-chan bool) error {
	select {
	case <-done:
	case <-ctx.Done():
		speaker.Close()
	}
	return nil
}
