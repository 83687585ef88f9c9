// Package vosk implements the offline transcription backend against a
// vosk-server websocket endpoint.
//
// Protocol: open a websocket, send a JSON config frame with the sample rate,
// stream the audio as binary frames, send {"eof": 1}, then read JSON result
// frames until the server closes the connection. The final frame carries the
// recognized text.
package vosk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nadzzz/nova/internal/config"
	"github.com/nadzzz/nova/internal/transcribe"
)

// chunkSize is bytes per binary frame: 0.25s at 16kHz mono s16.
const chunkSize = 8000

// Backend streams audio to a vosk-server instance, one websocket connection
// per request.
type Backend struct {
	endpoint   string
	sampleRate int
	dialer     *websocket.Dialer
}

// New creates a vosk backend from config.
func New(cfg config.VoskConfig) *Backend {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 16000
	}
	return &Backend{
		endpoint:   wsURL(cfg.Endpoint),
		sampleRate: rate,
		dialer:     &websocket.Dialer{HandshakeTimeout: 5 * time.Second},
	}
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return "vosk" }

// Transcribe sends one audio segment through a fresh recognizer session.
func (b *Backend) Transcribe(ctx context.Context, wav []byte) (string, error) {
	conn, _, err := b.dialer.DialContext(ctx, b.endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: dial %s: %v", transcribe.ErrUnavailable, b.endpoint, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
		_ = conn.SetWriteDeadline(deadline)
	}

	cfgFrame := fmt.Sprintf(`{"config": {"sample_rate": %d}}`, b.sampleRate)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(cfgFrame)); err != nil {
		return "", fmt.Errorf("%w: send config: %v", transcribe.ErrUnavailable, err)
	}

	pcm := pcmPayload(wav)
	for off := 0; off < len(pcm); off += chunkSize {
		end := min(off+chunkSize, len(pcm))
		if err := conn.WriteMessage(websocket.BinaryMessage, pcm[off:end]); err != nil {
			return "", fmt.Errorf("%w: send audio: %v", transcribe.ErrUnavailable, err)
		}
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"eof": 1}`)); err != nil {
		return "", fmt.Errorf("%w: send eof: %v", transcribe.ErrUnavailable, err)
	}

	// Collect result frames; partial frames carry "partial" instead of
	// "text" and are skipped. The server closes after the final result.
	var segments []string
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var res struct {
			Text string `json:"text"`
		}
		if jerr := json.Unmarshal(frame, &res); jerr == nil {
			if t := strings.TrimSpace(res.Text); t != "" {
				segments = append(segments, t)
			}
		}
	}

	out := strings.Join(segments, " ")
	if out == "" {
		return "", transcribe.ErrUnintelligible
	}
	return out, nil
}

// Close is a no-op — connections are per-request.
func (b *Backend) Close() error { return nil }

// pcmPayload strips the 44-byte RIFF header from a canonical WAV buffer;
// the recognizer expects raw PCM samples, not container bytes.
func pcmPayload(wav []byte) []byte {
	if len(wav) >= 44 && bytes.HasPrefix(wav, []byte("RIFF")) {
		return wav[44:]
	}
	return wav
}

// wsURL normalizes a host:port endpoint to a websocket URL.
func wsURL(endpoint string) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	return "ws://" + endpoint
}
