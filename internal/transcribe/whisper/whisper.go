// Package whisper implements the online transcription backend against any
// OpenAI-compatible audio/transcriptions endpoint (the hosted API, a
// whisper.cpp server, faster-whisper, and the like).
package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/nadzzz/nova/internal/config"
	"github.com/nadzzz/nova/internal/transcribe"
)

// Backend posts audio to a whisper-style HTTP transcription API.
type Backend struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

// New creates a whisper backend from config.
func New(cfg config.WhisperConfig) *Backend {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = config.DefaultWhisperEndpoint
	}
	model := cfg.Model
	if model == "" {
		model = "whisper-1"
	}
	return &Backend{
		endpoint: endpoint,
		apiKey:   cfg.APIKey,
		model:    model,
		client:   &http.Client{},
	}
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return "whisper" }

// Transcribe sends the audio as a multipart form and returns the recognized
// text. Network and server failures map to ErrUnavailable; a successful
// request that recognized nothing maps to ErrUnintelligible.
func (b *Backend) Transcribe(ctx context.Context, wav []byte) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(wav)); err != nil {
		return "", fmt.Errorf("writing audio: %w", err)
	}
	_ = writer.WriteField("model", b.model)
	_ = writer.WriteField("response_format", "json")
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if b.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.apiKey)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", transcribe.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("%w: status %d: %s", transcribe.ErrUnavailable, resp.StatusCode, respBody)
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding transcription: %w", err)
	}

	out := strings.TrimSpace(result.Text)
	if out == "" {
		return "", transcribe.ErrUnintelligible
	}

	slog.Debug("online transcription complete", "text_length", len(out))
	return out, nil
}

// Close is a no-op for the whisper backend.
func (b *Backend) Close() error { return nil }
