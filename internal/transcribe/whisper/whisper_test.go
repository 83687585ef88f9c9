package whisper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nadzzz/nova/internal/config"
	"github.com/nadzzz/nova/internal/transcribe"
)

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "whisper-1", r.FormValue("model"))

		_, _, err := r.FormFile("file")
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": " Hey Nova, what time is it? "}`))
	}))
	defer srv.Close()

	b := New(config.WhisperConfig{Endpoint: srv.URL, APIKey: "sk-test"})
	out, err := b.Transcribe(context.Background(), []byte("RIFFfake"))
	require.NoError(t, err)
	require.Equal(t, "Hey Nova, what time is it?", out)
}

func TestTranscribeEmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text": ""}`))
	}))
	defer srv.Close()

	b := New(config.WhisperConfig{Endpoint: srv.URL})
	_, err := b.Transcribe(context.Background(), []byte{0x00})
	require.ErrorIs(t, err, transcribe.ErrUnintelligible)
}

func TestTranscribeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	b := New(config.WhisperConfig{Endpoint: srv.URL})
	_, err := b.Transcribe(context.Background(), []byte{0x00})
	require.ErrorIs(t, err, transcribe.ErrUnavailable)
}

func TestTranscribeUnreachable(t *testing.T) {
	b := New(config.WhisperConfig{Endpoint: "http://127.0.0.1:1/v1/audio/transcriptions"})
	_, err := b.Transcribe(context.Background(), []byte{0x00})
	require.ErrorIs(t, err, transcribe.ErrUnavailable)
}
