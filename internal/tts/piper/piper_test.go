package piper

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nadzzz/nova/internal/config"
)

// fakeWyomingServer accepts one connection, reads the synthesize event, and
// replies with a short audio-start/chunk/stop sequence.
func fakeWyomingServer(t *testing.T, pcm []byte) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		evt, _, err := readEvent(conn)
		if err != nil || evt.Type != "synthesize" {
			return
		}

		_ = writeEvent(conn, wyomingEvent{
			Type: "audio-start",
			Data: map[string]any{"rate": float64(22050), "channels": float64(1), "width": float64(2)},
		}, nil)
		_ = writeEvent(conn, wyomingEvent{Type: "audio-chunk"}, pcm)
		_ = writeEvent(conn, wyomingEvent{Type: "audio-stop"}, nil)
	}()

	return ln.Addr().String()
}

func TestSynthesize(t *testing.T) {
	pcm := []byte{0x01, 0x00, 0x02, 0x00}
	addr := fakeWyomingServer(t, pcm)

	s := New(config.PiperConfig{Endpoint: addr, Voice: "en_US-lessac-medium"})
	wav, err := s.Synthesize(context.Background(), "Hello!")
	require.NoError(t, err)
	require.Equal(t, "RIFF", string(wav[0:4]))
	require.Equal(t, "WAVE", string(wav[8:12]))
	require.Equal(t, pcm, wav[44:])
}

func TestSynthesizeEmptyText(t *testing.T) {
	s := New(config.PiperConfig{Endpoint: "127.0.0.1:1"})
	_, err := s.Synthesize(context.Background(), "")
	require.Error(t, err)
}

func TestSynthesizeServerDown(t *testing.T) {
	s := New(config.PiperConfig{Endpoint: "127.0.0.1:1", Voice: "v"})
	_, err := s.Synthesize(context.Background(), "Hello!")
	require.Error(t, err)
}

func TestEndpointPrefixTrimmed(t *testing.T) {
	s := New(config.PiperConfig{Endpoint: "tcp://localhost:10200"})
	require.Equal(t, "localhost:10200", s.endpoint)
}
