package tts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSynth struct {
	wav    []byte
	err    error
	closed bool
}

func (f *fakeSynth) Synthesize(context.Context, string) ([]byte, error) {
	return f.wav, f.err
}

func (f *fakeSynth) Close() error {
	f.closed = true
	return nil
}

type fakePlayer struct {
	played [][]byte
	err    error
}

func (f *fakePlayer) PlayWAV(_ context.Context, wav []byte) error {
	f.played = append(f.played, wav)
	return f.err
}

func TestSaySynthesizesAndPlays(t *testing.T) {
	synth := &fakeSynth{wav: []byte("RIFFxxxx")}
	player := &fakePlayer{}
	s := NewSpeaker(synth, player, "nova")

	s.Say(context.Background(), "Hello!")
	require.Equal(t, [][]byte{[]byte("RIFFxxxx")}, player.played)
}

func TestSayDegradesOnSynthFailure(t *testing.T) {
	synth := &fakeSynth{err: errors.New("piper down")}
	player := &fakePlayer{}
	s := NewSpeaker(synth, player, "nova")

	// Must not panic or propagate; reply still reaches the console.
	s.Say(context.Background(), "Hello!")
	require.Empty(t, player.played)
}

func TestSayConsoleOnly(t *testing.T) {
	s := NewSpeaker(nil, nil, "nova")
	s.Say(context.Background(), "Hello!")
	require.NoError(t, s.Close())
}

func TestCloseReleasesSynth(t *testing.T) {
	synth := &fakeSynth{}
	s := NewSpeaker(synth, &fakePlayer{}, "nova")
	require.NoError(t, s.Close())
	require.True(t, synth.closed)
}
