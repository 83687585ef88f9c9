package text

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	require.Equal(t, "hey nova, what's the time?", Normalize("Hey Nova, what's the time?"))
	require.Equal(t, "open youtube", Normalize("  Open   YouTube  "))
	require.Equal(t, "a b", Normalize("a\t\nb"))
	require.Equal(t, "caf - 100", Normalize("Café — 100%"))
	require.Equal(t, "", Normalize(""))
	require.Equal(t, "", Normalize("🎧🎧🎧"))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Hey Nova, OPEN GitHub!",
		"weather in Quezon City",
		"¿qué hora es?",
		"  spaced    out  ",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		require.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizeAllowedSetOnly(t *testing.T) {
	out := Normalize("x@#$%^&*()_+=y[]{}|\\<>/~`z")
	for _, r := range out {
		require.True(t, allowed(r), "rune %q escaped the allowed set", r)
	}
}
