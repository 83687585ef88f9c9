package wake

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newGate(t *testing.T) *Gate {
	t.Helper()
	return New(Phrases("Nova"))
}

func TestPhrases(t *testing.T) {
	require.Equal(t, []string{"hey nova", "okay nova", "hi nova"}, Phrases("Nova"))
}

func TestHeard(t *testing.T) {
	g := newGate(t)

	require.True(t, g.Heard("hey nova what's the time"))
	require.True(t, g.Heard("okay nova open youtube"))
	require.True(t, g.Heard("well hi nova"))
	require.True(t, g.Heard("hey nova"))

	require.False(t, g.Heard("what's the time"))
	require.False(t, g.Heard("heynovascotia"))
	require.False(t, g.Heard("hey novascotia what's up"))
	require.False(t, g.Heard(""))
}

func TestExtractCommand(t *testing.T) {
	g := newGate(t)

	require.Equal(t, "what's the time", g.ExtractCommand("hey nova what's the time"))
	require.Equal(t, "open youtube", g.ExtractCommand("okay nova open youtube"))
	require.Equal(t, "", g.ExtractCommand("hey nova"))
	require.Equal(t, "", g.ExtractCommand("hey nova okay nova"))
	// Text without a wake phrase passes through re-normalized.
	require.Equal(t, "tell me a joke", g.ExtractCommand("tell me a joke"))
}

func TestCustomPhrases(t *testing.T) {
	g := New([]string{"Computer!", ""})
	require.True(t, g.Heard("computer! status report"))
	require.Equal(t, "status report", g.ExtractCommand("computer! status report"))
}
