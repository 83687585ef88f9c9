package skill

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func recorder(name string, log *[]string) Action {
	return func(_ context.Context, rest string) error {
		*log = append(*log, name+":"+rest)
		return nil
	}
}

func TestFirstMatchWins(t *testing.T) {
	var ran []string
	r := NewRouter(
		Skill{Name: "a", Match: MatchContains("ping"), Run: recorder("a", &ran)},
		Skill{Name: "b", Match: MatchContains("ping"), Run: recorder("b", &ran)},
		Skill{Name: "c", Match: func(string) (string, bool) {
			t.Fatal("c must never be evaluated after a terminal match")
			return "", false
		}},
	)

	require.Equal(t, Handled, r.Dispatch(context.Background(), "ping pong"))
	require.Equal(t, []string{"a:ping pong"}, ran)
}

func TestUnclaimed(t *testing.T) {
	var ran []string
	r := NewRouter(Skill{Name: "a", Match: MatchContains("time"), Run: recorder("a", &ran)})

	require.Equal(t, Unclaimed, r.Dispatch(context.Background(), "play the violin"))
	require.Empty(t, ran)
}

func TestEmptyCommandIsHandledNoop(t *testing.T) {
	r := NewRouter(Skill{Name: "a", Match: MatchContains(""), Run: func(context.Context, string) error {
		t.Fatal("no skill may run for an empty command")
		return nil
	}})

	require.Equal(t, Handled, r.Dispatch(context.Background(), ""))
	require.Equal(t, Handled, r.Dispatch(context.Background(), "   "))
}

func TestExitSkillEndsSession(t *testing.T) {
	var ran []string
	r := NewRouter(Skill{Name: "exit", Match: MatchWord("stop"), Run: recorder("exit", &ran), Exit: true})

	require.Equal(t, SessionEnd, r.Dispatch(context.Background(), "stop"))
	require.Len(t, ran, 1)
}

func TestSkillErrorStillHandled(t *testing.T) {
	r := NewRouter(Skill{
		Name:  "weather",
		Match: MatchContains("weather"),
		Run:   func(context.Context, string) error { return errors.New("provider down") },
	})

	require.Equal(t, Handled, r.Dispatch(context.Background(), "weather in manila"))
}

func TestSkillPanicRecovered(t *testing.T) {
	r := NewRouter(Skill{
		Name:  "bad",
		Match: MatchContains("boom"),
		Run:   func(context.Context, string) error { panic("kaboom") },
	})

	require.NotPanics(t, func() {
		require.Equal(t, Handled, r.Dispatch(context.Background(), "boom"))
	})
	// The loop keeps working on the next cycle.
	require.Equal(t, Unclaimed, r.Dispatch(context.Background(), "something else"))
}

func TestNames(t *testing.T) {
	r := NewRouter(
		Skill{Name: "one", Match: MatchContains("x")},
		Skill{Name: "two", Match: MatchContains("y")},
	)
	require.Equal(t, []string{"one", "two"}, r.Names())
}

func TestMatchWord(t *testing.T) {
	m := MatchWord("exit", "quit", "goodbye", "stop")

	_, ok := m("please stop now")
	require.True(t, ok)
	_, ok = m("quit")
	require.True(t, ok)
	_, ok = m("stopwatch timer")
	require.False(t, ok)
	_, ok = m("unstoppable")
	require.False(t, ok)
}

func TestMatchCapture(t *testing.T) {
	m := MatchCapture(`\b(search|look up|google)\s+(.*)`)

	rest, ok := m("search python voice recognition")
	require.True(t, ok)
	require.Equal(t, "python voice recognition", rest)

	rest, ok = m("look up go generics")
	require.True(t, ok)
	require.Equal(t, "go generics", rest)

	_, ok = m("research papers")
	require.False(t, ok)
}
