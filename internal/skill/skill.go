// Package skill implements ordered, first-match-wins routing of commands to
// registered capabilities.
//
// The router holds an explicit ordered list of (predicate, action) pairs.
// Registration order is the match-priority order; exactly one skill's action
// runs per dispatch, and a skill's internal failure never escapes the router,
// so one bad collaborator cannot take down the dispatch loop.
package skill

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Outcome reports how the router disposed of a command.
type Outcome int

const (
	// Unclaimed means no skill's predicate matched; the caller should fall
	// back to a generative answer or a web search.
	Unclaimed Outcome = iota

	// Handled means a skill ran (or the command was empty) and routing is done.
	Handled

	// SessionEnd means the matched skill ended the whole assistant session.
	SessionEnd
)

// String returns the outcome name for logs and API responses.
func (o Outcome) String() string {
	switch o {
	case Handled:
		return "handled"
	case SessionEnd:
		return "session_end"
	default:
		return "unclaimed"
	}
}

// Matcher inspects a command and returns the remainder the action should
// receive. For whole-command skills the remainder is the command itself.
type Matcher func(cmd string) (rest string, ok bool)

// Action performs the skill's side effect. Failures are the skill's own to
// voice; a returned error is logged by the router and goes no further.
type Action func(ctx context.Context, rest string) error

// Skill is one named predicate+action pair. Skills are immutable once
// registered. Exit marks the distinguished skill that ends the session
// after its side effect.
type Skill struct {
	Name  string
	Match Matcher
	Run   Action
	Exit  bool
}

// Router evaluates skills strictly in registration order.
type Router struct {
	skills []Skill
}

// NewRouter builds a router over the given skills, in priority order.
func NewRouter(skills ...Skill) *Router {
	return &Router{skills: skills}
}

// Names returns the registered skill names in priority order.
func (r *Router) Names() []string {
	names := make([]string, len(r.skills))
	for i, s := range r.skills {
		names[i] = s.Name
	}
	return names
}

// Dispatch applies the first matching skill to cmd. An empty command is
// handled as a no-op — nothing to do, not an error. Evaluation stops at the
// first match even if a later skill would also match.
func (r *Router) Dispatch(ctx context.Context, cmd string) Outcome {
	if strings.TrimSpace(cmd) == "" {
		return Handled
	}
	for i := range r.skills {
		s := &r.skills[i]
		rest, ok := s.Match(cmd)
		if !ok {
			continue
		}
		slog.Debug("skill matched", "skill", s.Name, "command", cmd)
		r.run(ctx, s, rest)
		if s.Exit {
			return SessionEnd
		}
		return Handled
	}
	slog.Debug("no skill claimed command", "command", cmd)
	return Unclaimed
}

// run fault-isolates one skill action: errors and panics are logged and the
// command still counts as handled.
func (r *Router) run(ctx context.Context, s *Skill, rest string) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("skill panicked", "skill", s.Name, "panic", fmt.Sprint(rec))
		}
	}()
	if err := s.Run(ctx, rest); err != nil {
		slog.Error("skill failed", "skill", s.Name, "error", err)
	}
}

// MatchWord matches when any of the words occurs as a whole word; the
// remainder is the full command.
func MatchWord(words ...string) Matcher {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	re := regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
	return func(cmd string) (string, bool) {
		return cmd, re.MatchString(cmd)
	}
}

// MatchContains matches when any substring occurs; the remainder is the
// full command.
func MatchContains(subs ...string) Matcher {
	return func(cmd string) (string, bool) {
		for _, sub := range subs {
			if strings.Contains(cmd, sub) {
				return cmd, true
			}
		}
		return "", false
	}
}

// MatchCapture matches the expression and returns its last capture group,
// trimmed, as the remainder.
func MatchCapture(expr string) Matcher {
	re := regexp.MustCompile(expr)
	return func(cmd string) (string, bool) {
		m := re.FindStringSubmatch(cmd)
		if m == nil {
			return "", false
		}
		return strings.TrimSpace(m[len(m)-1]), true
	}
}
