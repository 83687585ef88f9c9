// Package wake decides whether an utterance is directed at the assistant and
// isolates the command payload.
//
// Gating happens after normalization so phrase matching is robust to casing
// and punctuation noise from the transcription backends, and before routing
// so skills never see the wake phrase as part of their input.
package wake

import (
	"regexp"

	"github.com/nadzzz/nova/internal/text"
)

// Gate matches a fixed set of word-boundary-anchored wake phrases against
// normalized utterances. It is immutable once built.
type Gate struct {
	patterns []*regexp.Regexp
}

// Phrases derives the default wake phrase set from the assistant name.
func Phrases(name string) []string {
	name = text.Normalize(name)
	return []string{"hey " + name, "okay " + name, "hi " + name}
}

// New builds a gate for the given phrases. Each phrase is normalized before
// compilation so matching lines up with pipeline output.
func New(phrases []string) *Gate {
	g := &Gate{}
	for _, p := range phrases {
		p = text.Normalize(p)
		if p == "" {
			continue
		}
		g.patterns = append(g.patterns, compilePhrase(p))
	}
	return g
}

// compilePhrase anchors a word boundary at each end of the phrase that ends
// in a word character; \b never matches between two non-word characters.
func compilePhrase(p string) *regexp.Regexp {
	expr := regexp.QuoteMeta(p)
	runes := []rune(p)
	if isWordRune(runes[0]) {
		expr = `\b` + expr
	}
	if isWordRune(runes[len(runes)-1]) {
		expr += `\b`
	}
	return regexp.MustCompile(expr)
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_'
}

// Heard reports whether any wake phrase occurs anywhere in the utterance as
// whole words. A phrase embedded inside a longer word does not match.
func (g *Gate) Heard(utterance string) bool {
	for _, p := range g.patterns {
		if p.MatchString(utterance) {
			return true
		}
	}
	return false
}

// ExtractCommand removes every occurrence of every wake phrase from the
// utterance and re-normalizes what remains. An empty result means the wake
// word was heard with no command attached; the caller should solicit one
// more utterance rather than drop the turn.
func (g *Gate) ExtractCommand(utterance string) string {
	for _, p := range g.patterns {
		utterance = p.ReplaceAllString(utterance, " ")
	}
	return text.Normalize(utterance)
}
