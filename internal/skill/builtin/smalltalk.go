package builtin

import (
	"context"
	"regexp"

	"github.com/nadzzz/nova/internal/skill"
)

// smallTalkSkill answers a fixed table of conversational phrases. The
// matcher resolves the reply so Run only has to speak it.
func smallTalkSkill(opts Options) skill.Skill {
	name := title(opts.Name)
	replies := []struct {
		re    *regexp.Regexp
		reply string
	}{
		{regexp.MustCompile(`\bwho (are|r) you\b`), "I'm " + name + ", your voice assistant."},
		{regexp.MustCompile(`\bwhat('?| i)s your name\b`), "My name is " + name + "."},
		{regexp.MustCompile(`\bhow are you\b`), "I'm doing great! How can I help?"},
		{regexp.MustCompile(`\bthank(s| you)\b`), "You're welcome!"},
		{regexp.MustCompile(`\bgood (morning|afternoon|evening|night)\b`), "Hello! How can I assist you?"},
		{regexp.MustCompile(`\btell me a joke\b`), "Why did the computer show up at work late? It had a hard drive!"},
	}

	return skill.Skill{
		Name: "small-talk",
		Match: func(cmd string) (string, bool) {
			for _, r := range replies {
				if r.re.MatchString(cmd) {
					return r.reply, true
				}
			}
			return "", false
		},
		Run: func(ctx context.Context, reply string) error {
			opts.Speaker.Say(ctx, reply)
			return nil
		},
	}
}
