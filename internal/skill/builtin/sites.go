package builtin

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/nadzzz/nova/internal/action"
	"github.com/nadzzz/nova/internal/skill"
)

var openWord = regexp.MustCompile(`\bopen\b`)

// openSiteSkill opens a known site when the command says "open" and names
// one. Site keys are checked in sorted order so matching is deterministic.
func openSiteSkill(opts Options) skill.Skill {
	keys := make([]string, 0, len(opts.Sites))
	for k := range opts.Sites {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return skill.Skill{
		Name: "open-site",
		Match: func(cmd string) (string, bool) {
			if !openWord.MatchString(cmd) {
				return "", false
			}
			for _, key := range keys {
				if strings.Contains(cmd, key) {
					return key, true
				}
			}
			return "", false
		},
		Run: func(ctx context.Context, key string) error {
			if err := opts.Browser.Open(opts.Sites[key]); err != nil {
				return err
			}
			opts.Speaker.Say(ctx, "Opening "+key+".")
			return nil
		},
	}
}

func webSearchSkill(opts Options) skill.Skill {
	return skill.Skill{
		Name:  "web-search",
		Match: skill.MatchCapture(`\b(search|look up|google)\s+(.*)`),
		Run: func(ctx context.Context, query string) error {
			if err := opts.Browser.Open(action.SearchURL(query)); err != nil {
				return err
			}
			opts.Speaker.Say(ctx, "Here is what I found on the web.")
			return nil
		},
	}
}
