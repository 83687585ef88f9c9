// Package builtin assembles the stock skill set: session control, clock,
// quick sites, web search, app launching, music, small talk, translation,
// and weather. Registration order is match priority, so the narrow skills
// come before the catch-all ones.
package builtin

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/nadzzz/nova/internal/action"
	"github.com/nadzzz/nova/internal/config"
	"github.com/nadzzz/nova/internal/skill"
)

// Speaker voices skill replies.
type Speaker interface {
	Say(ctx context.Context, text string)
}

// Player plays local audio files.
type Player interface {
	PlayFile(ctx context.Context, path string) error
}

// Options carries the collaborators and configuration the stock skills need.
type Options struct {
	Name      string
	Speaker   Speaker
	Browser   action.Browser
	Launcher  action.Launcher
	Player    Player
	Sites     map[string]string
	Apps      map[string]string
	MusicFile string
	Weather   config.WeatherConfig
	Translate config.TranslateConfig

	// Now is the clock source for the time and date skills. Defaults to
	// time.Now.
	Now func() time.Time

	// HTTP performs the weather and translate requests. Defaults to a
	// client with a 10s timeout.
	HTTP *http.Client
}

// Skills returns the stock skills in match priority order.
func Skills(opts Options) []skill.Skill {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.HTTP == nil {
		opts.HTTP = &http.Client{Timeout: 10 * time.Second}
	}

	return []skill.Skill{
		exitSkill(opts),
		timeSkill(opts),
		dateSkill(opts),
		openSiteSkill(opts),
		webSearchSkill(opts),
		openAppSkill(opts),
		playMusicSkill(opts),
		smallTalkSkill(opts),
		translateSkill(opts),
		weatherSkill(opts),
	}
}

func exitSkill(opts Options) skill.Skill {
	return skill.Skill{
		Name:  "exit",
		Match: skill.MatchWord("exit", "quit", "goodbye", "stop"),
		Run: func(ctx context.Context, _ string) error {
			opts.Speaker.Say(ctx, "Goodbye!")
			return nil
		},
		Exit: true,
	}
}

// title upper-cases the first letter of each word, for city and assistant
// names that arrive normalized to lowercase.
func title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
