package builtin

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nadzzz/nova/internal/skill"
)

// appAliases maps spoken names to config app keys. Longer aliases come
// first so "open ms word" resolves before the bare "word".
var appAliases = []struct {
	spoken string
	key    string
}{
	{"visual studio code", "vscode"},
	{"ms powerpoint", "powerpoint"},
	{"calculator", "calculator"},
	{"powerpoint", "powerpoint"},
	{"ms excel", "excel"},
	{"settings", "settings"},
	{"ms word", "word"},
	{"notepad", "notepad"},
	{"vs code", "vscode"},
	{"excel", "excel"},
	{"paint", "paint"},
	{"word", "word"},
	{"ppt", "powerpoint"},
}

// appDisplay is how each app key is spoken back to the user.
var appDisplay = map[string]string{
	"notepad":    "Notepad",
	"calculator": "Calculator",
	"settings":   "Settings",
	"paint":      "Paint",
	"vscode":     "Visual Studio Code",
	"excel":      "Microsoft Excel",
	"powerpoint": "Microsoft PowerPoint",
	"word":       "Microsoft Word",
}

// openAppSkill launches configured local applications. A key with no
// configured or existing path is a normal state spoken back to the user,
// not an error.
func openAppSkill(opts Options) skill.Skill {
	return skill.Skill{
		Name: "open-app",
		Match: func(cmd string) (string, bool) {
			for _, a := range appAliases {
				if strings.Contains(cmd, "open "+a.spoken) {
					return a.key, true
				}
			}
			return "", false
		},
		Run: func(ctx context.Context, key string) error {
			display := appDisplay[key]
			if display == "" {
				display = title(key)
			}
			path := opts.Apps[key]
			if path == "" {
				opts.Speaker.Say(ctx, "I couldn't find "+display+" on your system.")
				return nil
			}
			if err := opts.Launcher.Launch(path); err != nil {
				slog.Warn("app launch failed", "app", key, "error", err)
				opts.Speaker.Say(ctx, "I couldn't find "+display+" on your system.")
				return nil
			}
			opts.Speaker.Say(ctx, "Opening "+display+".")
			return nil
		},
	}
}
