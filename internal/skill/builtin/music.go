package builtin

import (
	"context"
	"log/slog"
	"os"

	"github.com/nadzzz/nova/internal/skill"
)

// playMusicSkill starts the configured local file and returns; playback
// runs in the background so the assistant can keep listening.
func playMusicSkill(opts Options) skill.Skill {
	return skill.Skill{
		Name:  "play-music",
		Match: skill.MatchContains("play music"),
		Run: func(ctx context.Context, _ string) error {
			if opts.MusicFile == "" {
				opts.Speaker.Say(ctx, "I don't have a music file set up.")
				return nil
			}
			if _, err := os.Stat(opts.MusicFile); err != nil {
				opts.Speaker.Say(ctx, "I couldn't find your music file.")
				return nil
			}
			opts.Speaker.Say(ctx, "Playing your music.")
			go func() {
				if err := opts.Player.PlayFile(context.Background(), opts.MusicFile); err != nil {
					slog.Warn("music playback failed", "file", opts.MusicFile, "error", err)
				}
			}()
			return nil
		},
	}
}
