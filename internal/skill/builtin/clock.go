package builtin

import (
	"context"

	"github.com/nadzzz/nova/internal/skill"
)

func timeSkill(opts Options) skill.Skill {
	return skill.Skill{
		Name:  "time",
		Match: skill.MatchContains("time"),
		Run: func(ctx context.Context, _ string) error {
			// "3:04 PM" has no leading zero on the hour.
			opts.Speaker.Say(ctx, "The time is "+opts.Now().Format("3:04 PM")+".")
			return nil
		},
	}
}

func dateSkill(opts Options) skill.Skill {
	return skill.Skill{
		Name:  "date",
		Match: skill.MatchContains("date", "day"),
		Run: func(ctx context.Context, _ string) error {
			opts.Speaker.Say(ctx, "Today is "+opts.Now().Format("Monday, January 2, 2006")+".")
			return nil
		},
	}
}
