package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nadzzz/nova/internal/skill"
)

// weatherSkill reads the current weather from OpenWeatherMap. City comes
// from "weather in <city>" when present, otherwise the configured default.
func weatherSkill(opts Options) skill.Skill {
	return skill.Skill{
		Name:  "weather",
		Match: skill.MatchContains("weather"),
		Run: func(ctx context.Context, cmd string) error {
			if opts.Weather.APIKey == "" {
				opts.Speaker.Say(ctx, "Weather service not configured. Please set your OPENWEATHER_API_KEY.")
				return nil
			}

			city := opts.Weather.City
			if _, after, found := strings.Cut(cmd, "weather in"); found {
				if spoken := strings.TrimSpace(after); spoken != "" {
					city = title(spoken)
				}
			}

			q := url.Values{}
			q.Set("q", city)
			q.Set("appid", opts.Weather.APIKey)
			q.Set("units", "metric")

			req, err := http.NewRequestWithContext(ctx, http.MethodGet,
				opts.Weather.Endpoint+"?"+q.Encode(), nil)
			if err != nil {
				return err
			}
			resp, err := opts.HTTP.Do(req)
			if err != nil {
				slog.Warn("weather request failed", "city", city, "error", err)
				opts.Speaker.Say(ctx, "Something went wrong with the weather service.")
				return nil
			}
			defer resp.Body.Close()

			switch resp.StatusCode {
			case http.StatusOK:
				var body struct {
					Main struct {
						Temp float64 `json:"temp"`
					} `json:"main"`
					Weather []struct {
						Description string `json:"description"`
					} `json:"weather"`
				}
				if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || len(body.Weather) == 0 {
					slog.Warn("weather response malformed", "city", city, "error", err)
					opts.Speaker.Say(ctx, "I couldn't fetch the weather right now.")
					return nil
				}
				temp := strconv.FormatFloat(body.Main.Temp, 'f', -1, 64)
				opts.Speaker.Say(ctx, fmt.Sprintf("The weather in %s is %s with %s°C.",
					city, body.Weather[0].Description, temp))
			case http.StatusNotFound:
				opts.Speaker.Say(ctx, "Sorry, I couldn't find weather information for "+city+".")
			default:
				opts.Speaker.Say(ctx, "I couldn't fetch the weather right now.")
			}
			return nil
		},
	}
}
