package builtin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nadzzz/nova/internal/skill"
)

// translateSkill translates between English and Tagalog through a
// LibreTranslate-compatible endpoint.
func translateSkill(opts Options) skill.Skill {
	return skill.Skill{
		Name:  "translate",
		Match: skill.MatchContains("translate"),
		Run: func(ctx context.Context, cmd string) error {
			parts := strings.TrimSpace(strings.SplitN(cmd, "translate", 2)[1])
			if parts == "" {
				opts.Speaker.Say(ctx, "Please tell me what to translate.")
				return nil
			}

			var target, label string
			switch {
			case strings.Contains(parts, "to tagalog"):
				target, label = "tl", "Tagalog"
				parts = strings.TrimSpace(strings.ReplaceAll(parts, "to tagalog", ""))
			case strings.Contains(parts, "to english"):
				target, label = "en", "English"
				parts = strings.TrimSpace(strings.ReplaceAll(parts, "to english", ""))
			default:
				opts.Speaker.Say(ctx, "Please specify 'to Tagalog' or 'to English'.")
				return nil
			}
			if parts == "" {
				opts.Speaker.Say(ctx, "Please give me some text to translate to "+label+".")
				return nil
			}

			out, err := libreTranslate(ctx, opts.HTTP, opts.Translate.Endpoint, parts, target)
			if err != nil {
				slog.Warn("translation failed", "target", target, "error", err)
				opts.Speaker.Say(ctx, "Sorry, I couldn't translate that.")
				return nil
			}
			opts.Speaker.Say(ctx, "In "+label+": "+out)
			return nil
		},
	}
}

// libreTranslate performs one /translate request.
func libreTranslate(ctx context.Context, client *http.Client, endpoint, text, target string) (string, error) {
	if endpoint == "" {
		return "", errors.New("translate endpoint not configured")
	}

	body, err := json.Marshal(map[string]string{
		"q":      text,
		"source": "auto",
		"target": target,
		"format": "text",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate request: status %d", resp.StatusCode)
	}

	var out struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	if out.TranslatedText == "" {
		return "", errors.New("empty translation")
	}
	return out.TranslatedText, nil
}
