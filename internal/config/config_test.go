package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func loadInTempDir(t *testing.T, configFile string) *Config {
	t.Helper()
	// Run from an empty directory so a developer's local nova.yaml cannot
	// leak into the test.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load(configFile)
	require.NoError(t, err)
	return cfg
}

func TestDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENWEATHER_API_KEY", "")
	cfg := loadInTempDir(t, "")

	require.Equal(t, "nova", cfg.Assistant.Name)
	require.Empty(t, cfg.Assistant.WakePhrases)
	require.Equal(t, "Yes?", cfg.Assistant.Reprompt)
	require.Equal(t, 3*time.Second, cfg.Listen.Timeout)
	require.Equal(t, 6*time.Second, cfg.Listen.PhraseLimit)
	require.Equal(t, 10*time.Second, cfg.Transcribe.Timeout)
	require.False(t, cfg.Transcribe.Vosk.Enabled())
	require.Equal(t, 16000, cfg.Transcribe.Vosk.SampleRate)
	require.Equal(t, DefaultWhisperEndpoint, cfg.Transcribe.Whisper.Endpoint)
	require.Equal(t, "whisper-1", cfg.Transcribe.Whisper.Model)
	require.Equal(t, "Manila", cfg.Weather.City)
	require.Equal(t, "https://www.youtube.com", cfg.Sites["youtube"])
	require.Equal(t, "https://x.com", cfg.Sites["twitter"])
	require.True(t, cfg.TTS.Enabled)
	require.Equal(t, "piper", cfg.TTS.Backend)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "info", cfg.Logging.Level)

	// No keys in the environment: the optional backends read as disabled.
	require.False(t, cfg.Transcribe.Whisper.Enabled())
	require.False(t, cfg.Answer.Enabled())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NOVA_ASSISTANT_NAME", "jarvis")
	t.Setenv("NOVA_SERVER_PORT", "9090")
	t.Setenv("NOVA_TRANSCRIBE_VOSK_ENDPOINT", "localhost:2700")
	cfg := loadInTempDir(t, "")

	require.Equal(t, "jarvis", cfg.Assistant.Name)
	require.Equal(t, 9090, cfg.Server.Port)
	require.True(t, cfg.Transcribe.Vosk.Enabled())
	require.Equal(t, "localhost:2700", cfg.Transcribe.Vosk.Endpoint)
}

func TestAPIKeyEnvRefResolution(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENWEATHER_API_KEY", "ow-test")
	cfg := loadInTempDir(t, "")

	require.Equal(t, "sk-test", cfg.Answer.APIKey)
	require.Equal(t, "sk-test", cfg.Transcribe.Whisper.APIKey)
	require.Equal(t, "ow-test", cfg.Weather.APIKey)
	require.True(t, cfg.Answer.Enabled())
	require.True(t, cfg.Transcribe.Whisper.Enabled())
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nova.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
assistant:
  name: computer
  wake_phrases: ["computer!"]
sites:
  youtube: https://www.youtube.com
  wiki: https://en.wikipedia.org
server:
  enabled: false
`), 0o644))

	cfg := loadInTempDir(t, path)
	require.Equal(t, "computer", cfg.Assistant.Name)
	require.Equal(t, []string{"computer!"}, cfg.Assistant.WakePhrases)
	require.Equal(t, "https://en.wikipedia.org", cfg.Sites["wiki"])
	require.False(t, cfg.Server.Enabled)
}

func TestWhisperEnabledByCustomEndpoint(t *testing.T) {
	c := WhisperConfig{Endpoint: "http://localhost:8000/v1/audio/transcriptions"}
	require.True(t, c.Enabled())

	c = WhisperConfig{Endpoint: DefaultWhisperEndpoint}
	require.False(t, c.Enabled())
}
