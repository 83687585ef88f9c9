// Package config handles loading and validating the nova configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultWhisperEndpoint is the hosted transcription API used when no
// self-hosted endpoint is configured.
const DefaultWhisperEndpoint = "https://api.openai.com/v1/audio/transcriptions"

// Config is the root configuration for the nova daemon.
type Config struct {
	Assistant  AssistantConfig   `mapstructure:"assistant"`
	Listen     ListenConfig      `mapstructure:"listen"`
	Transcribe TranscribeConfig  `mapstructure:"transcribe"`
	Answer     AnswerConfig      `mapstructure:"answer"`
	Weather    WeatherConfig     `mapstructure:"weather"`
	Translate  TranslateConfig   `mapstructure:"translate"`
	Sites      map[string]string `mapstructure:"sites"`
	Apps       map[string]string `mapstructure:"apps"`
	Music      MusicConfig       `mapstructure:"music"`
	TTS        TTSConfig         `mapstructure:"tts"`
	Server     ServerConfig      `mapstructure:"server"`
	Logging    LoggingConfig     `mapstructure:"logging"`
}

// AssistantConfig holds the assistant's identity and spoken prompts.
type AssistantConfig struct {
	// Name is the assistant's name; the default wake phrases
	// ("hey <name>", "okay <name>", "hi <name>") derive from it.
	Name string `mapstructure:"name"`

	// WakePhrases overrides the derived wake phrase set when non-empty.
	WakePhrases []string `mapstructure:"wake_phrases"`

	// Greeting is spoken once at startup.
	Greeting string `mapstructure:"greeting"`

	// Reprompt is spoken when the wake word arrives with no command attached.
	Reprompt string `mapstructure:"reprompt"`
}

// ListenConfig bounds microphone capture.
type ListenConfig struct {
	// Timeout is how long to wait for speech to start before giving up.
	Timeout time.Duration `mapstructure:"timeout"`

	// PhraseLimit caps the length of a single utterance once speech starts.
	PhraseLimit time.Duration `mapstructure:"phrase_limit"`

	// Device selects a capture source by id or description substring.
	// Empty means the system default source.
	Device string `mapstructure:"device"`
}

// TranscribeConfig configures the transcription backends.
type TranscribeConfig struct {
	// Timeout bounds each individual backend request.
	Timeout time.Duration `mapstructure:"timeout"`

	Vosk    VoskConfig    `mapstructure:"vosk"`
	Whisper WhisperConfig `mapstructure:"whisper"`
}

// VoskConfig holds the offline vosk-server settings.
type VoskConfig struct {
	// Endpoint is the vosk-server websocket address (host:port). Empty
	// disables the offline backend.
	Endpoint string `mapstructure:"endpoint"`

	// SampleRate of the audio sent to the recognizer.
	SampleRate int `mapstructure:"sample_rate"`
}

// Enabled reports whether the offline backend is configured.
func (c VoskConfig) Enabled() bool { return c.Endpoint != "" }

// WhisperConfig holds the online transcription API settings.
type WhisperConfig struct {
	// Endpoint is an OpenAI-compatible audio/transcriptions URL.
	Endpoint string `mapstructure:"endpoint"`

	// APIKey authenticates against the endpoint. Supports "${VAR}" references.
	APIKey string `mapstructure:"api_key"`

	// Model is the transcription model name.
	Model string `mapstructure:"model"`
}

// Enabled reports whether the online backend is configured: either a key for
// the hosted API or a self-hosted (keyless) endpoint.
func (c WhisperConfig) Enabled() bool {
	return c.APIKey != "" || (c.Endpoint != "" && c.Endpoint != DefaultWhisperEndpoint)
}

// AnswerConfig holds the generative-answer backend settings.
type AnswerConfig struct {
	// APIKey authenticates against the chat API. Empty disables generative
	// answers; the fallback chain then degrades straight to web search.
	APIKey string `mapstructure:"api_key"`

	// Model is the chat model name.
	Model string `mapstructure:"model"`

	// Timeout bounds each answer request.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether generative answers are configured.
func (c AnswerConfig) Enabled() bool { return c.APIKey != "" }

// WeatherConfig holds the current-weather service settings.
type WeatherConfig struct {
	// APIKey is the OpenWeatherMap key. Empty leaves the weather skill
	// registered but it speaks a configuration hint instead of a forecast.
	APIKey string `mapstructure:"api_key"`

	// City is the default city when the command names none.
	City string `mapstructure:"city"`

	// Endpoint is the current-weather API URL.
	Endpoint string `mapstructure:"endpoint"`
}

// TranslateConfig holds the translation service settings.
type TranslateConfig struct {
	// Endpoint is a LibreTranslate-compatible /translate URL. Empty makes
	// the translate skill apologize instead of calling out.
	Endpoint string `mapstructure:"endpoint"`
}

// MusicConfig points at the local music file the play-music skill uses.
type MusicConfig struct {
	File string `mapstructure:"file"`
}

// TTSConfig selects and configures the speech-synthesis backend.
type TTSConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	Backend string      `mapstructure:"backend"` // "piper"
	Piper   PiperConfig `mapstructure:"piper"`
}

// PiperConfig holds Piper TTS settings (Wyoming protocol).
type PiperConfig struct {
	// Endpoint is the Piper Wyoming TCP endpoint (host:port).
	Endpoint string `mapstructure:"endpoint"`

	// Voice is the Piper voice model name.
	Voice string `mapstructure:"voice"`
}

// ServerConfig holds the HTTP control surface settings.
type ServerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// defaultSites maps spoken site names to URLs for the open-site skill.
var defaultSites = map[string]string{
	"youtube":  "https://www.youtube.com",
	"google":   "https://www.google.com",
	"facebook": "https://www.facebook.com",
	"gmail":    "https://mail.google.com",
	"spotify":  "https://open.spotify.com",
	"twitter":  "https://x.com",
	"reddit":   "https://www.reddit.com",
	"github":   "https://github.com",
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./nova.yaml, ./configs/nova.yaml, /etc/nova/nova.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("assistant.name", "nova")
	v.SetDefault("assistant.greeting", "Hello! I'm Nova. Say 'Hey Nova' to wake me.")
	v.SetDefault("assistant.reprompt", "Yes?")
	v.SetDefault("listen.timeout", 3*time.Second)
	v.SetDefault("listen.phrase_limit", 6*time.Second)
	v.SetDefault("listen.device", "")
	v.SetDefault("transcribe.timeout", 10*time.Second)
	v.SetDefault("transcribe.vosk.endpoint", "")
	v.SetDefault("transcribe.vosk.sample_rate", 16000)
	v.SetDefault("transcribe.whisper.endpoint", DefaultWhisperEndpoint)
	v.SetDefault("transcribe.whisper.api_key", "${OPENAI_API_KEY}")
	v.SetDefault("transcribe.whisper.model", "whisper-1")
	v.SetDefault("answer.api_key", "${OPENAI_API_KEY}")
	v.SetDefault("answer.model", "gpt-5")
	v.SetDefault("answer.timeout", 15*time.Second)
	v.SetDefault("weather.api_key", "${OPENWEATHER_API_KEY}")
	v.SetDefault("weather.city", "Manila")
	v.SetDefault("weather.endpoint", "https://api.openweathermap.org/data/2.5/weather")
	v.SetDefault("translate.endpoint", "")
	v.SetDefault("sites", defaultSites)
	v.SetDefault("apps", map[string]string{})
	v.SetDefault("music.file", "")
	v.SetDefault("tts.enabled", true)
	v.SetDefault("tts.backend", "piper")
	v.SetDefault("tts.piper.endpoint", "localhost:10200")
	v.SetDefault("tts.piper.voice", "en_US-lessac-medium")
	v.SetDefault("server.enabled", true)
	v.SetDefault("server.port", 8080)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("nova")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/nova")
	}

	// Environment variables: NOVA_ASSISTANT_NAME, NOVA_SERVER_PORT, etc.
	v.SetEnvPrefix("NOVA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional — env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Resolve env var references in sensitive fields (e.g., "${OPENAI_API_KEY}").
	// A reference to an unset variable resolves to empty, which reads as
	// "backend not configured" rather than a startup failure.
	cfg.Transcribe.Whisper.APIKey = resolveEnvRef(cfg.Transcribe.Whisper.APIKey)
	cfg.Answer.APIKey = resolveEnvRef(cfg.Answer.APIKey)
	cfg.Weather.APIKey = resolveEnvRef(cfg.Weather.APIKey)

	return &cfg, nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		return os.Getenv(val[2 : len(val)-1])
	}
	return val
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
