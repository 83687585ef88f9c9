// Nova is a voice-driven command assistant daemon. It listens for its wake
// phrase on the microphone, transcribes what follows, routes the command
// through a fixed skill set, and falls back to a generative answer or a web
// search when no skill claims it.
//
// Usage:
//
//	nova [flags]
//	nova --config /path/to/nova.yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	_ "github.com/nadzzz/nova/docs"
	"github.com/nadzzz/nova/internal/action"
	"github.com/nadzzz/nova/internal/assistant"
	"github.com/nadzzz/nova/internal/audio"
	"github.com/nadzzz/nova/internal/config"
	"github.com/nadzzz/nova/internal/fallback"
	openaianswer "github.com/nadzzz/nova/internal/fallback/openai"
	"github.com/nadzzz/nova/internal/server"
	"github.com/nadzzz/nova/internal/skill"
	"github.com/nadzzz/nova/internal/skill/builtin"
	"github.com/nadzzz/nova/internal/transcribe"
	"github.com/nadzzz/nova/internal/transcribe/vosk"
	"github.com/nadzzz/nova/internal/transcribe/whisper"
	"github.com/nadzzz/nova/internal/tts"
	"github.com/nadzzz/nova/internal/tts/piper"
	"github.com/nadzzz/nova/internal/wake"
)

// version is set at build time via ldflags.
var version = "dev"

// idleListener replaces the microphone when no transcription backend is
// configured; the daemon then serves text dispatch only.
type idleListener struct{}

func (idleListener) Listen(ctx context.Context) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// @title       Nova Control API
// @version     1.0
// @description Text dispatch and introspection for the nova voice assistant daemon.
// @BasePath    /
func main() {
	showVersion := pflag.Bool("version", false, "print version and exit")
	configFile := pflag.String("config", "", "path to config file (e.g. configs/nova.yaml)")
	pflag.Parse()

	if *showVersion {
		fmt.Printf("nova %s\n", version)
		os.Exit(0)
	}

	// Pull in a local .env before config reads the environment.
	_ = godotenv.Load()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	config.SetupLogging(cfg.Logging)
	slog.Info("nova starting", "version", version)

	// Root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Wake gate: explicit phrases when configured, otherwise derived from
	// the assistant name.
	phrases := cfg.Assistant.WakePhrases
	if len(phrases) == 0 {
		phrases = wake.Phrases(cfg.Assistant.Name)
	}
	gate := wake.New(phrases)
	slog.Info("wake gate ready", "phrases", phrases)

	// Transcription pipeline: offline first, online fallback.
	var offline, online transcribe.Backend
	if cfg.Transcribe.Vosk.Enabled() {
		offline = vosk.New(cfg.Transcribe.Vosk)
		slog.Info("offline transcription enabled", "endpoint", cfg.Transcribe.Vosk.Endpoint)
	}
	if cfg.Transcribe.Whisper.Enabled() {
		online = whisper.New(cfg.Transcribe.Whisper)
		slog.Info("online transcription enabled", "endpoint", cfg.Transcribe.Whisper.Endpoint)
	}
	pipeline := transcribe.New(offline, online, cfg.Transcribe.Timeout)
	defer pipeline.Close()

	// Speech output.
	var synth tts.Synthesizer
	if cfg.TTS.Enabled {
		switch cfg.TTS.Backend {
		case "piper":
			synth = piper.New(cfg.TTS.Piper)
			slog.Info("using piper TTS", "endpoint", cfg.TTS.Piper.Endpoint, "voice", cfg.TTS.Piper.Voice)
		default:
			slog.Error("unknown tts backend", "backend", cfg.TTS.Backend)
			os.Exit(1)
		}
	}
	player := audio.SpeakerPlayer{}
	speaker := tts.NewSpeaker(synth, player, cfg.Assistant.Name)
	defer speaker.Close()

	// Skills and fallback chain.
	browser := action.SystemBrowser{}
	router := skill.NewRouter(builtin.Skills(builtin.Options{
		Name:      cfg.Assistant.Name,
		Speaker:   speaker,
		Browser:   browser,
		Launcher:  action.ExecLauncher{},
		Player:    player,
		Sites:     cfg.Sites,
		Apps:      cfg.Apps,
		MusicFile: cfg.Music.File,
		Weather:   cfg.Weather,
		Translate: cfg.Translate,
	})...)

	var answerer fallback.Answerer
	if cfg.Answer.Enabled() {
		answerer = openaianswer.New(cfg.Answer, cfg.Assistant.Name)
		slog.Info("generative answers enabled", "model", cfg.Answer.Model)
	} else {
		slog.Info("generative answers disabled, unclaimed commands go to web search")
	}
	chain := fallback.New(answerer, cfg.Answer.Timeout)

	// Microphone, unless no transcription backend can hear it.
	var listener audio.Listener = idleListener{}
	if offline != nil || online != nil {
		listener = audio.NewMicrophone(cfg.Listen.Device, cfg.Listen.Timeout, cfg.Listen.PhraseLimit)
	} else {
		slog.Warn("no transcription backends configured, microphone disabled")
	}

	asst := assistant.New(assistant.Options{
		Listener: listener,
		Scribe:   pipeline,
		Gate:     gate,
		Router:   router,
		Chain:    chain,
		Speaker:  speaker,
		Browser:  browser,
		Greeting: cfg.Assistant.Greeting,
		Reprompt: cfg.Assistant.Reprompt,
	})

	// HTTP control surface.
	if cfg.Server.Enabled {
		srv := server.New(cfg.Server.Port, asst)
		go func() {
			if err := srv.ListenAndServe(ctx); err != nil {
				slog.Error("control server failed", "error", err)
			}
		}()
		srv.SetReady(true)
	}

	slog.Info("nova ready", "skills", router.Names())

	if err := asst.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("assistant loop failed", "error", err)
		os.Exit(1)
	}
	cancel()
	slog.Info("nova stopped")
}
