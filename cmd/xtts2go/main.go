package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"xtts2go/internal/pkg/xtts2go/adapter"
	"xtts2go/internal/pkg/xtts2go/config"

	_ "xtts2go/internal/pkg/xtts2go/backends/xtts"
)

func main() {
	fmt.Fprintf(os.Stderr, "xtts2go %s\n", Version)

	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse configuration")
	}

	if err := setupLogging(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup logging")
	}

	log.Debug().
		Str("speaker_wav", cfg.SpeakerWAV).
		Str("language", cfg.Language).
		Float32("speed", cfg.Speed).
		Str("output", cfg.Output).
		Bool("gpu", !cfg.NoGPU).
		Msg("Configuration loaded")

	log.Info().Msg("Loading TTS engine...")
	a, err := adapter.New(cfg)
	if err != nil {
		reportFatal(cfg.JSON, err)
	}
	defer a.Close()

	info := a.Info()
	log.Debug().
		Str("engine", info.Name).
		Strs("languages", info.Languages).
		Int("sample_rate", info.SampleRate).
		Msg("Engine loaded")

	log.Info().Str("text", truncateText(cfg.Text, 50)).Msg("Generating speech...")
	startTime := time.Now()

	res := a.Generate(adapter.Request{
		Text:       cfg.Text,
		SpeakerWAV: cfg.SpeakerWAV,
		Language:   cfg.Language,
		Speed:      cfg.Speed,
		OutputPath: cfg.Output,
	})

	if res.Success {
		log.Info().
			Dur("elapsed", time.Since(startTime)).
			Str("size", humanize.Bytes(uint64(res.FileSize))).
			Msg("Audio generated")
	}

	if cfg.JSON {
		line, merr := json.Marshal(res)
		if merr != nil {
			reportFatal(true, merr)
		}
		fmt.Println(string(line))
	} else if res.Success {
		fmt.Println(res.Line())
	} else {
		fmt.Fprintln(os.Stderr, res.Line())
	}

	if !res.Success {
		a.Close()
		os.Exit(1)
	}
}

func reportFatal(jsonMode bool, err error) {
	log.Error().Err(err).Msg("Fatal error")
	if jsonMode {
		if line, merr := json.Marshal(adapter.Fatal(err)); merr == nil {
			fmt.Println(string(line))
		}
	} else {
		fmt.Fprintf(os.Stderr, "❌ Fatal error: %s\n", err)
	}
	os.Exit(1)
}

func setupLogging(cfg *config.Config) error {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(zerolog.MultiLevelWriter(console, f)).With().Timestamp().Logger()
	}

	return nil
}

func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen] + "..."
}
