package config

import (
	"strings"
	"testing"
)

func requiredArgs() []string {
	return []string{"--text", "hello", "--speaker_wav", "ref.wav", "--output", "out.wav"}
}

func TestLoadFullFlagSet(t *testing.T) {
	cfg, err := Load([]string{
		"--text", "Hello world",
		"--speaker_wav", "/voices/ref.wav",
		"--language", "zh-cn",
		"--speed", "1.3",
		"--output", "/tmp/out.wav",
		"--checkpoint", "/models/model.pth",
		"--config", "/models/config.json",
		"--no-gpu",
		"--json",
		"--log-level", "debug",
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Text != "Hello world" {
		t.Errorf("Text = %q", cfg.Text)
	}
	if cfg.SpeakerWAV != "/voices/ref.wav" {
		t.Errorf("SpeakerWAV = %q", cfg.SpeakerWAV)
	}
	if cfg.Language != "zh-cn" {
		t.Errorf("Language = %q", cfg.Language)
	}
	if cfg.Speed != 1.3 {
		t.Errorf("Speed = %v", cfg.Speed)
	}
	if cfg.Output != "/tmp/out.wav" {
		t.Errorf("Output = %q", cfg.Output)
	}
	if cfg.Checkpoint != "/models/model.pth" {
		t.Errorf("Checkpoint = %q", cfg.Checkpoint)
	}
	if cfg.ModelConfig != "/models/config.json" {
		t.Errorf("ModelConfig = %q", cfg.ModelConfig)
	}
	if !cfg.NoGPU {
		t.Error("Expected NoGPU to be set")
	}
	if !cfg.JSON {
		t.Error("Expected JSON to be set")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(requiredArgs())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Language != "en" {
		t.Errorf("Expected default language en, got %q", cfg.Language)
	}
	if cfg.Speed != 1.0 {
		t.Errorf("Expected default speed 1.0, got %v", cfg.Speed)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level info, got %q", cfg.LogLevel)
	}
	if cfg.NoGPU {
		t.Error("Expected GPU on by default")
	}
	if cfg.JSON {
		t.Error("Expected text output by default")
	}
}

func TestLoadRequiredFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing text", []string{"--speaker_wav", "r.wav", "--output", "o.wav"}, "--text is required"},
		{"missing speaker_wav", []string{"--text", "hi", "--output", "o.wav"}, "--speaker_wav is required"},
		{"missing output", []string{"--text", "hi", "--speaker_wav", "r.wav"}, "--output is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected %q in error, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadDoesNotValidateSpeedOrText(t *testing.T) {
	tests := []struct {
		name  string
		speed string
		want  float32
	}{
		{"below usual range", "0.1", 0.1},
		{"above usual range", "5.0", 5.0},
		{"zero", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load([]string{"--text", "", "--speaker_wav", "r.wav", "--output", "o.wav", "--speed", tt.speed})
			if err != nil {
				t.Fatalf("Load rejected speed %s: %v", tt.speed, err)
			}
			if cfg.Speed != tt.want {
				t.Errorf("Speed = %v, want %v", cfg.Speed, tt.want)
			}
			if cfg.Text != "" {
				t.Errorf("Expected empty text to pass through, got %q", cfg.Text)
			}
		})
	}
}

func TestLoadEnvFallback(t *testing.T) {
	t.Setenv("XTTS_MODEL_DIR", "/env/models")
	t.Setenv("XTTS_CHECKPOINT_PATH", "/env/model.pth")
	t.Setenv("XTTS_CONFIG_PATH", "/env/config.json")

	cfg, err := Load(requiredArgs())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ModelDir != "/env/models" {
		t.Errorf("ModelDir = %q, want /env/models", cfg.ModelDir)
	}
	if cfg.Checkpoint != "/env/model.pth" {
		t.Errorf("Checkpoint = %q, want /env/model.pth", cfg.Checkpoint)
	}
	if cfg.ModelConfig != "/env/config.json" {
		t.Errorf("ModelConfig = %q, want /env/config.json", cfg.ModelConfig)
	}
}

func TestLoadFlagBeatsEnv(t *testing.T) {
	t.Setenv("XTTS_MODEL_DIR", "/env/models")

	cfg, err := Load(append(requiredArgs(), "--model_dir", "/flag/models"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ModelDir != "/flag/models" {
		t.Errorf("ModelDir = %q, want flag value to win", cfg.ModelDir)
	}
}

func TestLoadUnknownFlag(t *testing.T) {
	if _, err := Load(append(requiredArgs(), "--bogus")); err == nil {
		t.Error("Expected error for unknown flag, got nil")
	}
}
