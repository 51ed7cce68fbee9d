package xtts

import (
	"os"
	"path/filepath"
	"testing"
)

func writeModelConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestLoadModelConfig(t *testing.T) {
	cfg, err := LoadModelConfig(writeModelConfig(t, `{
		"model": "xtts",
		"languages": ["en", "es"],
		"audio": {"sample_rate": 22050, "output_sample_rate": 24000},
		"model_args": {
			"gpt_max_text_tokens": 402,
			"gpt_start_text_token": 261,
			"gpt_stop_text_token": 0,
			"input_sample_rate": 22050,
			"output_sample_rate": 24000,
			"decoder_input_dim": 1024,
			"d_vector_dim": 512
		},
		"temperature": 0.85,
		"top_k": 50,
		"top_p": 0.85
	}`))
	if err != nil {
		t.Fatalf("LoadModelConfig failed: %v", err)
	}

	if cfg.Model != "xtts" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if len(cfg.Languages) != 2 {
		t.Errorf("Languages = %v", cfg.Languages)
	}
	if cfg.Audio.OutputSampleRate != 24000 {
		t.Errorf("OutputSampleRate = %d", cfg.Audio.OutputSampleRate)
	}
	if cfg.ModelArgs.GPTStartTextToken != 261 {
		t.Errorf("GPTStartTextToken = %d", cfg.ModelArgs.GPTStartTextToken)
	}
	if cfg.Temperature != 0.85 {
		t.Errorf("Temperature = %v", cfg.Temperature)
	}
}

func TestLoadModelConfigDefaults(t *testing.T) {
	cfg, err := LoadModelConfig(writeModelConfig(t, `{}`))
	if err != nil {
		t.Fatalf("LoadModelConfig failed: %v", err)
	}

	if len(cfg.Languages) != 17 {
		t.Errorf("Expected 17 default languages, got %d", len(cfg.Languages))
	}
	if cfg.ModelArgs.InputSampleRate != 22050 {
		t.Errorf("InputSampleRate = %d, want 22050", cfg.ModelArgs.InputSampleRate)
	}
	if cfg.Audio.OutputSampleRate != 24000 {
		t.Errorf("OutputSampleRate = %d, want 24000", cfg.Audio.OutputSampleRate)
	}
	if cfg.ModelArgs.GPTMaxTextTokens != 402 {
		t.Errorf("GPTMaxTextTokens = %d, want 402", cfg.ModelArgs.GPTMaxTextTokens)
	}
	if cfg.ModelArgs.GPTStartTextToken != 261 {
		t.Errorf("GPTStartTextToken = %d, want 261", cfg.ModelArgs.GPTStartTextToken)
	}
	if cfg.ModelArgs.GPTStopTextToken != 0 {
		t.Errorf("GPTStopTextToken = %d, want 0", cfg.ModelArgs.GPTStopTextToken)
	}
	if cfg.ModelArgs.DecoderInputDim != 1024 {
		t.Errorf("DecoderInputDim = %d, want 1024", cfg.ModelArgs.DecoderInputDim)
	}
	if cfg.ModelArgs.DVectorDim != 512 {
		t.Errorf("DVectorDim = %d, want 512", cfg.ModelArgs.DVectorDim)
	}
}

func TestLoadModelConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadModelConfig(filepath.Join(t.TempDir(), "config.json")); err == nil {
			t.Error("Expected error for missing config, got nil")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		if _, err := LoadModelConfig(writeModelConfig(t, "{broken")); err == nil {
			t.Error("Expected error for invalid config, got nil")
		}
	})
}
