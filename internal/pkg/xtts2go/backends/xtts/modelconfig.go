package xtts

import (
	"encoding/json"
	"fmt"
	"os"

	"xtts2go/internal/pkg/xtts2go/language"
)

const (
	defaultOutputSampleRate = 24000
	defaultInputSampleRate  = 22050
	defaultLatentDim        = 1024
	defaultSpeakerDim       = 512
	defaultMaxTextTokens    = 402
	defaultStartTextToken   = 261
)

// ModelConfig mirrors the fields of the checkpoint's config.json that the
// runtime needs. Unknown fields are ignored.
type ModelConfig struct {
	Model     string   `json:"model"`
	Languages []string `json:"languages"`
	Audio     struct {
		SampleRate       int `json:"sample_rate"`
		OutputSampleRate int `json:"output_sample_rate"`
	} `json:"audio"`
	ModelArgs struct {
		GPTMaxTextTokens    int `json:"gpt_max_text_tokens"`
		GPTNumberTextTokens int `json:"gpt_number_text_tokens"`
		GPTStartTextToken   int `json:"gpt_start_text_token"`
		GPTStopTextToken    int `json:"gpt_stop_text_token"`
		InputSampleRate     int `json:"input_sample_rate"`
		OutputSampleRate    int `json:"output_sample_rate"`
		OutputHopLength     int `json:"output_hop_length"`
		GPTCodeStrideLen    int `json:"gpt_code_stride_len"`
		DecoderInputDim     int `json:"decoder_input_dim"`
		DVectorDim          int `json:"d_vector_dim"`
	} `json:"model_args"`
	Temperature float32 `json:"temperature"`
	TopK        int     `json:"top_k"`
	TopP        float32 `json:"top_p"`
}

// LoadModelConfig reads a checkpoint config.json and fills in the XTTS v2
// defaults for any field the file leaves out.
func LoadModelConfig(path string) (*ModelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model config: %w", err)
	}

	var cfg ModelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse model config %s: %w", path, err)
	}

	if len(cfg.Languages) == 0 {
		cfg.Languages = language.Codes()
	}
	if cfg.ModelArgs.InputSampleRate == 0 {
		cfg.ModelArgs.InputSampleRate = defaultInputSampleRate
	}
	if cfg.ModelArgs.OutputSampleRate == 0 {
		cfg.ModelArgs.OutputSampleRate = defaultOutputSampleRate
	}
	if cfg.Audio.OutputSampleRate == 0 {
		cfg.Audio.OutputSampleRate = cfg.ModelArgs.OutputSampleRate
	}
	if cfg.ModelArgs.GPTMaxTextTokens == 0 {
		cfg.ModelArgs.GPTMaxTextTokens = defaultMaxTextTokens
	}
	if cfg.ModelArgs.GPTStartTextToken == 0 {
		cfg.ModelArgs.GPTStartTextToken = defaultStartTextToken
	}
	if cfg.ModelArgs.DecoderInputDim == 0 {
		cfg.ModelArgs.DecoderInputDim = defaultLatentDim
	}
	if cfg.ModelArgs.DVectorDim == 0 {
		cfg.ModelArgs.DVectorDim = defaultSpeakerDim
	}

	return &cfg, nil
}
