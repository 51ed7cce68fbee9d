package xtts

import (
	"fmt"
	"os"
	"path/filepath"

	"xtts2go/internal/pkg/xtts2go/audio"
	"xtts2go/internal/pkg/xtts2go/engine"
)

const backendName = "xtts"

// sentenceGapMS of silence is stitched between sentences, matching the
// interval the original synthesizer inserts.
const sentenceGapMS = 250

func init() {
	engine.Register(backendName, NewEngine)
}

type Engine struct {
	pipeline  *Pipeline
	tokenizer *Tokenizer
	modelCfg  *ModelConfig
	modelDir  string
}

// NewEngine loads the model named by cfg. With an explicit checkpoint the
// ONNX export set is expected alongside it in the same directory;
// otherwise the pretrained model is ensured in the cache first.
func NewEngine(cfg engine.EngineConfig) (engine.Engine, error) {
	var modelDir, configPath string

	if cfg.CheckpointPath != "" || cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.CheckpointPath); err != nil {
			return nil, fmt.Errorf("model checkpoint not found: %s", cfg.CheckpointPath)
		}
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return nil, fmt.Errorf("model config not found: %s", cfg.ConfigPath)
		}
		modelDir = filepath.Dir(cfg.CheckpointPath)
		configPath = cfg.ConfigPath
	} else {
		name := cfg.PretrainedName
		if name == "" {
			name = DefaultModelName
		}
		home, err := EnsureModel(name, cfg.CacheDir)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch pretrained model %q: %w", name, err)
		}
		modelDir = home
		configPath = filepath.Join(home, "config.json")
	}

	modelCfg, err := LoadModelConfig(configPath)
	if err != nil {
		return nil, err
	}

	tokenizer, err := NewTokenizer(
		filepath.Join(modelDir, "vocab.json"),
		int64(modelCfg.ModelArgs.GPTStartTextToken),
		int64(modelCfg.ModelArgs.GPTStopTextToken),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokenizer: %w", err)
	}

	pipeline, err := NewPipeline(
		modelDir,
		cfg.UseGPU,
		modelCfg.ModelArgs.DecoderInputDim,
		modelCfg.ModelArgs.DVectorDim,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}

	return &Engine{
		pipeline:  pipeline,
		tokenizer: tokenizer,
		modelCfg:  modelCfg,
		modelDir:  modelDir,
	}, nil
}

// Generate synthesizes text in the voice of ref. The input is split into
// sentences, each synthesized against the same reference conditioning and
// stitched with a short silence gap.
func (e *Engine) Generate(text, language string, ref *audio.Audio, speed float32) (*audio.Audio, error) {
	if ref == nil || len(ref.Samples) == 0 {
		return nil, fmt.Errorf("reference audio is empty")
	}

	refSamples := resampleLinear(ref.Samples, ref.SampleRate, e.modelCfg.ModelArgs.InputSampleRate)
	condLatent, speakerEmbed, err := e.pipeline.EncodeReference(refSamples)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reference audio: %w", err)
	}

	outputRate := e.modelCfg.Audio.OutputSampleRate
	sentences := splitSentences(normalizeText(text, language))
	gap := make([]float32, outputRate*sentenceGapMS/1000)
	maxTokens := e.modelCfg.ModelArgs.GPTMaxTextTokens

	var samples []float32
	for i, sentence := range sentences {
		ids := e.tokenizer.Encode(sentence, language)
		if maxTokens > 0 && len(ids) > maxTokens {
			stop := ids[len(ids)-1]
			ids = append(ids[:maxTokens-1], stop)
		}

		latents, err := e.pipeline.RunGPT(ids, condLatent)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", i+1, err)
		}

		wav, err := e.pipeline.RunDecoder(latents, speakerEmbed, speed)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", i+1, err)
		}

		if i > 0 {
			samples = append(samples, gap...)
		}
		samples = append(samples, wav...)
	}

	return audio.NewAudioWithSampleRate(samples, outputRate), nil
}

func (e *Engine) Info() engine.EngineInfo {
	return engine.EngineInfo{
		Name:       backendName,
		Languages:  e.modelCfg.Languages,
		SampleRate: e.modelCfg.Audio.OutputSampleRate,
	}
}

func (e *Engine) Close() error {
	return e.pipeline.Close()
}

// resampleLinear converts samples from srcRate to dstRate by linear
// interpolation.
func resampleLinear(samples []float32, srcRate, dstRate int) []float32 {
	if srcRate == dstRate || srcRate <= 0 || dstRate <= 0 || len(samples) == 0 {
		return samples
	}

	outLen := int(float64(len(samples)) * float64(dstRate) / float64(srcRate))
	if outLen < 1 {
		outLen = 1
	}

	out := make([]float32, outLen)
	ratio := float64(srcRate) / float64(dstRate)
	for i := range out {
		pos := float64(i) * ratio
		j := int(pos)
		if j >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := float32(pos - float64(j))
		out[i] = samples[j]*(1-frac) + samples[j+1]*frac
	}
	return out
}
