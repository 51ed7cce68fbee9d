package xtts

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"
	ort "github.com/yalue/onnxruntime_go"
)

const (
	speakerEncoderFile = "speaker_encoder.onnx"
	gptFile            = "gpt.onnx"
	decoderFile        = "decoder.onnx"
)

// Pipeline holds the ONNX sessions of the exported model: the reference
// encoder producing the conditioning latent and speaker embedding, the GPT
// turning token ids into acoustic latents, and the vocoder decoder.
type Pipeline struct {
	modelDir       string
	speakerEncoder *ort.DynamicAdvancedSession
	gpt            *ort.DynamicAdvancedSession
	decoder        *ort.DynamicAdvancedSession
	latentDim      int
	speakerDim     int
	initialized    bool
}

func getOnnxRuntimeLibPath() string {
	envPath := os.Getenv("ONNXRUNTIME_LIB_PATH")
	if envPath != "" {
		return envPath
	}

	switch runtime.GOOS {
	case "linux":
		paths := []string{
			"/usr/lib/libonnxruntime.so",
			"/usr/local/lib/libonnxruntime.so",
			"./libonnxruntime.so",
			"./lib/libonnxruntime.so",
		}
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
		return "libonnxruntime.so"
	case "windows":
		paths := []string{
			"onnxruntime.dll",
			"./onnxruntime.dll",
			"./lib/onnxruntime.dll",
		}
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
		return "onnxruntime.dll"
	case "darwin":
		paths := []string{
			"/usr/local/lib/libonnxruntime.dylib",
			"/opt/homebrew/lib/libonnxruntime.dylib",
			"./libonnxruntime.dylib",
		}
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
		return "libonnxruntime.dylib"
	default:
		return "libonnxruntime.so"
	}
}

// newSessionOptions enables the CUDA execution provider when requested,
// falling back to CPU with a warning when the provider cannot be loaded.
func newSessionOptions(useGPU bool) (*ort.SessionOptions, error) {
	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}

	if useGPU {
		cudaOpts, err := ort.NewCUDAProviderOptions()
		if err != nil {
			log.Warn().Err(err).Msg("CUDA provider unavailable, running on CPU")
			return opts, nil
		}
		err = opts.AppendExecutionProviderCUDA(cudaOpts)
		cudaOpts.Destroy()
		if err != nil {
			log.Warn().Err(err).Msg("CUDA provider rejected, running on CPU")
			return opts, nil
		}
		log.Info().Msg("CUDA execution provider enabled")
	}

	return opts, nil
}

func NewPipeline(modelDir string, useGPU bool, latentDim, speakerDim int) (*Pipeline, error) {
	libPath := getOnnxRuntimeLibPath()
	ort.SetSharedLibraryPath(libPath)

	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX runtime: %w", err)
	}

	p := &Pipeline{
		modelDir:    modelDir,
		latentDim:   latentDim,
		speakerDim:  speakerDim,
		initialized: true,
	}

	opts, err := newSessionOptions(useGPU)
	if err != nil {
		p.Close()
		return nil, err
	}
	defer opts.Destroy()

	p.speakerEncoder, err = ort.NewDynamicAdvancedSession(
		filepath.Join(modelDir, speakerEncoderFile),
		[]string{"audio"},
		[]string{"gpt_cond_latent", "speaker_embedding"},
		opts,
	)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to load %s: %w", speakerEncoderFile, err)
	}

	p.gpt, err = ort.NewDynamicAdvancedSession(
		filepath.Join(modelDir, gptFile),
		[]string{"input_ids", "gpt_cond_latent"},
		[]string{"latents"},
		opts,
	)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to load %s: %w", gptFile, err)
	}

	p.decoder, err = ort.NewDynamicAdvancedSession(
		filepath.Join(modelDir, decoderFile),
		[]string{"latents", "speaker_embedding", "speed"},
		[]string{"waveform"},
		opts,
	)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to load %s: %w", decoderFile, err)
	}

	log.Debug().Str("model_dir", modelDir).Msg("ONNX sessions loaded")
	return p, nil
}

// EncodeReference runs the speaker encoder over the reference samples and
// returns the GPT conditioning latent and the speaker embedding.
func (p *Pipeline) EncodeReference(samples []float32) ([]float32, []float32, error) {
	audioTensor, err := ort.NewTensor(ort.NewShape(1, int64(len(samples))), samples)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create audio tensor: %w", err)
	}
	defer audioTensor.Destroy()

	inputs := []ort.Value{audioTensor}
	outputs := make([]ort.Value, 2)

	if err := p.speakerEncoder.Run(inputs, outputs); err != nil {
		return nil, nil, fmt.Errorf("failed to run speaker encoder: %w", err)
	}

	condLatent, err := copyFloatOutput(outputs[0], "gpt_cond_latent")
	if err != nil {
		destroyAll(outputs)
		return nil, nil, err
	}
	speakerEmbed, err := copyFloatOutput(outputs[1], "speaker_embedding")
	if err != nil {
		destroyAll(outputs)
		return nil, nil, err
	}
	destroyAll(outputs)

	return condLatent, speakerEmbed, nil
}

// RunGPT maps token ids and the conditioning latent to acoustic latents.
func (p *Pipeline) RunGPT(tokenIDs []int64, condLatent []float32) ([]float32, error) {
	idsTensor, err := ort.NewTensor(ort.NewShape(1, int64(len(tokenIDs))), tokenIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to create input_ids tensor: %w", err)
	}

	condLen := int64(len(condLatent) / p.latentDim)
	condTensor, err := ort.NewTensor(ort.NewShape(1, condLen, int64(p.latentDim)), condLatent)
	if err != nil {
		idsTensor.Destroy()
		return nil, fmt.Errorf("failed to create gpt_cond_latent tensor: %w", err)
	}

	inputs := []ort.Value{idsTensor, condTensor}
	outputs := make([]ort.Value, 1)

	if err := p.gpt.Run(inputs, outputs); err != nil {
		destroyAll(inputs)
		return nil, fmt.Errorf("failed to run gpt: %w", err)
	}
	destroyAll(inputs)

	latents, err := copyFloatOutput(outputs[0], "latents")
	if err != nil {
		destroyAll(outputs)
		return nil, err
	}
	destroyAll(outputs)

	return latents, nil
}

// RunDecoder vocodes acoustic latents into waveform samples. Speed is the
// playback factor the graph applies to frame lengths, passed through as
// given.
func (p *Pipeline) RunDecoder(latents, speakerEmbed []float32, speed float32) ([]float32, error) {
	latentLen := int64(len(latents) / p.latentDim)
	latentTensor, err := ort.NewTensor(ort.NewShape(1, latentLen, int64(p.latentDim)), latents)
	if err != nil {
		return nil, fmt.Errorf("failed to create latents tensor: %w", err)
	}

	speakerTensor, err := ort.NewTensor(ort.NewShape(1, int64(p.speakerDim)), speakerEmbed)
	if err != nil {
		latentTensor.Destroy()
		return nil, fmt.Errorf("failed to create speaker_embedding tensor: %w", err)
	}

	speedTensor, err := ort.NewTensor(ort.NewShape(1), []float32{speed})
	if err != nil {
		latentTensor.Destroy()
		speakerTensor.Destroy()
		return nil, fmt.Errorf("failed to create speed tensor: %w", err)
	}

	inputs := []ort.Value{latentTensor, speakerTensor, speedTensor}
	outputs := make([]ort.Value, 1)

	if err := p.decoder.Run(inputs, outputs); err != nil {
		destroyAll(inputs)
		return nil, fmt.Errorf("failed to run decoder: %w", err)
	}
	destroyAll(inputs)

	waveform, err := copyFloatOutput(outputs[0], "waveform")
	if err != nil {
		destroyAll(outputs)
		return nil, err
	}
	destroyAll(outputs)

	return waveform, nil
}

// copyFloatOutput copies a session output into Go-owned memory so the
// tensor can be destroyed immediately.
func copyFloatOutput(v ort.Value, name string) ([]float32, error) {
	if v == nil {
		return nil, fmt.Errorf("no %s output", name)
	}
	t, ok := v.(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected %s output type", name)
	}
	return append([]float32(nil), t.GetData()...), nil
}

func destroyAll(values []ort.Value) {
	for _, v := range values {
		if v != nil {
			v.Destroy()
		}
	}
}

func (p *Pipeline) Close() error {
	var lastErr error

	if p.speakerEncoder != nil {
		if err := p.speakerEncoder.Destroy(); err != nil {
			lastErr = err
		}
		p.speakerEncoder = nil
	}
	if p.gpt != nil {
		if err := p.gpt.Destroy(); err != nil {
			lastErr = err
		}
		p.gpt = nil
	}
	if p.decoder != nil {
		if err := p.decoder.Destroy(); err != nil {
			lastErr = err
		}
		p.decoder = nil
	}

	if p.initialized {
		if err := ort.DestroyEnvironment(); err != nil {
			lastErr = err
		}
		p.initialized = false
	}

	return lastErr
}
