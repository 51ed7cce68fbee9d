// Package adapter turns one parsed request into one result. Construction
// failures are errors returned by New and end the process; everything that
// goes wrong for a request folds into a failure Result so the host's
// subprocess loop stays alive.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"xtts2go/internal/pkg/xtts2go/audio"
	"xtts2go/internal/pkg/xtts2go/config"
	"xtts2go/internal/pkg/xtts2go/engine"
	"xtts2go/internal/pkg/xtts2go/language"
)

// Fixed file names inside a --model_dir directory.
const (
	checkpointFileName = "model.pth"
	configFileName     = "config.json"
)

const defaultBackend = "xtts"

// FailureKind classifies what went wrong with a request.
type FailureKind string

const (
	FailureNone            FailureKind = ""
	FailureSpeakerNotFound FailureKind = "speaker_not_found"
	FailureInvalidLanguage FailureKind = "invalid_language"
	FailureEngine          FailureKind = "engine"
	FailureConstruction    FailureKind = "construction"
)

// Request is one synthesis job. Text and Speed are forwarded to the engine
// exactly as given; only SpeakerWAV and Language are validated here.
type Request struct {
	Text       string
	SpeakerWAV string
	Language   string
	Speed      float32
	OutputPath string
}

type Adapter struct {
	eng engine.Engine
}

// ResolveModelSource maps the configured flags onto an engine config.
// Explicit checkpoint and config paths win over --model_dir, which wins
// over the pretrained default. A lone checkpoint or a lone config path
// does not count as an explicit source.
func ResolveModelSource(cfg *config.Config) engine.EngineConfig {
	ec := engine.EngineConfig{UseGPU: !cfg.NoGPU}

	switch {
	case cfg.Checkpoint != "" && cfg.ModelConfig != "":
		ec.CheckpointPath = cfg.Checkpoint
		ec.ConfigPath = cfg.ModelConfig
	case cfg.ModelDir != "":
		ec.CheckpointPath = filepath.Join(cfg.ModelDir, checkpointFileName)
		ec.ConfigPath = filepath.Join(cfg.ModelDir, configFileName)
	}
	// Neither set: the backend falls back to its pretrained default.

	return ec
}

// New resolves the model source and constructs the engine. This happens
// once per process; no request is served until it succeeds.
func New(cfg *config.Config) (*Adapter, error) {
	eng, err := engine.New(defaultBackend, ResolveModelSource(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	return &Adapter{eng: eng}, nil
}

// NewWithEngine wraps an already constructed engine.
func NewWithEngine(eng engine.Engine) *Adapter {
	return &Adapter{eng: eng}
}

func (a *Adapter) Info() engine.EngineInfo {
	return a.eng.Info()
}

func (a *Adapter) Close() error {
	return a.eng.Close()
}

// Generate runs one request and never returns an error: validation
// problems, engine errors and output problems all come back as a failure
// Result. The speaker wav is checked before the language so its message
// wins when both are bad, and the engine is not invoked unless both checks
// pass.
func (a *Adapter) Generate(req Request) Result {
	if _, err := os.Stat(req.SpeakerWAV); err != nil {
		return failure(FailureSpeakerNotFound,
			fmt.Sprintf("Speaker wav file not found: %s", req.SpeakerWAV))
	}

	if !language.Supported(req.Language) {
		return failure(FailureInvalidLanguage,
			fmt.Sprintf("Invalid language: %s. Must be one of %v", req.Language, language.Codes()))
	}

	ref, err := audio.LoadWAV(req.SpeakerWAV)
	if err != nil {
		return failure(FailureEngine, err.Error())
	}

	out, err := a.eng.Generate(req.Text, req.Language, ref, req.Speed)
	if err != nil {
		return failure(FailureEngine, err.Error())
	}

	if err := out.SaveWAV(req.OutputPath); err != nil {
		return failure(FailureEngine, err.Error())
	}

	info, err := os.Stat(req.OutputPath)
	if err != nil {
		return failure(FailureEngine,
			fmt.Sprintf("output file was not created: %s", req.OutputPath))
	}
	if info.Size() == 0 {
		return failure(FailureEngine,
			fmt.Sprintf("output file is empty: %s", req.OutputPath))
	}

	return Result{
		Success:    true,
		OutputPath: req.OutputPath,
		FileSize:   info.Size(),
		Text:       req.Text,
		SpeakerWAV: req.SpeakerWAV,
		Language:   req.Language,
		Speed:      req.Speed,
		Kind:       FailureNone,
	}
}
