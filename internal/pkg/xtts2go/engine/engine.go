package engine

import "xtts2go/internal/pkg/xtts2go/audio"

// Engine is a voice-cloning synthesizer. The reference audio supplies the
// voice; language selects the tokenizer's language mode.
type Engine interface {
	Generate(text, language string, ref *audio.Audio, speed float32) (*audio.Audio, error)
	Info() EngineInfo
	Close() error
}

type EngineInfo struct {
	Name       string
	Languages  []string
	SampleRate int
}

// EngineConfig names the model source. Either CheckpointPath+ConfigPath
// point at explicit files, or PretrainedName selects a published model to
// fetch into CacheDir (empty means the user cache directory).
type EngineConfig struct {
	CheckpointPath string
	ConfigPath     string
	PretrainedName string
	CacheDir       string
	Backend        string
	UseGPU         bool
}
