package adapter

import (
	"encoding/json"
	"fmt"
)

// Result is the single outcome of a request. Hosts parse one of two JSON
// shapes: a success object with all result fields, or a failure object
// carrying only the error message.
type Result struct {
	Success    bool
	OutputPath string
	FileSize   int64
	Text       string
	SpeakerWAV string
	Language   string
	Speed      float32
	Err        string
	Kind       FailureKind
}

func failure(kind FailureKind, msg string) Result {
	return Result{Kind: kind, Err: msg}
}

// Fatal wraps a construction or orchestration error in the failure shape
// so it can be reported on the same channel as request failures.
func Fatal(err error) Result {
	return failure(FailureConstruction, err.Error())
}

type successJSON struct {
	Success    bool    `json:"success"`
	OutputPath string  `json:"output_path"`
	FileSize   int64   `json:"file_size"`
	Text       string  `json:"text"`
	SpeakerWAV string  `json:"speaker_wav"`
	Language   string  `json:"language"`
	Speed      float32 `json:"speed"`
}

type failureJSON struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// MarshalJSON emits the wire shape: seven keys on success, two on failure.
// All success fields are present even when empty, so hosts can index them
// unconditionally.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(successJSON{
			Success:    true,
			OutputPath: r.OutputPath,
			FileSize:   r.FileSize,
			Text:       r.Text,
			SpeakerWAV: r.SpeakerWAV,
			Language:   r.Language,
			Speed:      r.Speed,
		})
	}
	return json.Marshal(failureJSON{Success: false, Error: r.Err})
}

// Line renders the human-readable form: the success line for stdout or
// the error line for stderr.
func (r Result) Line() string {
	if r.Success {
		return fmt.Sprintf("✅ Generated: %s (%d bytes)", r.OutputPath, r.FileSize)
	}
	return fmt.Sprintf("❌ Error: %s", r.Err)
}
