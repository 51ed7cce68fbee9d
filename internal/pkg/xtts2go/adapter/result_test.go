package adapter

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestResultMarshalSuccess(t *testing.T) {
	res := Result{
		Success:    true,
		OutputPath: "/tmp/out.wav",
		FileSize:   1234,
		Text:       "hello",
		SpeakerWAV: "ref.wav",
		Language:   "en",
		Speed:      1,
	}

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"success":true,"output_path":"/tmp/out.wav","file_size":1234,"text":"hello","speaker_wav":"ref.wav","language":"en","speed":1}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestResultMarshalSuccessAlwaysHasAllKeys(t *testing.T) {
	// Even a success with empty fields (empty text passes through) keeps
	// the full key set so hosts can index unconditionally.
	data, err := json.Marshal(Result{Success: true})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	for _, key := range []string{"success", "output_path", "file_size", "text", "speaker_wav", "language", "speed"} {
		if _, ok := m[key]; !ok {
			t.Errorf("Missing key %q in %s", key, data)
		}
	}
	if len(m) != 7 {
		t.Errorf("Expected exactly 7 keys, got %d: %s", len(m), data)
	}
}

func TestResultMarshalFailure(t *testing.T) {
	res := failure(FailureEngine, "boom")

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"success":false,"error":"boom"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestResultMarshalIsSingleLine(t *testing.T) {
	res := Result{Success: true, Text: "line one\nline two"}

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(string(data), "\n") {
		t.Errorf("Expected one line, got %q", data)
	}
}

func TestFatal(t *testing.T) {
	res := Fatal(errors.New("failed to initialize engine: no backend"))

	if res.Success {
		t.Error("Expected failure result")
	}
	if res.Kind != FailureConstruction {
		t.Errorf("Kind = %q, want %q", res.Kind, FailureConstruction)
	}

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"success":false,"error":"failed to initialize engine: no backend"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestResultLine(t *testing.T) {
	success := Result{Success: true, OutputPath: "/tmp/out.wav", FileSize: 52044}
	if got, want := success.Line(), "✅ Generated: /tmp/out.wav (52044 bytes)"; got != want {
		t.Errorf("Line = %q, want %q", got, want)
	}

	fail := failure(FailureInvalidLanguage, "Invalid language: xx. Must be one of [en]")
	if got, want := fail.Line(), "❌ Error: Invalid language: xx. Must be one of [en]"; got != want {
		t.Errorf("Line = %q, want %q", got, want)
	}
}
