package xtts

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
)

// DefaultModelName is the published model used when no explicit checkpoint
// or model directory is configured.
const DefaultModelName = "tts_models/multilingual/multi-dataset/xtts_v2"

// hubBaseURL hosts the ONNX export set for the default model, with the
// original config.json and vocab.json redistributed alongside it.
var hubBaseURL = "https://huggingface.co/xtts2go/xtts-v2-onnx/resolve/main"

// manifest lists the files a model home must hold before the engine can
// load it.
var manifest = []string{
	"config.json",
	"vocab.json",
	speakerEncoderFile,
	gptFile,
	decoderFile,
}

// modelHomeDir maps a model identifier to its cache directory. Separators
// are flattened the same way the upstream hub lays out its cache, e.g.
// tts_models--multilingual--multi-dataset--xtts_v2.
func modelHomeDir(name, cacheDir string) (string, error) {
	if cacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate user cache dir: %w", err)
		}
		cacheDir = filepath.Join(base, "xtts2go")
	}
	return filepath.Join(cacheDir, strings.ReplaceAll(name, "/", "--")), nil
}

// EnsureModel downloads any missing manifest files for the named model and
// returns the model home directory. Present non-empty files are reused, so
// a warm cache needs no network at all.
func EnsureModel(name, cacheDir string) (string, error) {
	home, err := modelHomeDir(name, cacheDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(home, 0o755); err != nil {
		return "", fmt.Errorf("failed to create model cache dir: %w", err)
	}

	client := &http.Client{Timeout: 30 * time.Minute}
	for _, file := range manifest {
		dest := filepath.Join(home, file)
		if info, err := os.Stat(dest); err == nil && info.Size() > 0 {
			continue
		}
		url := hubBaseURL + "/" + file
		log.Info().Str("file", file).Msg("Downloading model file")
		if err := downloadFile(client, url, dest); err != nil {
			return "", fmt.Errorf("failed to download %s: %w", file, err)
		}
	}

	return home, nil
}

func downloadFile(client *http.Client, url, dest string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s for %s", resp.Status, url)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".partial-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return err
	}

	log.Info().
		Str("file", filepath.Base(dest)).
		Str("size", humanize.Bytes(uint64(n))).
		Msg("Download complete")
	return nil
}
