package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the parsed command line. Speed and Text are passed through to
// the engine exactly as given; nothing here inspects their values.
type Config struct {
	Text        string  `mapstructure:"text"`
	SpeakerWAV  string  `mapstructure:"speaker_wav"`
	Language    string  `mapstructure:"language"`
	Speed       float32 `mapstructure:"speed"`
	Output      string  `mapstructure:"output"`
	ModelDir    string  `mapstructure:"model_dir"`
	Checkpoint  string  `mapstructure:"checkpoint"`
	ModelConfig string  `mapstructure:"config"`
	NoGPU       bool    `mapstructure:"no_gpu"`
	JSON        bool    `mapstructure:"json"`
	LogLevel    string  `mapstructure:"log_level"`
	LogFile     string  `mapstructure:"log_file"`
}

// Load parses args (without the program name) and overlays them with
// environment variables and defaults. Precedence: flag > env > default.
// The model source keys keep their historical environment names
// XTTS_MODEL_DIR, XTTS_CHECKPOINT_PATH and XTTS_CONFIG_PATH.
func Load(args []string) (*Config, error) {
	v := viper.New()

	v.SetDefault("language", "en")
	v.SetDefault("speed", 1.0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	flagSet := pflag.NewFlagSet("xtts2go", pflag.ContinueOnError)
	flagSet.StringP("text", "t", "", "Text to synthesize")
	flagSet.String("speaker_wav", "", "Reference speaker WAV file for voice cloning")
	flagSet.String("language", "en", "Language code (e.g. en, es, zh-cn)")
	flagSet.Float32P("speed", "s", 1.0, "Speech speed factor")
	flagSet.StringP("output", "o", "", "Output WAV file")
	flagSet.String("model_dir", "", "Directory containing model.pth and config.json")
	flagSet.String("checkpoint", "", "Path to the model checkpoint file")
	flagSet.String("config", "", "Path to the model config.json")
	flagSet.Bool("no-gpu", false, "Run on CPU only")
	flagSet.Bool("json", false, "Print the result as a single JSON line")
	flagSet.StringP("log-level", "l", "", "Log level (debug, info, warn, error)")
	flagSet.String("log-file", "", "Log file path")
	helpFlag := flagSet.BoolP("help", "h", false, "Show help message")

	if err := flagSet.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if *helpFlag {
		fmt.Fprintf(os.Stderr, "Usage: xtts2go --text TEXT --speaker_wav REF.wav --output OUT.wav [options]\n\nOptions:\n")
		flagSet.PrintDefaults()
		os.Exit(0)
	}

	if err := v.BindPFlag("text", flagSet.Lookup("text")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("speaker_wav", flagSet.Lookup("speaker_wav")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("language", flagSet.Lookup("language")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("speed", flagSet.Lookup("speed")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("output", flagSet.Lookup("output")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("model_dir", flagSet.Lookup("model_dir")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("checkpoint", flagSet.Lookup("checkpoint")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("config", flagSet.Lookup("config")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("no_gpu", flagSet.Lookup("no-gpu")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("json", flagSet.Lookup("json")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("log_level", flagSet.Lookup("log-level")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("log_file", flagSet.Lookup("log-file")); err != nil {
		return nil, err
	}

	if err := v.BindEnv("model_dir", "XTTS_MODEL_DIR"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("checkpoint", "XTTS_CHECKPOINT_PATH"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("config", "XTTS_CONFIG_PATH"); err != nil {
		return nil, err
	}

	v.SetEnvPrefix("XTTS2GO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Required means provided, not non-empty: an explicit empty value is
	// passed through and fails downstream like any other bad path.
	if cfg.Text == "" && !flagSet.Changed("text") {
		return nil, fmt.Errorf("--text is required")
	}
	if cfg.SpeakerWAV == "" && !flagSet.Changed("speaker_wav") {
		return nil, fmt.Errorf("--speaker_wav is required")
	}
	if cfg.Output == "" && !flagSet.Changed("output") {
		return nil, fmt.Errorf("--output is required")
	}

	return &cfg, nil
}
