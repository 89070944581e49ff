package main

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config describes one bersim invocation. Values come from an optional
// YAML file, BERSIM_* environment variables and the built-in defaults for
// the classic (7, 5) rate-1/2 code.
type Config struct {
	Memory     int       `mapstructure:"memory"`
	Generators []uint32  `mapstructure:"generators"` // octal notation
	EbN0dB     []float64 `mapstructure:"ebn0_db"`
	Frames     int       `mapstructure:"frames"`
	FrameBits  int       `mapstructure:"frame_bits"`
	Seed       uint64    `mapstructure:"seed"`

	Database     string `mapstructure:"database"`      // sqlite path, empty disables
	Chart        string `mapstructure:"chart"`         // HTML output path, empty disables
	CapturePath  string `mapstructure:"capture"`       // frame capture path, empty disables
	CaptureCodec string `mapstructure:"capture_codec"` // none, s2, lz4, zstd
}

// LoadConfig reads the configuration file at path, or searches for
// bersim.yaml in the working directory when path is empty. A missing file
// is not an error; defaults apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("memory", 2)
	v.SetDefault("generators", []uint32{7, 5})
	v.SetDefault("ebn0_db", []float64{0, 1, 2, 3, 4, 5, 6})
	v.SetDefault("frames", 200)
	v.SetDefault("frame_bits", 256)
	v.SetDefault("seed", 1)
	v.SetDefault("capture_codec", "s2")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("bersim")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BERSIM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if len(cfg.Generators) == 0 {
		return nil, fmt.Errorf("at least one generator polynomial is required")
	}

	return &cfg, nil
}
