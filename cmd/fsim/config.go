package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	fros "github.com/vijay-x-Raj/File-Recovery-and-Optimization-System"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/codec"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/resource"
)

const envVarPrefix = "FSIM"

// Config is the CLI configuration. Values come from the YAML file named by
// FSIM_CONFIG_FILE (or --config), then FSIM_* environment variables, then
// flags.
type Config struct {
	Blocks              int     `yaml:"blocks"              envconfig:"BLOCKS"`
	BlockSize           int     `yaml:"blockSize"           split_words:"true"`
	Reserved            int     `yaml:"reserved"            envconfig:"RESERVED"`
	RecoveryProbability float64 `yaml:"recoveryProbability" split_words:"true"`
	// Seed 0 picks a time-based seed.
	Seed         int64   `yaml:"seed"         envconfig:"SEED"`
	LogLevel     string  `yaml:"logLevel"     split_words:"true"`
	LogFormat    string  `yaml:"logFormat"    split_words:"true"`
	Codec        string  `yaml:"codec"        envconfig:"CODEC"`
	Compression  string  `yaml:"compression"  envconfig:"COMPRESSION"`
	Dump         string  `yaml:"dump"         envconfig:"DUMP"`
	OpsPerSecond float64 `yaml:"opsPerSecond" split_words:"true"`
	// DumpRate caps dump bandwidth per second, e.g. "512KiB". Empty means
	// unlimited.
	DumpRate string `yaml:"dumpRate" split_words:"true"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Blocks:              256,
		BlockSize:           4096,
		Reserved:            4,
		RecoveryProbability: 0.7,
		LogLevel:            "warn",
		LogFormat:           "text",
		Codec:               codec.Default.Name(),
		Compression:         codec.CompressionNone.String(),
	}
}

// LoadConfig layers the config file and the environment over the defaults.
// An empty path falls back to FSIM_CONFIG_FILE; a missing file is an error
// only when a path was given.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(envVarPrefix + "_CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decodeStrict(data, &c); err != nil {
				return c, fmt.Errorf("unmarshaling config file: %w", err)
			}
		case explicit || !errors.Is(err, os.ErrNotExist):
			return c, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := envconfig.Process(envVarPrefix, &c); err != nil {
		return c, fmt.Errorf("parsing environment variables: %w", err)
	}
	return c, nil
}

func decodeStrict(data []byte, c *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Options translates c into simulator options.
func (c Config) Options(logOut io.Writer) ([]fros.Option, error) {
	cd, err := codec.Parse(c.Codec)
	if err != nil {
		return nil, err
	}
	comp, err := codec.ParseCompression(c.Compression)
	if err != nil {
		return nil, err
	}
	logger, err := c.Logger(logOut)
	if err != nil {
		return nil, err
	}

	opts := []fros.Option{
		fros.WithTotalBlocks(c.Blocks),
		fros.WithBlockSize(c.BlockSize),
		fros.WithReservedBlocks(c.Reserved),
		fros.WithRecoveryProbability(c.RecoveryProbability),
		fros.WithCodec(cd),
		fros.WithCompression(comp),
		fros.WithLogger(logger),
	}
	if c.Seed != 0 {
		opts = append(opts, fros.WithSeed(c.Seed))
	}
	return opts, nil
}

// Logger builds the logger named by LogLevel and LogFormat.
func (c Config) Logger(w io.Writer) (*fros.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	hopts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(c.LogFormat) {
	case "", "text":
		return fros.NewLogger(slog.NewTextHandler(w, hopts)), nil
	case "json":
		return fros.NewLogger(slog.NewJSONHandler(w, hopts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q", c.LogFormat)
}

// Controller builds the resource controller for OpsPerSecond and DumpRate.
func (c Config) Controller() (*resource.Controller, error) {
	rc := resource.Config{OpsPerSecond: c.OpsPerSecond}
	if c.DumpRate != "" {
		n, err := humanize.ParseBytes(c.DumpRate)
		if err != nil {
			return nil, fmt.Errorf("dump rate: %w", err)
		}
		rc.IOLimitBytesPerSec = int64(n)
	}
	return resource.NewController(rc), nil
}
