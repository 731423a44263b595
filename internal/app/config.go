package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/hupe1980/kdgo/codec"
	"github.com/hupe1980/kdgo/distance"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
	BackendMinio = "minio"
)

// Config is the configuration accepted by the commands, as YAML or JSON.
type Config struct {
	Metric      string      `yaml:"metric" json:"metric"`
	Compression string      `yaml:"compression" json:"compression"`
	Log         LogConfig   `yaml:"log" json:"log"`
	Store       StoreConfig `yaml:"store" json:"store"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format"` // text or json
}

// StoreConfig selects where trees are read from and written to.
type StoreConfig struct {
	Backend   string `yaml:"backend" json:"backend"`
	Bucket    string `yaml:"bucket" json:"bucket"`
	Prefix    string `yaml:"prefix" json:"prefix"`
	Region    string `yaml:"region" json:"region"`
	Endpoint  string `yaml:"endpoint" json:"endpoint"`
	AccessKey string `yaml:"access_key" json:"access_key"`
	SecretKey string `yaml:"secret_key" json:"secret_key"`
	Secure    bool   `yaml:"secure" json:"secure"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Metric:      distance.MetricEuclidean.String(),
		Compression: codec.CompressionNone.String(),
		Log:         LogConfig{Level: "info", Format: "text"},
		Store:       StoreConfig{Backend: BackendLocal},
	}
}

// LoadConfig reads path and overlays it on DefaultConfig. Files ending in
// .json are decoded as JSON, anything else as YAML. An empty path returns
// the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	parse := ParseConfig
	if strings.EqualFold(filepath.Ext(path), ".json") {
		parse = ParseJSONConfig
	}
	cfg, err := parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML data over DefaultConfig. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseJSONConfig decodes JSON data over DefaultConfig. Unknown keys are rejected.
func ParseJSONConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every named value is recognized.
func (c Config) Validate() error {
	if _, err := distance.ParseMetric(c.Metric); err != nil {
		return err
	}
	if _, err := codec.ParseCompression(c.Compression); err != nil {
		return err
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	switch c.Store.Backend {
	case "", BackendLocal:
	case BackendS3, BackendMinio:
		if c.Store.Bucket == "" {
			return fmt.Errorf("store backend %s requires a bucket", c.Store.Backend)
		}
		if c.Store.Backend == BackendMinio && c.Store.Endpoint == "" {
			return errors.New("store backend minio requires an endpoint")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}

// MetricValue returns the parsed metric.
func (c Config) MetricValue() distance.Metric {
	m, _ := distance.ParseMetric(c.Metric)
	return m
}

// CompressionValue returns the parsed compression.
func (c Config) CompressionValue() codec.Compression {
	comp, _ := codec.ParseCompression(c.Compression)
	return comp
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
