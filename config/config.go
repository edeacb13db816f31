// Package config reads the optional sfcovid YAML file and turns it into
// defaults for the loader, the dashboard query, exports and the server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/andareed/siftly-covid/dataset"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Export   ExportConfig   `yaml:"export"`
	Server   ServerConfig   `yaml:"server"`
}

type SourceConfig struct {
	URL     string   `yaml:"url"`
	File    string   `yaml:"file"`
	Timeout Duration `yaml:"timeout"`
}

type DefaultsConfig struct {
	Continents []string `yaml:"continents"`
	Countries  []string `yaml:"countries"`
	Days       int      `yaml:"days"`
}

type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Duration accepts Go duration strings such as "90s" or "2m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("timeout %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

func Default() Config {
	return Config{
		Source: SourceConfig{
			Timeout: Duration(2 * time.Minute),
		},
		Defaults: DefaultsConfig{
			Days: int(dataset.DefaultRange),
		},
		Export: ExportConfig{
			Dir:    ".",
			Width:  1024,
			Height: 512,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads path, validates it against the embedded schema and overlays it
// on Default. An empty path returns Default unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(content, path)
}

// Parse is Load without the file read. name is only used in errors.
func Parse(content []byte, name string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(string(content)) == "" {
		return cfg, nil
	}

	var raw any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return cfg, &ValidationError{File: name, Problems: []Problem{{Path: "/", Message: err.Error()}}}
	}
	if raw == nil {
		return cfg, nil
	}
	if err := Validate(raw); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			ve.File = name
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Default(), &ValidationError{File: name, Problems: []Problem{{Path: "/", Message: err.Error()}}}
	}
	return cfg, nil
}

// Query builds the initial dashboard query from the defaults section.
func (c Config) Query() (dataset.Query, error) {
	r, err := dataset.ParseRange(c.Defaults.Days)
	if err != nil {
		return dataset.Query{}, fmt.Errorf("%w: defaults.days: %w", ErrInvalidConfig, err)
	}
	return dataset.Query{
		Continents: dataset.ParseSelection(c.Defaults.Continents),
		Countries:  dataset.ParseSelection(c.Defaults.Countries),
		Range:      r,
	}, nil
}
