package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const (
	DefaultEndpoint = "http://localhost:8000/api/chat"
	DefaultGreeting = "Hello! I’m Axamine-Ai. Do you need my help?"
	DefaultMode     = "chatbot"
	DefaultTimeout  = 60 * time.Second
)

type ServiceConfig struct {
	Endpoint string            `toml:"endpoint" env:"AXAMINE_ENDPOINT"`
	Timeout  Duration          `toml:"timeout" env:"AXAMINE_TIMEOUT"`
	Headers  map[string]string `toml:"headers,omitempty"`
}

type UIConfig struct {
	Greeting string `toml:"greeting" env:"AXAMINE_GREETING"`
	Mode     string `toml:"mode" env:"AXAMINE_MODE"`
	Markdown bool   `toml:"markdown" env:"AXAMINE_MARKDOWN"`
}

type Config struct {
	Service ServiceConfig `toml:"service"`
	UI      UIConfig      `toml:"ui"`
	Debug   bool          `toml:"debug" env:"AXAMINE_DEBUG"`
	LogDir  string        `toml:"log_dir,omitempty" env:"AXAMINE_LOG_DIR"`

	path string
}

// Duration lets timeouts be written as "30s" in both the file and the environment.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

var C Config

func Default() Config {
	return Config{
		Service: ServiceConfig{
			Endpoint: DefaultEndpoint,
			Timeout:  Duration{DefaultTimeout},
		},
		UI: UIConfig{
			Greeting: DefaultGreeting,
			Mode:     DefaultMode,
			Markdown: true,
		},
	}
}

// Load reads path (or the default config file when empty) into C.
// A missing file is not an error; environment variables override the file.
func Load(path string) error {
	c := Default()
	if path == "" {
		path = filepath.Join(Home(), "config.toml")
	}
	c.path = path

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &c); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := env.Parse(&c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if c.Service.Timeout.Duration <= 0 {
		c.Service.Timeout = Duration{DefaultTimeout}
	}
	if c.LogDir == "" {
		c.LogDir = Home()
	}

	C = c
	return nil
}

func Save() error {
	path := C.path
	if path == "" {
		path = filepath.Join(Home(), "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(C)
}

func (c *Config) Path() string {
	return c.path
}

func Home() string {
	if h := os.Getenv("AXAMINE_HOME"); h != "" {
		return h
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "axamine")
}
