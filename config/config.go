package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDataLine  = 23 // BCM numbering
	DefaultClockLine = 24
)

type Driver struct {
	Kind      string `yaml:"kind"`       // "gpio" | "spi" | "sim"
	DataLine  int    `yaml:"data_line"`  // BCM
	ClockLine int    `yaml:"clock_line"` // BCM
	SPIDev    string `yaml:"spi_dev"`    // spireg name, "" = first port
	SPIHz     int64  `yaml:"spi_hz"`
	Fallback  bool   `yaml:"fallback"` // use sim if hardware fails
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"` // rotated with lumberjack when set
}

type Config struct {
	Driver         Driver `yaml:"driver"`
	Debug          bool   `yaml:"debug"`
	ResetOnRelease bool   `yaml:"reset_on_release"`
	Addr           string `yaml:"addr"`
	Log            Log    `yaml:"log"`
}

func Default() *Config {
	return &Config{
		Driver: Driver{
			Kind:      "gpio",
			DataLine:  DefaultDataLine,
			ClockLine: DefaultClockLine,
			SPIHz:     4000000,
			Fallback:  true,
		},
		ResetOnRelease: true,
		Addr:           ":8088",
		Log:            Log{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults
// together with the fs.ErrNotExist error so callers can decide to carry on.
func Load(path string) (*Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, err
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
