/*
 * config.go, part of egsphsp.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package config loads and validates the egsphsp configuration: a TOML file with
// defaults for every value, so a missing file is not an error.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Stream contains the settings of the record engine.
type Stream struct {
	ChunkSize int `toml:"chunk_size"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Archive contains the compression settings.
type Archive struct {
	CompressionLevel int `toml:"compression_level"`
}

// Plot contains the plot settings.
type Plot struct {
	WidthCm float64 `toml:"width_cm"`
	Bins    int     `toml:"bins"`
	Sample  int     `toml:"sample"`
}

// Config holds every setting of the command line tool.
type Config struct {
	Stream  Stream  `toml:"stream"`
	Logging Logging `toml:"logging"`
	Archive Archive `toml:"archive"`
	Plot    Plot    `toml:"plot"`
}

// Default returns the configuration used when there is no file.
func Default() Config {
	return Config{
		Stream:  Stream{ChunkSize: 4096},
		Logging: Logging{Level: "info", Format: "console"},
		Archive: Archive{CompressionLevel: 0},
		Plot:    Plot{WidthCm: 12, Bins: 100, Sample: 20000},
	}
}

// SampleConfig returns a commented configuration file holding the defaults.
func SampleConfig() string {
	return sampleConfig
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/egsphsp/config.toml, falling back
// to ~/.config when XDG_CONFIG_HOME is not set.
func DefaultConfigPath() (string, error) {
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "egsphsp", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "egsphsp", "config.toml"), nil
}

// Load reads and validates the configuration at path, or at DefaultConfigPath if
// path is empty. It returns the path used and whether a file was found there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, "", false, err
		}
		path = p
	}
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &cfg, path, false, nil
	}
	if err != nil {
		return nil, path, false, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()
	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, path, true, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, path, true, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, path, true, nil
}

func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Stream.ChunkSize < 1 {
		return fmt.Errorf("stream.chunk_size must be positive, got %d", c.Stream.ChunkSize)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if c.Archive.CompressionLevel < 0 || c.Archive.CompressionLevel > 22 {
		return errors.New("archive.compression_level must be between 0 and 22")
	}
	if c.Plot.WidthCm <= 0 {
		return errors.New("plot.width_cm must be positive")
	}
	if c.Plot.Bins < 1 {
		return errors.New("plot.bins must be positive")
	}
	if c.Plot.Sample < 1 {
		return errors.New("plot.sample must be positive")
	}
	return nil
}

// Write stores the sample configuration at path, creating its directory. It
// refuses to overwrite an existing file.
func Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if _, err := f.WriteString(sampleConfig); err != nil {
		f.Close()
		return fmt.Errorf("write config: %w", err)
	}
	return f.Close()
}
