/*
 * config_test.go, part of egsphsp.
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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func TestSampleMatchesDefault(Te *testing.T) {
	var cfg Config
	if err := toml.Unmarshal([]byte(SampleConfig()), &cfg); err != nil {
		Te.Fatalf("sample config does not parse: %v", err)
	}
	if cfg != Default() {
		Te.Fatalf("sample config %+v differs from defaults %+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		Te.Fatalf("defaults do not validate: %v", err)
	}
}

func TestLoadMissingFile(Te *testing.T) {
	Te.Setenv("XDG_CONFIG_HOME", Te.TempDir())
	cfg, path, exists, err := Load("")
	if err != nil {
		Te.Fatalf("Load returned error: %v", err)
	}
	if exists {
		Te.Fatal("expected no config file")
	}
	if !strings.HasSuffix(path, filepath.Join("egsphsp", "config.toml")) {
		Te.Fatalf("unexpected path %q", path)
	}
	if *cfg != Default() {
		Te.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverrides(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "config.toml")
	content := "[stream]\nchunk_size = 29\n[logging]\nlevel = \" DEBUG \"\nformat = \"JSON\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		Te.Fatal(err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		Te.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		Te.Fatal("expected config file to be found")
	}
	if cfg.Stream.ChunkSize != 29 || cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		Te.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Plot != Default().Plot {
		Te.Fatalf("unset section lost its defaults: %+v", cfg.Plot)
	}
}

func TestLoadInvalid(Te *testing.T) {
	dir := Te.TempDir()
	cases := map[string]string{
		"chunk":   "[stream]\nchunk_size = 0\n",
		"level":   "[logging]\nlevel = \"loud\"\n",
		"format":  "[logging]\nformat = \"xml\"\n",
		"unknown": "[stream]\nchunk = 12\n",
		"syntax":  "[stream\n",
		"level22": "[archive]\ncompression_level = 23\n",
	}
	for name, content := range cases {
		path := filepath.Join(dir, name+".toml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			Te.Fatal(err)
		}
		if _, _, _, err := Load(path); err == nil {
			Te.Errorf("%s: expected an error", name)
		}
	}
}

func TestWrite(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "sub", "config.toml")
	if err := Write(path); err != nil {
		Te.Fatalf("Write returned error: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil || !exists || *cfg != Default() {
		Te.Fatalf("written config: %+v %v %v", cfg, exists, err)
	}
	if err := Write(path); err == nil {
		Te.Fatal("expected Write to refuse overwriting")
	}
}

func TestLoadWarningLevel(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"Warning\"\n"), 0o644); err != nil {
		Te.Fatal(err)
	}
	cfg, _, _, err := Load(path)
	if err != nil {
		Te.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		Te.Errorf("level %q, want warn", cfg.Logging.Level)
	}
}
