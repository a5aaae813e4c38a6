/*
 * context.go, part of egsphsp.
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

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/rmera/egsphsp/internal/config"
	"github.com/rmera/egsphsp/internal/logging"
)

// commandContext holds what every subcommand needs: the flags of the root
// command, the loaded configuration and the logger built from both.
type commandContext struct {
	configFlag string
	levelFlag  string
	formatFlag string
	chunkFlag  int

	config *config.Config
	log    *slog.Logger
}

func (c *commandContext) setup(cmd *cobra.Command) error {
	cfg, path, exists, err := config.Load(strings.TrimSpace(c.configFlag))
	if err != nil {
		return err
	}
	if c.levelFlag != "" {
		cfg.Logging.Level = c.levelFlag
	}
	if c.formatFlag != "" {
		cfg.Logging.Format = c.formatFlag
	}
	if c.chunkFlag != 0 {
		if c.chunkFlag < 0 {
			return fmt.Errorf("--chunk-size must be positive, got %d", c.chunkFlag)
		}
		cfg.Stream.ChunkSize = c.chunkFlag
	}
	log, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	log.Debug("configuration loaded", "path", path, "exists", exists, "chunk_size", cfg.Stream.ChunkSize)
	c.config = cfg
	c.log = log
	return nil
}

// logger returns the logger of the command, or one that discards everything if
// setup was skipped.
func (c *commandContext) logger() *slog.Logger {
	if c.log == nil {
		return logging.Discard()
	}
	return c.log
}

func (c *commandContext) cfg() *config.Config {
	if c.config == nil {
		d := config.Default()
		return &d
	}
	return c.config
}

// withLock runs fn while holding an exclusive advisory lock on path. It fails at
// once if another process holds the lock.
func (c *commandContext) withLock(path string, fn func() error) error {
	_, err := c.lockAndRun(path, fn)
	return err
}

// withLockFile is withLock on a separate path+".lock" file, for targets that may
// not exist yet. The lock file is removed afterwards if we were the ones holding it.
func (c *commandContext) withLockFile(path string, fn func() error) error {
	lockPath := path + ".lock"
	held, err := c.lockAndRun(lockPath, fn)
	if !held {
		return err
	}
	if rerr := os.Remove(lockPath); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
		c.logger().Warn("remove lock file", "path", lockPath, "error", rerr)
	}
	return err
}

func (c *commandContext) lockAndRun(path string, fn func() error) (bool, error) {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquire lock on %s: %w", path, err)
	}
	if !ok {
		return false, fmt.Errorf("%s is locked by another process", path)
	}
	c.logger().Debug("lock acquired", "path", path)
	defer func() {
		if err := lock.Unlock(); err != nil {
			c.logger().Warn("release lock", "path", path, "error", err)
		}
	}()
	return true, fn()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
