// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the grel client.
//
// Configuration is loaded from a single YAML file specified by:
//   - GREL_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. A missing file means
// the built-in defaults; flags override whatever the file set.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Client is the grel client configuration.
type Client struct {
	// Address is the server to connect to, as "host:port".
	Address string `yaml:"address"`

	// Name is the default display name sent at login. The positional
	// command-line argument overrides it.
	Name string `yaml:"name"`

	// TickMS is the event-loop tick in milliseconds. Smaller values
	// lower latency at the cost of more wakeups per second.
	TickMS int `yaml:"tick_ms"`

	// ReadSize is how many bytes one socket read attempts.
	ReadSize int `yaml:"read_size"`

	// RosterWidth is the column width of the roster side panel.
	RosterWidth int `yaml:"roster_width"`

	// CmdChar is the single character that marks an input line as a
	// command.
	CmdChar string `yaml:"cmd_char"`

	// MaxScrollback caps stored scrollback lines; the oldest are
	// discarded beyond it. Zero means unbounded.
	MaxScrollback int `yaml:"max_scrollback"`

	// LogFile, when set, receives structured JSON logs. The terminal
	// is owned by the UI, so there is no logging without it.
	LogFile string `yaml:"log_file"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration, matching a local grel
// server's defaults.
func Default() *Client {
	return &Client{
		Address:     "127.0.0.1:51516",
		Name:        "",
		TickMS:      100,
		ReadSize:    1024,
		RosterWidth: 24,
		CmdChar:     ";",
		LogLevel:    "warn",
	}
}

// Load loads configuration from the GREL_CONFIG environment variable,
// falling back to the defaults when it is not set.
func Load() (*Client, error) {
	path := os.Getenv("GREL_CONFIG")
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, merging it
// over the defaults. The file is the single source of truth below the
// command line; environment variables do not override its values.
func LoadFile(path string) (*Client, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Client) Validate() error {
	var errs []error

	if c.Address == "" {
		errs = append(errs, fmt.Errorf("address is required"))
	}
	if c.TickMS <= 0 {
		errs = append(errs, fmt.Errorf("tick_ms must be positive, got %d", c.TickMS))
	}
	if c.ReadSize <= 0 {
		errs = append(errs, fmt.Errorf("read_size must be positive, got %d", c.ReadSize))
	}
	if c.RosterWidth <= 0 {
		errs = append(errs, fmt.Errorf("roster_width must be positive, got %d", c.RosterWidth))
	}
	if utf8.RuneCountInString(c.CmdChar) != 1 {
		errs = append(errs, fmt.Errorf("cmd_char must be a single character, got %q", c.CmdChar))
	}
	if c.MaxScrollback < 0 {
		errs = append(errs, fmt.Errorf("max_scrollback must not be negative, got %d", c.MaxScrollback))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Tick returns the event-loop tick as a duration.
func (c *Client) Tick() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// Sigil returns the command character as a rune. Call Validate first;
// an empty CmdChar yields the replacement character.
func (c *Client) Sigil() rune {
	r, _ := utf8.DecodeRuneInString(c.CmdChar)
	return r
}
