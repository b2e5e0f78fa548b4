// Copyright 2026 The Grel Authors
// SPDX-License-Identifier: Apache-2.0

// grel is an interactive terminal client for the grel chat protocol.
//
// It connects to a server, logs in under the display name given as the
// positional argument, and runs a full-screen session: scrollback and
// a room roster on top, a status line, and an input line at the
// bottom. Input lines starting with the command character (";" by
// default) are commands; everything else is sent as chat text.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"

	"github.com/d2718/grel/client"
	"github.com/d2718/grel/lib/config"
	"github.com/d2718/grel/lib/version"
	"github.com/d2718/grel/transport"
	"github.com/d2718/grel/wire"
)

// handshakeTimeout bounds the login exchange before the event loop
// takes over.
const handshakeTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			fmt.Fprintf(os.Stderr, "grel: %v\n", err)
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "grel: %v\n", err)
		os.Exit(1)
	}
}

// usageError is a command-line mistake rather than a runtime failure.
type usageError struct {
	message string
}

func (e usageError) Error() string { return e.message }
func (e usageError) ExitCode() int { return 2 }

func run() error {
	var configPath string
	var address string
	var logOutput string

	flagSet := pflag.NewFlagSet("grel", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to the grel.yaml config file (default: $GREL_CONFIG)")
	flagSet.StringVar(&address, "address", "", "server address as host:port (overrides the config file)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (overrides the config file)")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to match the usual shape.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("grel")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	var cfg *config.Client
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if address != "" {
		cfg.Address = address
	}
	if logOutput != "" {
		cfg.LogFile = logOutput
	}

	name := cfg.Name
	switch args := flagSet.Args(); len(args) {
	case 0:
		if name == "" {
			printHelp(flagSet)
			return usageError{"a display name is required"}
		}
	case 1:
		name = args[0]
	default:
		return usageError{fmt.Sprintf("unexpected argument: %s", args[1])}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	farewell, err := runSession(cfg, name, logger)
	for _, line := range farewell {
		fmt.Println(line)
	}
	return err
}

// runSession owns the connection and the terminal: both are torn down
// before it returns, so the farewell prints onto a restored screen.
func runSession(cfg *config.Client, name string, logger *slog.Logger) ([]string, error) {
	conn, err := transport.Dial(cfg.Address, cfg.ReadSize)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	// Log in before touching the terminal, so a refused connection
	// fails with a plain error message instead of a flash of UI.
	ctx, cancel := context.WithTimeout(context.Background(), handshakeTimeout)
	defer cancel()
	login, err := wire.Encode(wire.Name{New: name})
	if err != nil {
		return nil, err
	}
	if err := conn.BlockingSend(ctx, login, cfg.Tick()); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := conn.EnqueueMessage(wire.Query{What: "roster"}); err != nil {
		return nil, err
	}

	terminal, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}
	if err := terminal.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	defer terminal.Fini()

	session := client.New(conn, terminal, client.Config{
		Name:          name,
		Tick:          cfg.Tick(),
		Sigil:         cfg.Sigil(),
		RosterWidth:   cfg.RosterWidth,
		MaxScrollback: cfg.MaxScrollback,
	}, logger)

	err = session.Run(context.Background())
	return session.Farewell(), err
}

// newLogger builds the session logger. The terminal belongs to the UI,
// so logs go to the configured file or nowhere.
func newLogger(cfg *config.Client) (*slog.Logger, func(), error) {
	if cfg.LogFile == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(handler), func() { file.Close() }, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `grel, a terminal client for the grel chat protocol.

Usage:
  grel [flags] <name>

The positional argument is the display name to log in under; it may
also come from the config file's "name" key. Configuration is read
from the file named by $GREL_CONFIG or --config, and built-in
defaults apply when neither is set.

Once connected, lines starting with the command character (";" by
default) are commands:

  ;quit [message]   log out, with an optional parting message
  ;name <new name>  change display name
  ;join <room>      move to a room, creating it if needed
  ;who [prefix]     list connected users, optionally filtered

Anything else is sent to the current room as chat text.

Flags:
%s`, flagSet.FlagUsages())
}
