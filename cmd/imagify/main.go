// Package main provides the CLI entry point for imagify.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/imagify/pkg/adapters/logger"
	"github.com/user/imagify/pkg/ports"
)

var version = "dev"

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "imagify",
		Usage:   l10n.T("Render long chat messages as images"),
		Version: version,
		Description: l10n.T("imagify replaces messages that exceed a line or length threshold " +
			"with a PNG image of their text."),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "log-level",
				Aliases:  []string{"l"},
				Value:    "info",
				Usage:    l10n.T("Log level (debug, info, warn, error)"),
				Category: l10n.T("Logging"),
			},
			&cli.BoolFlag{
				Name:     "quiet",
				Aliases:  []string{"Q"},
				Usage:    l10n.T("Suppress all log output"),
				Category: l10n.T("Logging"),
			},
		},
		Commands: []*cli.Command{
			renderCommand(),
			checkCommand(),
			pipeCommand(),
		},
	}
}

// configFlag is shared by every command.
func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "config",
		Aliases:  []string{"c"},
		Usage:    l10n.T("Configuration file (.yaml, .yml or .toml)"),
		Category: l10n.T("Configuration"),
	}
}

func debugFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:     "debug",
			Aliases:  []string{"d"},
			Usage:    l10n.T("Enable debug output"),
			Category: l10n.T("Debug"),
		},
		&cli.StringFlag{
			Name:     "debug-dir",
			Usage:    l10n.T("Directory for debug output"),
			Category: l10n.T("Debug"),
		},
	}
}

// newLogger creates the logger selected by the global flags, falling back
// to the configured level. Logs go to stderr when stdout carries data.
func newLogger(c *cli.Context, configured string, stdoutIsData bool) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	name := c.String("log-level")
	if !c.IsSet("log-level") && configured != "" {
		name = configured
	}
	level := ports.ParseLogLevel(name)
	if stdoutIsData {
		return logger.NewStderrConsole(level)
	}
	return logger.NewConsole(level)
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext(parent context.Context, log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
