// Package commands implements the docsite command line.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Global carries process-wide state into every command.
type Global struct {
	Ctx context.Context
	Out io.Writer
	Err io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docsite.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build       BuildCmd       `cmd:"" help:"Scan the content root and write the manifest artifact"`
	Serve       ServeCmd       `cmd:"" help:"Serve the document, tree and navigation API"`
	Resolve     ResolveCmd     `cmd:"" help:"Resolve a request slug to its document"`
	Tree        TreeCmd        `cmd:"" help:"Print the directory tree below a slug"`
	Nav         NavCmd         `cmd:"" help:"Print the navigation tree"`
	Breadcrumbs BreadcrumbsCmd `cmd:"" help:"Print the breadcrumb trail for a slug"`
	Init        InitCmd        `cmd:"" help:"Write an example configuration file"`

	cfg    *config.Config `kong:"-"`
	cfgErr error          `kong:"-"`
	stderr io.Writer      `kong:"-"`
}

// AfterApply runs after flag parsing: it loads the configuration once and
// installs the default logger. A configuration error is kept for commands
// that need the configuration; init does not.
func (c *CLI) AfterApply() error {
	c.cfg, c.cfgErr = config.LoadOrDefault(c.Config)

	level, format := config.LogLevelInfo, config.LogFormatText
	if c.cfg != nil {
		level, format = c.cfg.Logging.Level, c.cfg.Logging.Format
	}
	if c.Verbose {
		level = config.LogLevelDebug
	}

	w := c.stderr
	if w == nil {
		w = os.Stderr
	}
	slog.SetDefault(newLogger(w, level, format))
	if c.cfgErr == nil {
		slog.Debug("Configuration loaded", logfields.File(c.Config))
	}
	return nil
}

// LoadedConfig returns the configuration read in AfterApply.
func (c *CLI) LoadedConfig() (*config.Config, error) {
	if c.cfgErr != nil {
		return nil, c.cfgErr
	}
	if c.cfg == nil {
		return config.Default(), nil
	}
	return c.cfg, nil
}

func newLogger(w io.Writer, level config.LogLevel, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level.SlogLevel()}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
