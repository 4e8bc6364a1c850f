package actions

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"songshelf/internal/adapters"
	"songshelf/internal/config"
	"songshelf/internal/display"
	"songshelf/internal/logging"
	"songshelf/internal/porter"
	"songshelf/internal/songfile"
)

const envKey = "songshelf.env"

// env is what Before resolves once for every command
type env struct {
	cfg config.Config
	log *slog.Logger
}

// NewApp builds the songshelf command line application
func NewApp() *cli.App {
	return &cli.App{
		Name:                      "songshelf",
		Usage:                     "Keep a tagged playlist of songs in a plain text file.",
		Flags:                     Flags(),
		Before:                    Before,
		Action:                    Menu,
		Commands:                  Commands(),
		DisableSliceFlagSeparator: true,
	}
}

// Flags are the global flags. Each one overrides its environment variable.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "songs",
			Aliases: []string{"f"},
			Usage:   "song file to load (.gz, .zst and .lz4 are decompressed)",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "fail on the first malformed line instead of skipping it",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "text or json",
		},
	}
}

// Before loads the configuration, applies flag overrides and builds the logger
func Before(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if c.IsSet("songs") {
		cfg.SongsFile = c.String("songs")
	}
	if c.IsSet("strict") {
		cfg.Strict = c.Bool("strict")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[envKey] = &env{
		cfg: cfg,
		log: logging.New(c.App.ErrWriter, cfg.LogLevel, cfg.LogFormat),
	}
	return nil
}

func envFrom(c *cli.Context) *env {
	if e, ok := c.App.Metadata[envKey].(*env); ok {
		return e
	}
	return &env{cfg: config.Config{SongsFile: config.DefaultSongsFile}, log: logging.Discard()}
}

func (e *env) sourceOptions(c *cli.Context) adapters.Options {
	return adapters.Options{Config: e.cfg, Logger: e.log, Out: c.App.Writer}
}

// openPorter loads the configured song file. A missing file starts an
// empty playlist.
func openPorter(c *cli.Context) (*porter.Porter, *env, error) {
	e := envFrom(c)
	p, err := porter.Open(c.Context, e.cfg.SongsFile, songfile.Options{Strict: e.cfg.Strict, Logger: e.log}, e.log)
	if errors.Is(err, fs.ErrNotExist) {
		e.log.Warn("songs file not found, starting empty", "path", e.cfg.SongsFile)
		return porter.NewPorter(nil, e.log), e, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return p, e, nil
}

// save writes the playlist back to the song file
func save(c *cli.Context, p *porter.Porter, e *env) error {
	if err := p.Save(e.cfg.SongsFile); err != nil {
		return err
	}

	out := display.New(c.App.Writer)
	info, err := os.Stat(e.cfg.SongsFile)
	if err != nil {
		return fmt.Errorf("actions.save: %w", err)
	}
	out.Line("Saved %s to %s (%s).", display.Summary(p.Playlist().Len()), e.cfg.SongsFile, display.Size(info.Size()))
	return nil
}

func writeFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "write",
		Aliases: []string{"w"},
		Usage:   "save the playlist back to the song file",
	}
}
