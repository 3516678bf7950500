package config

import (
	"errors"
	"flag"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds root settings shared by every subcommand.
type Config struct {
	File  string // data file; empty means ./todos.json
	Theme string // classic | neon | mono
	Group bool   // ls grouped by pending/done
	Debug bool

	Args []string // remaining subcommand + args
}

// LoadEnv reads .env from the working directory when present.
// A missing file is not an error.
func LoadEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Parse reads root flags, then falls back to TADA_* environment variables
// for anything not given on the command line.
func Parse(args []string, stderr io.Writer) (Config, error) {
	var cfg Config

	flags := flag.NewFlagSet("todo", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&cfg.File, "file", "", "data file (env TADA_FILE)")
	flags.StringVar(&cfg.Theme, "theme", "", "color theme: classic, neon, mono (env TADA_THEME)")
	flags.BoolVar(&cfg.Group, "group", false, "group output by pending/done")
	flags.BoolVar(&cfg.Debug, "v", false, "debug logging (env TADA_DEBUG)")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Args = flags.Args()

	if cfg.File == "" {
		cfg.File = strings.TrimSpace(os.Getenv("TADA_FILE"))
	}
	if cfg.Theme == "" {
		cfg.Theme = strings.TrimSpace(os.Getenv("TADA_THEME"))
	}
	if cfg.Theme == "" {
		cfg.Theme = "classic"
	}
	if !cfg.Debug {
		if v := os.Getenv("TADA_DEBUG"); v != "" {
			on, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid TADA_DEBUG env variable")
			}
			cfg.Debug = on
		}
	}
	return cfg, nil
}

// Logger builds the process logger: warnings only, or everything with Debug.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if c.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
