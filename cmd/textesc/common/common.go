package common

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textesc/pkg/config"
	"github.com/walteh/textesc/pkg/escape"
)

// StdinArg selects standard input in place of a file name.
const StdinArg = "-"

// Options is the state shared by every subcommand. Tests swap the
// filesystem and streams.
type Options struct {
	Fs     afero.Fs
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Dir is where the config file is looked up and globs are resolved
	Dir string
	// ConfigPath overrides the config lookup in Dir
	ConfigPath string
	// Policy overrides the configured escape policy when set
	Policy string
}

func NewOptions() *Options {
	return &Options{
		Fs:     afero.NewOsFs(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Dir:    ".",
	}
}

// LoadConfig loads the explicit config file, or finds one in Dir, and
// applies command line overrides.
func (o *Options) LoadConfig(ctx context.Context) (*config.Config, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)

	if o.ConfigPath != "" {
		path = o.ConfigPath
		cfg, err = config.Load(o.Fs, path)
	} else {
		cfg, path, err = config.Find(o.Fs, o.Dir)
	}
	if err != nil {
		return nil, err
	}

	if o.Policy != "" {
		cfg.Policy = o.Policy
		if err := cfg.Validate(); err != nil {
			return nil, errors.Errorf("--policy: %w", err)
		}
	}

	zerolog.Ctx(ctx).Debug().Str("config", path).Str("policy", cfg.Policy).Int("buffer_size", cfg.BufferSize).Msg("config loaded")

	return cfg, nil
}

// EscapePolicy loads the config and resolves its escape policy.
func (o *Options) EscapePolicy(ctx context.Context) (*config.Config, escape.Policy, error) {
	cfg, err := o.LoadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	policy, err := cfg.EscapePolicy()
	if err != nil {
		return nil, nil, err
	}
	return cfg, policy, nil
}

// ReadInput reads the named file, relative to Dir, or standard input for
// StdinArg and the empty name. It returns the bytes and a display name.
func (o *Options) ReadInput(ctx context.Context, name string) ([]byte, string, error) {
	if name == "" || name == StdinArg {
		data, err := io.ReadAll(o.Stdin)
		if err != nil {
			return nil, "", errors.Errorf("reading stdin: %w", err)
		}
		zerolog.Ctx(ctx).Debug().Int("bytes", len(data)).Msg("read stdin")
		return data, "<stdin>", nil
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(o.Dir, path)
	}
	data, err := afero.ReadFile(o.Fs, path)
	if err != nil {
		return nil, "", errors.Errorf("reading %s: %w", name, err)
	}
	zerolog.Ctx(ctx).Debug().Str("file", path).Int("bytes", len(data)).Msg("read file")
	return data, name, nil
}
