package validate

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textesc/cmd/textesc/common"
	"github.com/walteh/textesc/pkg/codepoint"
	"github.com/walteh/textesc/pkg/finder"
	"github.com/walteh/textesc/pkg/position"
)

// ErrInvalidFiles is returned when at least one file is not well-formed UTF-8.
var ErrInvalidFiles = errors.Base("invalid utf-8 found")

type Handler struct {
	opts               *common.Options
	color              bool
	ignoreEditorconfig bool
}

func NewValidateCommand(opts *common.Options) *cobra.Command {
	me := &Handler{opts: opts}

	cmd := &cobra.Command{
		Use:   "validate [glob...]",
		Short: "report the first malformed, overlong or surrogate sequence in each file",
		Long: `validate checks that files are well-formed UTF-8.

Globs are resolved relative to --dir and support ** (doublestar). With no
arguments the include globs from the config file are used. Files whose
.editorconfig charset is something other than utf-8 are skipped.`,
	}

	cmd.Flags().BoolVar(&me.color, "color", false, "colorize file positions")
	cmd.Flags().BoolVar(&me.ignoreEditorconfig, "ignore-editorconfig", false, "validate files regardless of their .editorconfig charset")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), args)
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, patterns []string) error {
	cfg, err := me.opts.LoadConfig(ctx)
	if err != nil {
		return err
	}

	if len(patterns) == 0 {
		patterns = cfg.Include
	}

	dir, err := filepath.Abs(me.opts.Dir)
	if err != nil {
		return errors.Errorf("resolving %s: %w", me.opts.Dir, err)
	}
	root := afero.NewBasePathFs(me.opts.Fs, dir)

	useEditorconfig := !cfg.IgnoreEditorconfig && !me.ignoreEditorconfig

	files, err := finder.NewGlobFinder(root, useEditorconfig).FindText(ctx, patterns)
	if err != nil {
		return err
	}

	var result *multierror.Error
	checked, invalid := 0, 0

	for _, file := range files {
		data, err := afero.ReadFile(root, file)
		if err != nil {
			return errors.Errorf("reading %s: %w", file, err)
		}
		checked++

		if err := codepoint.Check(data); err != nil {
			var inv *codepoint.InvalidError
			if !errors.As(err, &inv) {
				return err
			}
			fmt.Fprintln(me.opts.Stdout, me.format(file, data, inv))
			result = multierror.Append(result, errors.Errorf("%s: %w", file, err))
			invalid++
		}
	}

	zerolog.Ctx(ctx).Debug().Int("matched", len(files)).Int("checked", checked).Int("invalid", invalid).Msg("validated")

	if err := result.ErrorOrNil(); err != nil {
		return errors.Errorf("%w in %d of %d files: %s", ErrInvalidFiles, invalid, checked, err.Error())
	}

	return nil
}

// format renders an invalid sequence as path:line:col: reason, one-based.
func (me *Handler) format(file string, data []byte, inv *codepoint.InvalidError) string {
	pos := position.NewBytePosition(data, inv.Offset, inv.Length)
	rng := pos.GetRange(data)
	loc := fmt.Sprintf("%s:%d:%d", file, rng.Start.Line+1, rng.Start.Character+1)

	if me.color {
		loc = color.New(color.FgCyan).Sprint(loc)
	}

	return fmt.Sprintf("%s: %s (% x)", loc, inv.Reason, pos.Text)
}
