package expand

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textesc/cmd/textesc/common"
	"github.com/walteh/textesc/pkg/codepoint"
	"github.com/walteh/textesc/pkg/escape"
)

type Handler struct {
	opts   *common.Options
	strict bool
}

func NewExpandCommand(opts *common.Options) *cobra.Command {
	me := &Handler{opts: opts}

	cmd := &cobra.Command{
		Use:   "expand [file]",
		Short: "replace escape sequences with the characters they stand for",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.Flags().BoolVar(&me.strict, "strict", false, "fail when the expanded text is not well-formed UTF-8")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		name := common.StdinArg
		if len(args) > 0 {
			name = args[0]
		}
		return me.Run(cmd.Context(), name)
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, name string) error {
	src, display, err := me.opts.ReadInput(ctx, name)
	if err != nil {
		return err
	}

	out := escape.Expand(src)

	if me.strict {
		if err := codepoint.Check([]byte(out)); err != nil {
			return errors.Errorf("expanding %s: %w", display, err)
		}
	}

	if _, err := io.WriteString(me.opts.Stdout, out); err != nil {
		return errors.Errorf("writing output: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("input", display).Int("in_bytes", len(src)).Int("out_bytes", len(out)).Msg("expanded")

	return nil
}
