package escape

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textesc/cmd/textesc/common"
	"github.com/walteh/textesc/pkg/codepoint"
	textescape "github.com/walteh/textesc/pkg/escape"
)

type Handler struct {
	opts       *common.Options
	bufferSize int
}

func NewEscapeCommand(opts *common.Options) *cobra.Command {
	me := &Handler{opts: opts}

	cmd := &cobra.Command{
		Use:   "escape [file]",
		Short: "replace characters that are unsafe in a string literal with escape sequences",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.Flags().IntVar(&me.bufferSize, "buffer-size", 0, "size in bytes of the output staging buffer (default from config)")

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
	cfg, policy, err := me.opts.EscapePolicy(ctx)
	if err != nil {
		return err
	}

	size := cfg.BufferSize
	if me.bufferSize != 0 {
		size = me.bufferSize
	}
	if size < textescape.MaxSequenceLen {
		return errors.Errorf("buffer size %d is smaller than the longest escape sequence (%d)", size, textescape.MaxSequenceLen)
	}

	src, display, err := me.opts.ReadInput(ctx, name)
	if err != nil {
		return err
	}

	flushes, err := EscapeTo(me.opts.Stdout, src, policy, size)
	if err != nil {
		return errors.Errorf("escaping %s: %w", display, err)
	}

	zerolog.Ctx(ctx).Debug().Str("input", display).Int("bytes", len(src)).Int("flushes", flushes).Msg("escaped")

	return nil
}

// EscapeTo escapes src into w through a fixed staging buffer of size bytes.
// Whenever the next sequence does not fit, the buffer is flushed and the
// write retried. It returns the number of flushes.
func EscapeTo(w io.Writer, src []byte, policy textescape.Policy, size int) (int, error) {
	buf := codepoint.NewBuffer(make([]byte, size))
	flushes := 0

	flush := func() error {
		if buf.Len() == 0 {
			return nil
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return errors.Errorf("writing output: %w", err)
		}
		buf.Reset()
		flushes++
		return nil
	}

	for i := 0; i < len(src); {
		cp, n := codepoint.Decode(src[i:])
		if !textescape.Emit(buf, cp, policy) {
			if err := flush(); err != nil {
				return flushes, err
			}
			if !textescape.Emit(buf, cp, policy) {
				return flushes, errors.Errorf("%v does not fit in a %d byte buffer", cp, size)
			}
		}
		i += n
	}

	return flushes, flush()
}
