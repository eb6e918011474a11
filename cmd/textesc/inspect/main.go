package inspect

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/apparentlymart/go-textseg/v13/textseg"
	"github.com/rivo/uniseg"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textesc/cmd/textesc/common"
	"github.com/walteh/textesc/pkg/codepoint"
	"github.com/walteh/textesc/pkg/escape"
)

type Handler struct {
	opts *common.Options
}

func NewInspectCommand(opts *common.Options) *cobra.Command {
	me := &Handler{opts: opts}

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "print one row per decoded codepoint with its bytes, value and escaped form",
		Args:  cobra.MaximumNArgs(1),
	}

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

	summary, err := Inspect(me.opts.Stdout, src)
	if err != nil {
		return errors.Errorf("inspecting %s: %w", display, err)
	}

	zerolog.Ctx(ctx).Debug().Str("input", display).Interface("summary", summary).Msg("inspected")

	return nil
}

// Summary totals an inspected input.
type Summary struct {
	Bytes      int  `json:"bytes"`
	Codepoints int  `json:"codepoints"`
	Graphemes  int  `json:"graphemes"`
	Valid      bool `json:"valid"`
}

// Row describes a single decoded codepoint.
type Row struct {
	Offset    int
	Bytes     []byte
	Codepoint codepoint.Codepoint
	Escaped   string
	Width     int
}

// Rows decodes src one codepoint at a time. A sequence that fails to decode
// yields a U+FFFD row covering the single byte that was skipped.
func Rows(src []byte) []Row {
	var rows []Row
	var scratch [escape.MaxSequenceLen]byte

	for i := 0; i < len(src); {
		cp, n := codepoint.Decode(src[i:])

		buf := codepoint.NewBuffer(scratch[:])
		if !escape.AddEscape(buf, cp) {
			// values above the codepoint range have no escape form
			buf.Reset()
		}

		width := 0
		if cp >= ' ' && cp != 0x7F {
			width = uniseg.StringWidth(string(rune(cp)))
		}

		rows = append(rows, Row{
			Offset:    i,
			Bytes:     src[i : i+n],
			Codepoint: cp,
			Escaped:   buf.String(),
			Width:     width,
		})
		i += n
	}

	return rows
}

// Inspect writes the table of Rows followed by a Summary line.
func Inspect(w io.Writer, src []byte) (Summary, error) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "OFFSET\tBYTES\tCODEPOINT\tESCAPED\tWIDTH")
	for _, r := range Rows(src) {
		fmt.Fprintf(tw, "%d\t% x\t%v\t%s\t%d\n", r.Offset, r.Bytes, r.Codepoint, r.Escaped, r.Width)
	}
	if err := tw.Flush(); err != nil {
		return Summary{}, errors.Errorf("writing table: %w", err)
	}

	graphemes, err := textseg.TokenCount(src, textseg.ScanGraphemeClusters)
	if err != nil {
		return Summary{}, errors.Errorf("counting grapheme clusters: %w", err)
	}

	s := Summary{
		Bytes:      len(src),
		Codepoints: codepoint.Count(src),
		Graphemes:  graphemes,
		Valid:      len(src) == 0 || codepoint.Validate(src),
	}

	validity := "valid"
	if !s.Valid {
		validity = "invalid"
	}

	if _, err := fmt.Fprintln(w, strings.Join([]string{
		fmt.Sprintf("bytes=%d", s.Bytes),
		fmt.Sprintf("codepoints=%d", s.Codepoints),
		fmt.Sprintf("graphemes=%d", s.Graphemes),
		validity,
	}, " ")); err != nil {
		return Summary{}, errors.Errorf("writing summary: %w", err)
	}

	return s, nil
}
