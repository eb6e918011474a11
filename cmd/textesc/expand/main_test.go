package expand

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textesc/cmd/textesc/common"
	"github.com/walteh/textesc/pkg/codepoint"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		strict         bool
		expectedOutput string
		expectedErr    error
	}{
		{
			name:           "aliases_and_hex",
			input:          `x\x41\n\t!`,
			expectedOutput: "xA\n\t!",
		},
		{
			name:           "octal",
			input:          `\101\7`,
			expectedOutput: "A\a",
		},
		{
			name:           "invalid_escape_copied",
			input:          `a\xZZ`,
			expectedOutput: `a\xZZ`,
		},
		{
			name:           "truncated_escape_dropped",
			input:          `ab\x4`,
			expectedOutput: "ab",
		},
		{
			name:           "raw_invalid_bytes_pass_without_strict",
			input:          "a\xFFb",
			expectedOutput: "a\xFFb",
		},
		{
			name:        "raw_invalid_bytes_fail_with_strict",
			input:       "a\xFFb",
			strict:      true,
			expectedErr: &codepoint.InvalidError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			opts := &common.Options{
				Fs:     afero.NewMemMapFs(),
				Stdin:  strings.NewReader(tt.input),
				Stdout: &out,
				Dir:    "/proj",
			}

			h := &Handler{opts: opts, strict: tt.strict}
			err := h.Run(context.Background(), common.StdinArg)
			if tt.expectedErr != nil {
				require.Error(t, err)
				var inv *codepoint.InvalidError
				require.True(t, errors.As(err, &inv), "got %v", err)
				assert.Equal(t, 1, inv.Offset)
				assert.Empty(t, out.String(), "nothing is written on failure")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedOutput, out.String())
		})
	}
}

func TestRunFile(t *testing.T) {
	var out bytes.Buffer
	opts := &common.Options{Fs: afero.NewMemMapFs(), Stdout: &out, Dir: "/proj"}
	require.NoError(t, afero.WriteFile(opts.Fs, "/proj/in.txt", []byte(`caf\xE9`), 0o644))

	h := &Handler{opts: opts}
	require.NoError(t, h.Run(context.Background(), "in.txt"))
	assert.Equal(t, "caf\xC3\xA9", out.String())
}
