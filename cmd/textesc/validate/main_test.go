package validate

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textesc/cmd/textesc/common"
	"github.com/walteh/textesc/pkg/codepoint"
)

func setup(t *testing.T, files map[string]string) (*common.Options, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	opts := &common.Options{
		Fs:     afero.NewMemMapFs(),
		Stdout: &out,
		Dir:    "/proj",
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(opts.Fs, "/proj/"+path, []byte(content), 0o644))
	}
	return opts, &out
}

func TestRun(t *testing.T) {
	tests := []struct {
		name               string
		files              map[string]string
		patterns           []string
		ignoreEditorconfig bool
		expectedOutput     string
		expectInvalid      bool
	}{
		{
			name: "all_valid",
			files: map[string]string{
				"a.txt":     "hello\n",
				"sub/b.txt": "caf\xC3\xA9\n",
				"fffd.txt":  "\xEF\xBF\xBD",
			},
			expectedOutput: "",
		},
		{
			name: "overlong_reported_with_line_and_column",
			files: map[string]string{
				"good.txt": "hello\n",
				"bad.txt":  "ok\nab\xC0\x80",
			},
			expectedOutput: "bad.txt:2:3: overlong encoding (c0 80)\n",
			expectInvalid:  true,
		},
		{
			name: "columns_count_codepoints",
			files: map[string]string{
				"col.txt": "\xC3\xA9\xC3\xA9\xED\xA0\x80",
			},
			expectedOutput: "col.txt:1:3: surrogate codepoint (ed a0 80)\n",
			expectInvalid:  true,
		},
		{
			name: "every_invalid_file_reported",
			files: map[string]string{
				"x/1.txt": "\xFF",
				"x/2.txt": "a\x80",
			},
			expectedOutput: "x/1.txt:1:1: malformed sequence (ff)\nx/2.txt:1:2: malformed sequence (80)\n",
			expectInvalid:  true,
		},
		{
			name: "patterns_limit_files",
			files: map[string]string{
				"keep.md": "fine",
				"skip.go": "\xFF",
			},
			patterns:       []string{"**/*.md"},
			expectedOutput: "",
		},
		{
			name: "editorconfig_charset_skips",
			files: map[string]string{
				".editorconfig": "root = true\n\n[*.lat]\ncharset = latin1\n",
				"old.lat":       "caf\xE9",
				"new.txt":       "cafe",
			},
			expectedOutput: "",
		},
		{
			name: "editorconfig_ignored_by_flag",
			files: map[string]string{
				".editorconfig": "root = true\n\n[*.lat]\ncharset = latin1\n",
				"old.lat":       "caf\xE9",
			},
			ignoreEditorconfig: true,
			expectedOutput:     "old.lat:1:4: malformed sequence (e9)\n",
			expectInvalid:      true,
		},
		{
			name: "editorconfig_ignored_by_config",
			files: map[string]string{
				".textesc.yaml": "ignore_editorconfig: true\ninclude: [\"*.lat\"]\n",
				".editorconfig": "[*.lat]\ncharset = latin1\n",
				"old.lat":       "caf\xE9",
			},
			expectedOutput: "old.lat:1:4: malformed sequence (e9)\n",
			expectInvalid:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, out := setup(t, tt.files)

			h := &Handler{opts: opts, ignoreEditorconfig: tt.ignoreEditorconfig}
			err := h.Run(context.Background(), tt.patterns)
			if tt.expectInvalid {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidFiles), "got %v", err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expectedOutput, out.String())
		})
	}
}

func TestRunBadGlob(t *testing.T) {
	opts, _ := setup(t, map[string]string{"a.txt": "a"})

	h := &Handler{opts: opts}
	err := h.Run(context.Background(), []string{"[a-"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid glob")
}

func TestFormatColor(t *testing.T) {
	opts, _ := setup(t, nil)
	data := []byte("\xFF")
	inv := &codepoint.InvalidError{Offset: 0, Length: 1, Reason: codepoint.ReasonMalformed}

	plain := (&Handler{opts: opts}).format("f.txt", data, inv)
	assert.Equal(t, "f.txt:1:1: malformed sequence (ff)", plain)

	colored := (&Handler{opts: opts, color: true}).format("f.txt", data, inv)
	assert.Contains(t, colored, "f.txt:1:1")
	assert.Contains(t, colored, "malformed sequence (ff)")
}
