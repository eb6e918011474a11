package debug_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/walteh/textesc/pkg/debug"
)

func TestSplitFuncName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPkg  string
		wantFunc string
	}{
		{
			name:     "method",
			input:    "github.com/walteh/textesc/cmd/textesc/validate.(*Handler).Run",
			wantPkg:  "github.com/walteh/textesc/cmd/textesc/validate",
			wantFunc: "(*Handler).Run",
		},
		{
			name:     "function",
			input:    "github.com/walteh/textesc/pkg/escape.Insert",
			wantPkg:  "github.com/walteh/textesc/pkg/escape",
			wantFunc: "Insert",
		},
		{
			name:     "no_package_path",
			input:    "main.main",
			wantPkg:  "main",
			wantFunc: "main",
		},
		{
			name:     "no_dot",
			input:    "weird",
			wantPkg:  "weird",
			wantFunc: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, fn := debug.SplitFuncName(tt.input)
			assert.Equal(t, tt.wantPkg, pkg)
			assert.Equal(t, tt.wantFunc, fn)
		})
	}
}

func TestFormatCaller(t *testing.T) {
	assert.Equal(t, "pkg/escape:emit.go:42", debug.FormatCaller("pkg/escape", "/src/pkg/escape/emit.go", 42, false))
	assert.Equal(t, "main.go", debug.FileNameOfPath("main.go"))
}

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer
	logger := debug.NewLogger(&out, debug.LoggerOptions{
		Level:   zerolog.InfoLevel,
		Caller:  true,
		RunID:   "run-1",
		Command: "validate",
	})

	logger.Debug().Msg("hidden")
	logger.Info().Str("file", "a.txt").Msg("checked")

	got := out.String()
	assert.NotContains(t, got, "hidden")
	assert.Contains(t, got, "checked")
	assert.Contains(t, got, "run_id=run-1")
	assert.Contains(t, got, "command=validate")
	assert.Contains(t, got, "file=a.txt")
	assert.Contains(t, got, "debug_test.go")
}
