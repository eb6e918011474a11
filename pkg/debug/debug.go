package debug

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// LoggerOptions configures NewLogger
type LoggerOptions struct {
	Level   zerolog.Level
	Color   bool
	Caller  bool
	RunID   string
	Command string
}

// NewLogger builds the console logger the CLI puts on its context.
func NewLogger(out io.Writer, opts LoggerOptions) zerolog.Logger {
	w := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !opts.Color,
		TimeFormat: time.TimeOnly,
	}

	zctx := zerolog.New(w).Level(opts.Level).With().Timestamp()
	if opts.RunID != "" {
		zctx = zctx.Str("run_id", opts.RunID)
	}
	if opts.Command != "" {
		zctx = zctx.Str("command", opts.Command)
	}

	logger := zctx.Logger()
	if opts.Caller {
		logger = logger.Hook(CallerHook{WithColor: opts.Color})
	}
	return logger
}

// CallerHook adds a short "pkg:file:line" caller field to every event.
type CallerHook struct {
	WithColor bool
}

func (c CallerHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	// Run <- Event.msg <- Event.Msg <- caller
	pc, file, line, ok := runtime.Caller(3)
	if !ok {
		return
	}

	pkg := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		pkg, _ = SplitFuncName(fn.Name())
	}

	e.Str("caller", FormatCaller(pkg, file, line, c.WithColor))
}

// SplitFuncName splits a runtime function name such as
// "github.com/walteh/textesc/cmd/textesc/validate.(*Handler).Run" into its
// package path and function part.
func SplitFuncName(name string) (pkg, function string) {
	lastSlash := strings.LastIndexByte(name, '/')
	if lastSlash < 0 {
		lastSlash = 0
	}

	firstDot := strings.IndexByte(name[lastSlash:], '.')
	if firstDot < 0 {
		return name, ""
	}
	firstDot += lastSlash

	return name[:firstDot], name[firstDot+1:]
}

func FormatCaller(pkg, path string, line int, colorize bool) string {
	file := FileNameOfPath(path)
	if colorize {
		file = color.New(color.Bold).Sprint(file)
		num := color.New(color.FgHiRed, color.Bold).Sprintf("%d", line)
		sep := color.New(color.Faint).Sprint(":")
		return fmt.Sprintf("%s%s%s%s%s", pkg, sep, file, sep, num)
	}
	return fmt.Sprintf("%s:%s:%d", pkg, file, line)
}

func FileNameOfPath(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
