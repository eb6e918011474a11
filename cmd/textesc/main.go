package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textesc/cmd/textesc/common"
	escape_cmd "github.com/walteh/textesc/cmd/textesc/escape"
	expand_cmd "github.com/walteh/textesc/cmd/textesc/expand"
	inspect_cmd "github.com/walteh/textesc/cmd/textesc/inspect"
	validate_cmd "github.com/walteh/textesc/cmd/textesc/validate"
	tdebug "github.com/walteh/textesc/pkg/debug"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	rootCmd := newRootCommand(common.NewOptions())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}

func newRootCommand(opts *common.Options) *cobra.Command {
	var debugLogs bool

	rootCmd := &cobra.Command{
		Use:           "textesc",
		Short:         "escape, expand and validate UTF-8 text",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "write debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default: .textesc.hcl, .textesc.yaml or .textesc.yml in --dir)")
	rootCmd.PersistentFlags().StringVar(&opts.Dir, "dir", opts.Dir, "directory the config is found in and globs are resolved against")
	rootCmd.PersistentFlags().StringVar(&opts.Policy, "policy", "", "escape policy, overrides the config")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := zerolog.InfoLevel
		if debugLogs {
			level = zerolog.DebugLevel
		}

		useColor := false
		if f, ok := opts.Stderr.(*os.File); ok {
			useColor = isatty.IsTerminal(f.Fd())
		}

		logger := tdebug.NewLogger(opts.Stderr, tdebug.LoggerOptions{
			Level:   level,
			Color:   useColor,
			Caller:  debugLogs,
			RunID:   uuid.NewString(),
			Command: cmd.Name(),
		})

		cmd.SetContext(logger.WithContext(cmd.Context()))
		return nil
	}

	cmdVersion := &cobra.Command{
		Use: "raw-version",
		Run: func(cmdz *cobra.Command, args []string) {
			cmdz.Println(rootCmd.Version)
		},
		Hidden: true,
	}

	rootCmd.AddCommand(cmdVersion)

	rootCmd.AddCommand(escape_cmd.NewEscapeCommand(opts))
	rootCmd.AddCommand(expand_cmd.NewExpandCommand(opts))
	rootCmd.AddCommand(validate_cmd.NewValidateCommand(opts))
	rootCmd.AddCommand(inspect_cmd.NewInspectCommand(opts))

	rootCmd.SetIn(opts.Stdin)
	rootCmd.SetOut(opts.Stdout)
	rootCmd.SetErr(opts.Stderr)

	return rootCmd
}
