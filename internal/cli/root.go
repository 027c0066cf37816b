// Package cli implements the tabulate command-line interface: the host
// shell that chooses the input document, configures the export engine,
// and reports its log and progress callbacks.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/tabulate/internal/logging"
	"github.com/mesh-intelligence/tabulate/pkg/tabulate"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks err as caused by the input or the invocation.
func userError(err error) error {
	return &exitError{code: exitUserError, err: err}
}

// sysError marks err as caused by the environment (I/O, storage).
func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// ExitCode maps a command error to a process exit code. Errors that carry
// no code are user errors (bad flags, wrong argument count).
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// app holds state shared by all subcommands of one command tree.
type app struct {
	v         *viper.Viper
	configDir string
	jsonMode  bool
}

// NewRootCmd creates the top-level "tabulate" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:     "tabulate",
		Short:   "Convert catalog JSON into size-bounded CSV chunks",
		Long:    "Tabulate converts a product catalog array or a schema+data catalog document\ninto delimited text files, each kept below a byte budget.",
		Version: tabulate.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().String("log-level", defaultLogLevel, "log level: debug, info, warn, error")
	root.PersistentFlags().String("log-format", defaultLogFormat, "log format: text or json")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output in JSON format")
	bindFlag(a.v, cfgKeyLogLevel, root.PersistentFlags().Lookup("log-level"))
	bindFlag(a.v, cfgKeyLogFormat, root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(a.newExportCmd())
	root.AddCommand(a.newDetectCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	// A .env file in the working directory is optional.
	_ = godotenv.Load()

	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tabulate:", err)
		os.Exit(ExitCode(err))
	}
}

// logger builds the command logger from resolved settings. Logs go to
// stderr so --json output on stdout stays parseable.
func (a *app) logger(cmd *cobra.Command, s settings) *slog.Logger {
	return logging.Setup(s.LogLevel, s.LogFormat, cmd.ErrOrStderr())
}
