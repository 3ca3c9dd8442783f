package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/majorcontext/btrace"
	"github.com/majorcontext/btrace/internal/config"
	"github.com/majorcontext/btrace/internal/log"
)

var runLogPath string

// errNoDestination means neither flag, environment, nor config named a log
// file.
var errNoDestination = errors.New("no log destination configured (use --log, $" +
	btrace.LogEnvVar + ", or log.path in ~/.btrace/config.yaml)")

// resolveLogPath picks the trace destination: --log flag, then
// $BTRACE_LOG, then the config file. The result is absolute so descendants
// that change directory keep appending to the same file. The returned
// source names where the value came from.
func resolveLogPath(flagValue string) (path, source string, err error) {
	switch {
	case flagValue != "":
		path, source = flagValue, "flag"
	case os.Getenv(btrace.LogEnvVar) != "":
		path, source = os.Getenv(btrace.LogEnvVar), "environment"
	default:
		cfg, _ := config.Load()
		if cfg.Log.Path == "" {
			return "", "", errNoDestination
		}
		path, source = cfg.Log.Path, "config"
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("resolving log path: %w", err)
	}
	return abs, source, nil
}

var runCmd = &cobra.Command{
	Use:   "run [flags] -- command [args...]",
	Short: "Run a command with exec tracing enabled",
	Long: `Run exports the trace log destination in the environment and replaces the
btrace process with the given command, logging that replacement as the
first record of the lineage. Control returns only if the command cannot
be executed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, source, err := resolveLogPath(runLogPath)
		if err != nil {
			return err
		}
		log.Debug("tracing enabled", "destination", dest, "source", source)

		if err := os.Setenv(btrace.LogEnvVar, dest); err != nil {
			return fmt.Errorf("exporting %s: %w", btrace.LogEnvVar, err)
		}

		// Replaces the process image; nothing below runs on success.
		err = btrace.Execvp(args[0], args)
		return fmt.Errorf("exec %s: %w", args[0], err)
	},
}

func init() {
	runCmd.Flags().StringVar(&runLogPath, "log", "", "trace log destination file")
	rootCmd.AddCommand(runCmd)
}
