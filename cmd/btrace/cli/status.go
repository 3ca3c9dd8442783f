package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/majorcontext/btrace"
	"github.com/majorcontext/btrace/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the tracing configuration this process would use",
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, source, err := resolveLogPath("")
		if err != nil {
			ui.Warnf("tracing disabled: no log destination configured")
			return nil
		}

		fmt.Printf("%s %s\n", ui.Bold("destination:"), dest)
		fmt.Printf("%s %s\n", ui.Bold("source:"), source)

		// The library ignores oversize environment values rather than
		// truncating them; surface that before someone loses records to it.
		if env := os.Getenv(btrace.LogEnvVar); len(env) >= 1024 {
			ui.Warnf("$%s exceeds the accepted length; traced processes will not log", btrace.LogEnvVar)
			return nil
		}
		fmt.Printf("%s traced processes will append to this file\n", ui.OKTag())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
