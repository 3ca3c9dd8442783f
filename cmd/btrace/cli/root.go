// Package cli implements the btrace command-line interface using Cobra.
// It launches commands with exec tracing configured and inspects the
// tracing setup.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/majorcontext/btrace/internal/log"
)

var (
	verbose bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "btrace",
	Short: "btrace - process execution tracing for build capture and auditing",
	Long: `btrace records process-image-replacement calls to a shared log file so
process lineage can be reconstructed afterwards.

btrace run exports the log destination and replaces itself with the given
command; every descendant that execs through the btrace library appends
one record to the same file.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Init(log.Options{
			Verbose:    verbose,
			JSONFormat: jsonOut,
		})
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output logs in JSON format")
}
