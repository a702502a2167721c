package main

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "eventkernel",
	Short: "eventkernel runs workloads on a discrete-event simulation kernel.",
	Long: `eventkernel runs workloads on a discrete-event simulation kernel ` +
		`and reports the state of its event list and process queues.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
