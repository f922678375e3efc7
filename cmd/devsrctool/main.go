package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagConfig string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "devsrctool",
	Short:         "Debuggee source attribution resolver",
	Long:          "devsrctool attaches to a Chromium debugging target, resolves each parsed script into a canonical source record, and streams createSourceActor messages for eligible sources.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default: devsrctool.yaml or DEVSRCTOOL_CONFIG)")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(sourcesCmd)
}
