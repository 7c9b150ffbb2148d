package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "tax-estimator-api",
	Short: "Serve income tax estimates over HTTP. Configured through TAX_ESTIMATOR_* environment variables.",
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkConfigCmd)
}
