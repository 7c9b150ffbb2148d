package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/incomewatch/tax-estimator/internal/cli"
)

func main() {
	command := NewTaxCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewTaxCtlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxctl [flags] [options]",
		Short: "taxctl estimates US federal income tax and what it pays for.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdEstimate())
	cmd.AddCommand(cli.NewCmdBrackets())
	cmd.AddCommand(cli.NewCmdCatalog())
	cmd.AddCommand(cli.NewCmdReport())
	cmd.AddCommand(cli.NewCmdInfo())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
