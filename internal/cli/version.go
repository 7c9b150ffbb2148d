package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/incomewatch/tax-estimator/pkg/version"
)

type VersionOptions struct {
	out io.Writer
}

func DefaultVersionOptions() *VersionOptions {
	return &VersionOptions{out: os.Stdout}
}

func NewCmdVersion() *cobra.Command {
	o := DefaultVersionOptions()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print taxctl version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.out = cmd.OutOrStdout()
			return o.Run(cmd.Context(), args)
		},
	}
	return cmd
}

func (o *VersionOptions) Run(ctx context.Context, args []string) error {
	_, err := fmt.Fprintf(o.out, "taxctl Version: %s\n", version.Get().String())
	return err
}
