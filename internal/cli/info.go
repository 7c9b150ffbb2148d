package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	api "github.com/incomewatch/tax-estimator/api/v1alpha1"
	"github.com/incomewatch/tax-estimator/pkg/version"
)

type InfoOptions struct {
	GlobalOptions
	Output string
	Remote bool
}

func DefaultInfoOptions() *InfoOptions {
	return &InfoOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        "",
		Remote:        false,
	}
}

func NewCmdInfo() *cobra.Command {
	o := DefaultInfoOptions()
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print tax-estimator information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *InfoOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVarP(&o.Output, "output", "o", o.Output, outputHelp())
	fs.BoolVar(&o.Remote, "remote", o.Remote, "Get information from the remote service")
}

func (o *InfoOptions) Complete(cmd *cobra.Command, args []string) error {
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *InfoOptions) Validate() error {
	if err := o.GlobalOptions.Validate([]string{}); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

func (o *InfoOptions) Run(ctx context.Context, args []string) error {
	var info api.Info

	if o.Remote {
		remote, err := o.getRemoteInfo(ctx)
		if err != nil {
			return fmt.Errorf("failed to get remote info: %w", err)
		}
		info = *remote
	} else {
		versionInfo := version.Get()
		info = api.Info{
			GitCommit:   versionInfo.GitCommit,
			VersionName: versionInfo.GitVersion,
		}
	}

	return o.printInfo(info)
}

func (o *InfoOptions) getRemoteInfo(ctx context.Context) (*api.Info, error) {
	c, err := o.Client()
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	if c == nil {
		return nil, errors.New("no server configured, set --server-url or a client config file")
	}
	return c.Info(ctx)
}

func (o *InfoOptions) printInfo(info api.Info) error {
	if done, err := printStructured(o.out, o.Output, info); done {
		return err
	}

	source := "Local CLI"
	if o.Remote {
		source = "Remote Service"
	}
	_, err := fmt.Fprintf(o.out, "Tax Estimator %s Information:\n  Version Name: %s\n  Git Commit:   %s\n",
		source, info.VersionName, info.GitCommit)
	return err
}
