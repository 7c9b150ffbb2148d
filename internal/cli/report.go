package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	api "github.com/incomewatch/tax-estimator/api/v1alpha1"
)

type ReportOptions struct {
	GlobalOptions

	Format        string
	OutputFile    string
	NoComparisons bool

	format api.ReportFormat
}

func DefaultReportOptions() *ReportOptions {
	return &ReportOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Format:        string(api.ReportFormatCSV),
	}
}

func NewCmdReport() *cobra.Command {
	o := DefaultReportOptions()
	cmd := &cobra.Command{
		Use:   "report INCOME",
		Short: "Export an estimate as a CSV, HTML or XLSX report.",
		Long: `Export an estimate as a CSV, HTML or XLSX report.

A negative INCOME is estimated as 0. It may be given directly or after "--".`,
		Example: `  taxctl report 60000
  taxctl report '$1,000,000' -f xlsx --out estimate.xlsx
  taxctl report -f html -- -5000`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			args, helped, err := parseArgsWithNumbers(cmd, args, cobra.ExactArgs(1))
			if err != nil || helped {
				return err
			}
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *ReportOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Format, "format", "f", o.Format, "Report format. One of: (csv, html, xlsx).")
	fs.StringVar(&o.OutputFile, "out", o.OutputFile, "File to write the report to. Defaults to stdout.")
	fs.BoolVar(&o.NoComparisons, "no-comparisons", o.NoComparisons, "Leave out the purchases and organizations sections.")
}

func (o *ReportOptions) Complete(cmd *cobra.Command, args []string) error {
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *ReportOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	f, ok := api.StringToReportFormat(o.Format)
	if !ok {
		return fmt.Errorf("report format %q is not supported, use one of: csv, html, xlsx", o.Format)
	}
	o.format = f
	return nil
}

func (o *ReportOptions) Run(ctx context.Context, args []string) error {
	estimator, err := o.Estimator()
	if err != nil {
		return err
	}

	content, err := estimator.Report(ctx, args[0], o.format, !o.NoComparisons)
	if err != nil {
		return fmt.Errorf("generating report: %w", err)
	}

	if o.OutputFile == "" {
		_, err = o.out.Write(content)
		return err
	}
	if err := os.WriteFile(o.OutputFile, content, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	_, err = fmt.Fprintf(o.out, "Report written to %s\n", o.OutputFile)
	return err
}
