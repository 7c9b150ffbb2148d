package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	api "github.com/incomewatch/tax-estimator/api/v1alpha1"
	"github.com/incomewatch/tax-estimator/internal/format"
)

type EstimateOptions struct {
	GlobalOptions

	Output string
}

func DefaultEstimateOptions() *EstimateOptions {
	return &EstimateOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        tableFormat,
	}
}

func NewCmdEstimate() *cobra.Command {
	o := DefaultEstimateOptions()
	cmd := &cobra.Command{
		Use:   "estimate [INCOME]",
		Short: "Estimate the federal income tax owed on an annual income.",
		Long: `Estimate the federal income tax owed on an annual income.

INCOME may use "$" and "," grouping, e.g. "$60,000". Anything that is not a
number, including a missing INCOME, is estimated as 0. Negative amounts are
estimated as 0; they may be given directly (taxctl estimate -5000) or after
"--" (taxctl estimate -o json -- -5000).`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			args, helped, err := parseArgsWithNumbers(cmd, args, cobra.MaximumNArgs(1))
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

func (o *EstimateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, outputHelp())
}

func (o *EstimateOptions) Complete(cmd *cobra.Command, args []string) error {
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *EstimateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

func (o *EstimateOptions) Run(ctx context.Context, args []string) error {
	income := ""
	if len(args) > 0 {
		income = args[0]
	}

	estimator, err := o.Estimator()
	if err != nil {
		return err
	}
	estimate, err := estimator.Estimate(ctx, income)
	if err != nil {
		return fmt.Errorf("estimating: %w", err)
	}

	if done, err := printStructured(o.out, o.Output, estimate); done {
		return err
	}
	return printEstimate(o.out, tableMode(o.Output), estimate)
}

func printEstimate(w io.Writer, mode format.Mode, e *api.Estimate) error {
	summary := format.NewTable(mode)
	summary.Title("Income Tax Estimate")
	summary.Header("Metric", "Value")
	summary.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	summary.Row("Annual Income", format.Grouped(e.Income))
	summary.Row("Federal Income Tax", format.Money(e.FederalTax))
	summary.Row("Marginal Rate", format.Percent(e.MarginalRate))
	summary.Row("Effective Rate", format.Percent(e.EffectiveRate))
	summary.Row("Contribution", format.Money(e.Contribution))

	breakdown := format.NewTable(mode)
	breakdown.Title("Bracket Breakdown")
	breakdown.Header("Rate", "From", "To", "Taxable", "Tax")
	breakdown.Columns(
		format.ColumnConfig{Number: 2, Align: format.AlignRight},
		format.ColumnConfig{Number: 3, Align: format.AlignRight},
		format.ColumnConfig{Number: 4, Align: format.AlignRight},
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
	)
	for _, s := range e.Breakdown {
		breakdown.Row(format.Percent(s.Rate), format.Money(s.Floor), capOrOpen(s.Cap), format.Money(s.Taxable), format.Money(s.Tax))
	}
	breakdown.Footer("", "", "", "Total", format.Money(e.FederalTax))

	purchases := format.NewTable(mode)
	purchases.Title(fmt.Sprintf("Your contribution of %s buys", format.Money(e.Contribution)))
	purchases.Header("Units", "Item", "Manufacturer")
	purchases.Columns(
		format.ColumnConfig{Number: 1, Align: format.AlignRight},
		format.ColumnConfig{Number: 2, MaxWidth: 48},
	)
	for _, p := range e.Purchases {
		purchases.Row(format.Units(p.Units), p.Name, p.Manufacturer)
	}

	organizations := format.NewTable(mode)
	organizations.Title("Organizations")
	organizations.Header("Name", "Website")
	for _, org := range e.Organizations {
		organizations.Row(org.Name, org.Website)
	}

	_, err := fmt.Fprintf(w, "%s\n\n%s\n\n%s\n\n%s\n\n%s\n",
		summary.String(), e.Reaction, breakdown.String(), purchases.String(), organizations.String())
	return err
}
