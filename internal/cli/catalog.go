package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/incomewatch/tax-estimator/internal/format"
)

type CatalogOptions struct {
	GlobalOptions

	Output string
}

func DefaultCatalogOptions() *CatalogOptions {
	return &CatalogOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        tableFormat,
	}
}

func NewCmdCatalog() *cobra.Command {
	o := DefaultCatalogOptions()
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Display the reference costs and the organizations directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

func (o *CatalogOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, outputHelp())
}

func (o *CatalogOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

func (o *CatalogOptions) Run(ctx context.Context, args []string) error {
	estimator, err := o.Estimator()
	if err != nil {
		return err
	}
	c, err := estimator.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}

	if done, err := printStructured(o.out, o.Output, c); done {
		return err
	}

	items := format.NewTable(tableMode(o.Output))
	items.Title("Reference Costs")
	items.Header("Item", "Manufacturer", "Unit Cost")
	items.Columns(format.ColumnConfig{Number: 3, Align: format.AlignRight})
	for _, i := range c.Items {
		items.Row(i.Name, i.Manufacturer, format.Money(i.Cost))
	}

	organizations := format.NewTable(tableMode(o.Output))
	organizations.Title("Organizations")
	organizations.Header("Name", "Website")
	for _, org := range c.Organizations {
		organizations.Row(org.Name, org.Website)
	}

	_, err = fmt.Fprintf(o.out, "%s\n\n%s\n", items.String(), organizations.String())
	return err
}
