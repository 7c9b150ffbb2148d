package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/incomewatch/tax-estimator/internal/format"
)

type BracketsOptions struct {
	GlobalOptions

	Output string
}

func DefaultBracketsOptions() *BracketsOptions {
	return &BracketsOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        tableFormat,
	}
}

func NewCmdBrackets() *cobra.Command {
	o := DefaultBracketsOptions()
	cmd := &cobra.Command{
		Use:   "brackets",
		Short: "Display the bracket schedule in use.",
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

func (o *BracketsOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, outputHelp())
}

func (o *BracketsOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

func (o *BracketsOptions) Run(ctx context.Context, args []string) error {
	estimator, err := o.Estimator()
	if err != nil {
		return err
	}
	brackets, err := estimator.Brackets(ctx)
	if err != nil {
		return fmt.Errorf("listing brackets: %w", err)
	}

	// yaml output can be fed back through --brackets-file
	if done, err := printStructured(o.out, o.Output, brackets); done {
		return err
	}

	t := format.NewTable(tableMode(o.Output))
	t.Title("Federal Income Tax Brackets")
	t.Header("Rate", "From", "To")
	t.Columns(
		format.ColumnConfig{Number: 2, Align: format.AlignRight},
		format.ColumnConfig{Number: 3, Align: format.AlignRight},
	)
	floor := 0.0
	for _, b := range brackets.Brackets {
		t.Row(format.Percent(b.Rate), format.Money(floor), capOrOpen(b.Cap))
		if b.Cap != nil {
			floor = *b.Cap
		}
	}
	_, err = fmt.Fprintln(o.out, t.String())
	return err
}
