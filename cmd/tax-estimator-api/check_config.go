package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/incomewatch/tax-estimator/internal/config"
	"github.com/incomewatch/tax-estimator/internal/format"
	"github.com/incomewatch/tax-estimator/internal/handlers/validator"
	"github.com/incomewatch/tax-estimator/internal/service"
)

type configForm struct {
	BracketsFile           string  `validate:"optional_file"`
	CatalogFile            string  `validate:"optional_file"`
	ContributionMultiplier float64 `validate:"multiplier"`
}

var checkConfigCmd = &cobra.Command{
	Use:          "check-config",
	Short:        "Validate the configuration and print the bracket schedule and catalog it selects",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}

		v := validator.NewValidator()
		v.Register(validator.NewConfigValidationRules()...)
		if err := v.Struct(configForm{
			BracketsFile:           cfg.Service.BracketsFile,
			CatalogFile:            cfg.Service.CatalogFile,
			ContributionMultiplier: cfg.Service.ContributionMultiplier,
		}); err != nil {
			return err
		}

		estimationSrv, err := service.NewEstimationServiceFromFiles(cfg.Service.BracketsFile, cfg.Service.CatalogFile, cfg.Service.ContributionMultiplier)
		if err != nil {
			return err
		}

		brackets := format.NewTable(format.ASCII)
		brackets.Title("Brackets")
		brackets.Header("Rate", "Up To")
		for _, b := range estimationSrv.Schedule() {
			brackets.Row(format.Percent(b.Rate), format.Cap(b.Cap))
		}

		items := format.NewTable(format.ASCII)
		items.Title("Reference Costs")
		items.Header("Item", "Manufacturer", "Unit Cost")
		for _, i := range estimationSrv.Catalog().Items {
			items.Row(i.Name, i.Manufacturer, format.Money(i.Cost))
		}

		out := cmd.OutOrStdout()
		_, err = fmt.Fprintf(out, "%s\n\n%s\n\nContribution multiplier: %v\nConfiguration OK\n",
			brackets.String(), items.String(), estimationSrv.Multiplier())
		return err
	},
}
