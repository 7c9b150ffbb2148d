package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	api "github.com/incomewatch/tax-estimator/api/v1alpha1"
	"github.com/incomewatch/tax-estimator/internal/client"
	"github.com/incomewatch/tax-estimator/internal/config"
	"github.com/incomewatch/tax-estimator/internal/handlers/v1alpha1/mappers"
	"github.com/incomewatch/tax-estimator/internal/service"
)

// Estimator is what the commands need, served either in process or by a remote API server.
type Estimator interface {
	Estimate(ctx context.Context, income string) (*api.Estimate, error)
	Brackets(ctx context.Context) (*api.BracketList, error)
	Catalog(ctx context.Context) (*api.Catalog, error)
	Report(ctx context.Context, income string, format api.ReportFormat, comparisons bool) ([]byte, error)
}

type GlobalOptions struct {
	ServerUrl      string
	ConfigFilePath string
	BracketsFile   string
	CatalogFile    string
	Multiplier     float64

	out io.Writer
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		ConfigFilePath: client.DefaultClientConfigPath(),
		Multiplier:     config.DefaultContributionMultiplier,
		out:            os.Stdout,
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ServerUrl, "server-url", "u", o.ServerUrl, "Address of a tax-estimator API server. Estimates are computed locally when empty.")
	fs.StringVarP(&o.ConfigFilePath, "config", "c", o.ConfigFilePath, "Path to the client config file, used when it exists and --server-url is not set.")
	fs.StringVar(&o.BracketsFile, "brackets-file", o.BracketsFile, "YAML bracket schedule replacing the 2024 single-filer brackets.")
	fs.StringVar(&o.CatalogFile, "catalog-file", o.CatalogFile, "YAML catalog replacing the built-in reference costs and organizations.")
	fs.Float64Var(&o.Multiplier, "multiplier", o.Multiplier, "Share of the federal income tax reported as the contribution.")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	o.out = cmd.OutOrStdout()
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if o.ServerUrl != "" && (o.BracketsFile != "" || o.CatalogFile != "" || o.Multiplier != config.DefaultContributionMultiplier) {
		return errors.New("--brackets-file, --catalog-file and --multiplier only apply to local estimates")
	}
	return nil
}

// Client returns the API client for --server-url or, failing that, the client config file.
// It returns nil without an error when neither is set.
func (o *GlobalOptions) Client() (*client.EstimatorClient, error) {
	if o.ServerUrl != "" {
		return client.NewFromConfig(&client.Config{Service: client.Service{Server: o.ServerUrl}})
	}
	if o.ConfigFilePath == "" {
		return nil, nil
	}
	if _, err := os.Stat(o.ConfigFilePath); err != nil {
		return nil, nil
	}
	cfg, err := client.ParseConfigFile(o.ConfigFilePath)
	if err != nil {
		return nil, fmt.Errorf("loading client config: %w", err)
	}
	return client.NewFromConfig(cfg)
}

// Estimator returns the remote client when a server is configured and an in-process estimator otherwise.
// Local bracket or catalog files always select the in-process estimator.
func (o *GlobalOptions) Estimator() (Estimator, error) {
	if o.ServerUrl != "" || (o.BracketsFile == "" && o.CatalogFile == "") {
		c, err := o.Client()
		if err != nil {
			return nil, err
		}
		if c != nil {
			return c, nil
		}
	}

	estimationSrv, err := service.NewEstimationServiceFromFiles(o.BracketsFile, o.CatalogFile, o.Multiplier)
	if err != nil {
		return nil, err
	}
	return &localEstimator{estimationSrv: estimationSrv, reportSrv: service.NewReportService()}, nil
}

type localEstimator struct {
	estimationSrv *service.EstimationService
	reportSrv     *service.ReportService
}

func (l *localEstimator) Estimate(ctx context.Context, income string) (*api.Estimate, error) {
	result, err := l.estimationSrv.Estimate(ctx, income)
	if err != nil {
		return nil, err
	}
	estimate := mappers.EstimateToApi(result)
	return &estimate, nil
}

func (l *localEstimator) Brackets(ctx context.Context) (*api.BracketList, error) {
	brackets := mappers.ScheduleToApi(l.estimationSrv.Schedule())
	return &brackets, nil
}

func (l *localEstimator) Catalog(ctx context.Context) (*api.Catalog, error) {
	c := mappers.CatalogToApi(l.estimationSrv.Catalog())
	return &c, nil
}

func (l *localEstimator) Report(ctx context.Context, income string, format api.ReportFormat, comparisons bool) ([]byte, error) {
	result, err := l.estimationSrv.Estimate(ctx, income)
	if err != nil {
		return nil, err
	}
	return l.reportSrv.GenerateReport(result, service.ReportOptions{
		Format:             service.ReportFormat(format),
		IncludeComparisons: comparisons,
	})
}
