package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	oapimiddleware "github.com/oapi-codegen/nethttp-middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	api "github.com/incomewatch/tax-estimator/api/v1alpha1"
	"github.com/incomewatch/tax-estimator/internal/config"
	handlers "github.com/incomewatch/tax-estimator/internal/handlers/v1alpha1"
	"github.com/incomewatch/tax-estimator/internal/service"
	"github.com/incomewatch/tax-estimator/pkg/metrics"
	"github.com/incomewatch/tax-estimator/pkg/middleware"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg           *config.Config
	estimationSrv *service.EstimationService
	reportSrv     *service.ReportService
	listener      net.Listener
}

// New returns a new instance of a tax-estimator server.
func New(
	cfg *config.Config,
	estimationSrv *service.EstimationService,
	reportSrv *service.ReportService,
	listener net.Listener,
) *Server {
	return &Server{
		cfg:           cfg,
		estimationSrv: estimationSrv,
		reportSrv:     reportSrv,
		listener:      listener,
	}
}

func oapiErrorHandler(w http.ResponseWriter, message string, statusCode int) {
	http.Error(w, fmt.Sprintf("API Error: %s", message), statusCode)
}

// Router builds the API handler with the full middleware chain.
func (s *Server) Router() (http.Handler, error) {
	swagger, err := api.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}
	// Skip server name validation
	swagger.Servers = nil

	oapiOpts := oapimiddleware.Options{
		ErrorHandler: oapiErrorHandler,
	}

	buckets := s.cfg.Service.LatencyBuckets
	if len(buckets) == 0 {
		buckets = metrics.DefaultLatencyBuckets
	}
	metricMiddleware := metrics.NewMiddleware("api_server", buckets)
	if err := metricMiddleware.Register(prometheus.DefaultRegisterer); err != nil {
		return nil, fmt.Errorf("failed to register http metrics: %w", err)
	}

	router := chi.NewRouter()
	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.Service.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowedHeaders: []string{"*"},
			ExposedHeaders: []string{"Content-Disposition", "X-Request-Id"},
			MaxAge:         300,
		}),
		chiMiddleware.RequestID,
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
		oapimiddleware.OapiRequestValidatorWithOptions(swagger, &oapiOpts),
	)

	handlers.RegisterApi(router, handlers.NewServiceHandler(s.estimationSrv, s.reportSrv))
	return router, nil
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	router, err := s.Router()
	if err != nil {
		return err
	}
	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
