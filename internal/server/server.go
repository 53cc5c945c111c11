package server

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/thanhvdo/goldfx-be/internal/config"
	"github.com/thanhvdo/goldfx-be/internal/handler"
	"github.com/thanhvdo/goldfx-be/internal/middleware"
	"github.com/thanhvdo/goldfx-be/pkg/logger"
)

type Server struct {
	echo               *echo.Echo
	cfg                *config.Config
	logger             *logger.Logger
	transactionHandler *handler.TransactionHandler
	statisticsHandler  *handler.StatisticsHandler
	exportHandler      *handler.ExportHandler
	healthHandler      *handler.HealthHandler
}

func New(
	cfg *config.Config,
	log *logger.Logger,
	transactionHandler *handler.TransactionHandler,
	statisticsHandler *handler.StatisticsHandler,
	exportHandler *handler.ExportHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	return &Server{
		echo:               e,
		cfg:                cfg,
		logger:             log,
		transactionHandler: transactionHandler,
		statisticsHandler:  statisticsHandler,
		exportHandler:      exportHandler,
		healthHandler:      healthHandler,
	}
}

func (s *Server) Start() error {
	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%s", s.cfg.Server.Host, s.cfg.Server.Port)
	s.logger.Info(context.Background(), "Starting HTTP server",
		"address", addr,
	)

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupMiddleware() {
	s.echo.Use(echoMiddleware.Recover())
	s.echo.Use(echoMiddleware.CORS())
	s.echo.Use(middleware.RequestID())
	s.echo.Use(middleware.Logging(s.logger))
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthHandler.Check)

	s.echo.POST("/transactions", s.transactionHandler.Add)
	s.echo.GET("/transactions", s.transactionHandler.List)
	s.echo.GET("/transactions/high-value", s.transactionHandler.HighValue)
	s.echo.GET("/transactions/:code", s.transactionHandler.GetByCode)
	s.echo.PUT("/transactions/:code", s.transactionHandler.Edit)
	s.echo.DELETE("/transactions/:code", s.transactionHandler.Remove)

	s.echo.GET("/statistics", s.statisticsHandler.Get)

	s.echo.GET("/export/transactions", s.exportHandler.Transactions)
	s.echo.GET("/export/statistics", s.exportHandler.Statistics)
}

func (s *Server) Handler() *echo.Echo {
	s.setupMiddleware()
	s.setupRoutes()
	return s.echo
}
