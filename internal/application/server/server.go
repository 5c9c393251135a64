package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"weather-relay/configs"
	"weather-relay/internal/application/controller"
	"weather-relay/internal/application/middleware"
	"weather-relay/internal/application/schedule"
	"weather-relay/internal/domain/gateway/api"
	"weather-relay/internal/domain/gateway/lock"
	"weather-relay/internal/domain/usecase/forecast"
	"weather-relay/internal/domain/usecase/health"
	"weather-relay/internal/domain/usecase/relay"
	httpclient "weather-relay/pkg/http"
	"weather-relay/pkg/log"
	"weather-relay/pkg/msg"
	"weather-relay/pkg/redis"
)

// Server is one of the two HTTP services with its background jobs
type Server struct {
	echo        *echo.Echo
	config      configs.ServerConfig
	scheduler   *schedule.UpstreamMonitorScheduler
	redisClient *redis.Client
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	middleware.SetupRequestID(e)
	middleware.SetupRequestLogger(e)
	middleware.SetupRecover(e)
	return e
}

// NewTargetServer wires the forecast generating service
func NewTargetServer(config *configs.TargetConfig, opts ...forecast.Option) *Server {
	e := newEcho()
	root := e.Group("")
	api := e.Group(config.Server.ContextPath)

	// Init UseCase
	forecastUseCase := forecast.NewForecastUseCase(opts...)
	healthUseCase := health.NewHealthUseCase(config.Server.ApplicationName, nil, nil, nil)

	// Init Controller and Routes
	controller.NewForecastController(api, forecastUseCase).InitForecastRoutes()
	controller.NewHealthController(root, healthUseCase).InitHealthRoutes()
	controller.NewDocsController(root, "target").InitDocsRoutes()

	return &Server{echo: e, config: config.Server}
}

// NewClientServer wires the forecast relaying service, its upstream monitor and the optional redis lock
func NewClientServer(config *configs.ClientConfig) (*Server, error) {
	e := newEcho()
	root := e.Group("")
	api := e.Group(config.Server.ContextPath)

	// Init Gateway
	forecastGateway := newForecastGateway(config.Forecast)

	var redisClient *redis.Client
	var lockGateway lock.HealthGateway
	var statusGateway lock.UpstreamStatusGateway
	if config.Redis.Enabled {
		client, err := newRedisClient(config.Redis)
		if err != nil {
			return nil, err
		}
		redisClient = client
		lockGateway = lock.NewRedisHealthGateway(client)
		statusGateway = lock.NewRedisUpstreamStatusGateway(client, config.Monitor.StatusTTL)
	}

	// Init UseCase
	relayUseCase := relay.NewRelayUseCase(forecastGateway)
	healthUseCase := health.NewHealthUseCase(config.Server.ApplicationName, forecastGateway, lockGateway, statusGateway)

	// Init Controller and Routes
	controller.NewRelayController(api, relayUseCase).InitRelayRoutes()
	controller.NewHealthController(root, healthUseCase).InitHealthRoutes()
	controller.NewDocsController(root, "client").InitDocsRoutes()

	server := &Server{echo: e, config: config.Server, redisClient: redisClient}

	// Init Schedule
	if config.Monitor.Enabled {
		server.scheduler = schedule.NewUpstreamMonitorScheduler(healthUseCase, redisClient, config.Monitor)
	}
	return server, nil
}

func newForecastGateway(config configs.ForecastClientConfig) api.ForecastGateway {
	return api.NewForecastGateway(config.ApiServiceBaseAddress, httpclient.ClientOptions{
		ConnectionTimeout: config.ConnectionTimeout,
		ReadTimeout:       config.ReadTimeout,
		Logger:            httpclient.NewZapHTTPLogger(log.Named("http")),
	})
}

func newRedisClient(config configs.RedisConfig) (*redis.Client, error) {
	client, err := redis.NewClient(redis.DefaultConfig().
		WithHost(config.Host).
		WithPort(config.Port).
		WithPassword(config.Password).
		WithDatabase(config.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = client.Ping(ctx); err != nil {
		log.Warn(msg.GetMessage("app.redis-unavailable", fmt.Sprintf("%s:%d", config.Host, config.Port), err))
	}
	return client, nil
}

// Handler exposes the echo router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run starts the background jobs and the listener, and shuts both down once ctx is done
func (s *Server) Run(ctx context.Context) error {
	log.Info(msg.GetMessage("app.start", s.config.ApplicationName))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.scheduler != nil {
		s.scheduler.InitUpstreamMonitorTasks(ctx)
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info(msg.GetMessage("app.started", s.config.ApplicationName, s.config.Port))
		errChan <- s.echo.Start(":" + s.config.Port)
	}()

	var runErr error
	select {
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("server stopped unexpectedly: %w", err)
		}
	case <-ctx.Done():
	}
	cancel()

	return errors.Join(runErr, s.shutdown())
}

func (s *Server) shutdown() error {
	log.Info(msg.GetMessage("app.stopping", s.config.ApplicationName))

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.echo.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shut down http server: %w", err))
	}
	if s.scheduler != nil {
		s.scheduler.Stop()
		select {
		case <-s.scheduler.Done():
		case <-ctx.Done():
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	log.Info(msg.GetMessage("app.stopped", s.config.ApplicationName))
	return errors.Join(errs...)
}
