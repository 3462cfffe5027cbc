package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/nerrad567/pulselink-core/internal/assignment"
	"github.com/nerrad567/pulselink-core/internal/auth"
	"github.com/nerrad567/pulselink-core/internal/device"
	"github.com/nerrad567/pulselink-core/internal/events"
	"github.com/nerrad567/pulselink-core/internal/infrastructure/config"
	"github.com/nerrad567/pulselink-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/pulselink-core/internal/infrastructure/logging"
	"github.com/nerrad567/pulselink-core/internal/role"
	"github.com/nerrad567/pulselink-core/internal/subscriber"
	"github.com/nerrad567/pulselink-core/internal/user"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// HealthChecker is implemented by every backing service the health
// endpoint reports on.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// RequestRecorder receives one record per served request.
// *influxdb.Client implements it.
type RequestRecorder interface {
	WriteRequest(r influxdb.Request)
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config      config.APIConfig
	Logger      *logging.Logger
	Roles       role.Repository
	Subscribers subscriber.Repository
	Users       user.Repository
	Devices     device.Repository
	Assignments assignment.Repository
	Auth        *auth.Service

	// Optional.
	Events  *events.Notifier
	Metrics RequestRecorder
	Health  map[string]HealthChecker
	Version string
}

// Server is the HTTP API server.
type Server struct {
	cfg         config.APIConfig
	logger      *logging.Logger
	roles       role.Repository
	subscribers subscriber.Repository
	users       user.Repository
	devices     device.Repository
	assignments assignment.Repository
	auth        *auth.Service
	events      *events.Notifier
	metrics     RequestRecorder
	health      map[string]HealthChecker
	version     string
	server      *http.Server
}

// New creates a new API server with the given dependencies.
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("auth service is required")
	}
	if deps.Roles == nil || deps.Subscribers == nil || deps.Users == nil ||
		deps.Devices == nil || deps.Assignments == nil {
		return nil, fmt.Errorf("all repositories are required")
	}

	return &Server{
		cfg:         deps.Config,
		logger:      deps.Logger,
		roles:       deps.Roles,
		subscribers: deps.Subscribers,
		users:       deps.Users,
		devices:     deps.Devices,
		assignments: deps.Assignments,
		auth:        deps.Auth,
		events:      deps.Events,
		metrics:     deps.Metrics,
		health:      deps.Health,
		version:     deps.Version,
	}, nil
}

// Handler returns the routed handler without starting a listener.
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}

// Start begins listening for HTTP connections in a background goroutine.
// The server can be stopped with Close().
func (s *Server) Start(_ context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	s.server = &http.Server{
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	s.logger.Info("API server starting", "address", ln.Addr().String())
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
