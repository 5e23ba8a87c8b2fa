package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"notes-backend/internal/api/gateway"
	grpcapi "notes-backend/internal/api/grpc"
	"notes-backend/internal/api/swagger"
	"notes-backend/internal/config"
	"notes-backend/internal/repository/backend"
	notesService "notes-backend/internal/service/notes"
	notesv1 "notes-backend/pkg/api/notes/v1"
)

// Server представляет сервер приложения с gRPC и HTTP Gateway
type Server struct {
	// HTTP компоненты
	Mux          *http.ServeMux
	HTTPServer   *http.Server
	httpListener net.Listener

	// gRPC компоненты
	GRPCServer   *grpc.Server
	grpcListener net.Listener
	gatewayConn  *grpc.ClientConn

	// Контекст сервера для graceful shutdown стримов.
	// Отменяется при shutdown до GracefulStop, иначе открытые стримы его не дождутся.
	Ctx    context.Context
	Cancel context.CancelFunc

	Config *config.Config
	log    zerolog.Logger

	closeStorage backend.CloseFunc
}

// NewServer создает сервер и занимает порты gRPC и HTTP
func NewServer(cfg *config.Config, log zerolog.Logger) (*Server, error) {
	grpcAddr := "0.0.0.0:" + strconv.Itoa(cfg.Server.PortGRPC)
	httpAddr := "0.0.0.0:" + strconv.Itoa(cfg.Server.PortHTTP)

	grpcListener, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", grpcAddr, err)
	}
	httpListener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		_ = grpcListener.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", httpAddr, err)
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())

	log.Info().
		Str("grpc_addr", grpcListener.Addr().String()).
		Str("http_addr", httpListener.Addr().String()).
		Str("storage", cfg.Storage.Backend).
		Bool("swagger", cfg.Swagger.Enabled).
		Msg("Config loaded")

	return &Server{
		Mux:          http.NewServeMux(),
		httpListener: httpListener,
		grpcListener: grpcListener,
		Ctx:          serverCtx,
		Cancel:       serverCancel,
		Config:       cfg,
		log:          log,
	}, nil
}

// GRPCAddr адрес, на котором слушает gRPC сервер
func (s *Server) GRPCAddr() string {
	return s.grpcListener.Addr().String()
}

// HTTPAddr адрес, на котором слушает HTTP Gateway
func (s *Server) HTTPAddr() string {
	return s.httpListener.Addr().String()
}

// Initialize инициализирует компоненты сервера (Repository → Service → Handler → Gateway)
func (s *Server) Initialize(ctx context.Context) error {
	noteRepo, closeStorage, err := backend.Open(ctx, s.Config.Storage, s.log)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	s.closeStorage = closeStorage

	noteSvc := notesService.NewNoteService(noteRepo, notesService.NewEventService(), s.log)
	s.log.Debug().Msg("Initialized note service")

	noteHandler := grpcapi.NewHandler(s.Ctx, noteSvc, s.log.With().Str("component", "grpc").Logger())
	s.GRPCServer = grpcapi.NewServer(noteHandler, s.log.With().Str("component", "grpc").Logger())

	// Gateway ходит в gRPC сервер этого же процесса
	s.gatewayConn, err = grpc.NewClient(dialAddr(s.grpcListener.Addr()),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return fmt.Errorf("failed to create gateway client: %w", err)
	}

	if s.Config.Swagger.Enabled {
		if err := swagger.ServeSwagger(s.Mux, notesv1.SwaggerSpecs, s.log); err != nil {
			return fmt.Errorf("failed to serve swagger: %w", err)
		}
	} else {
		s.log.Info().Msg("Swagger UI is disabled")
	}

	handler, err := gateway.NewHandler(notesv1.NewNotesServiceClient(s.gatewayConn), s.Config, s.log, s.Mux)
	if err != nil {
		return err
	}

	srv := s.Config.Server
	s.HTTPServer = &http.Server{
		Handler:           handler,
		ReadTimeout:       seconds(srv.HTTPReadTimeout),
		ReadHeaderTimeout: seconds(srv.HTTPReadHeaderTimeout),
		WriteTimeout:      seconds(srv.HTTPWriteTimeout),
		IdleTimeout:       seconds(srv.HTTPIdleTimeout),
	}
	return nil
}

// Start запускает gRPC и HTTP Gateway серверы в горутинах.
// Возвращает канал ошибок для отслеживания ошибок серверов.
func (s *Server) Start() <-chan error {
	errChan := make(chan error, 2)

	go func() {
		s.log.Info().Str("addr", s.GRPCAddr()).Msg("gRPC server listening")
		if err := s.GRPCServer.Serve(s.grpcListener); err != nil {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		s.log.Info().Str("addr", s.HTTPAddr()).Msg("HTTP Gateway listening")
		if err := s.HTTPServer.Serve(s.httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP Gateway error: %w", err)
		}
	}()

	return errChan
}

// Shutdown выполняет graceful shutdown сервера
func (s *Server) Shutdown() error {
	s.log.Info().Msg("Starting graceful shutdown...")

	// Отменяем контекст сервера ПЕРЕД GracefulStop(): стримы событий слушают его
	s.Cancel()

	shutdownTimeout := time.Duration(s.Config.Server.GracefulShutdownTimeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if s.HTTPServer != nil {
		if err := s.HTTPServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}

	if s.GRPCServer != nil {
		stopped := make(chan struct{})
		go func() {
			s.GRPCServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopped:
			s.log.Info().Msg("gRPC server stopped gracefully")
		case <-ctx.Done():
			s.log.Warn().Msg("Graceful shutdown timeout, forcing stop")
			s.GRPCServer.Stop()
			errs = append(errs, ctx.Err())
		}
	} else {
		_ = s.grpcListener.Close()
	}
	if s.HTTPServer == nil {
		_ = s.httpListener.Close()
	}

	if s.gatewayConn != nil {
		if err := s.gatewayConn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("gateway client close: %w", err))
		}
	}
	if s.closeStorage != nil {
		if err := s.closeStorage(); err != nil {
			errs = append(errs, fmt.Errorf("storage close: %w", err))
		}
	}

	return errors.Join(errs...)
}

// dialAddr заменяет адрес 0.0.0.0 / :: на localhost для подключения gateway
func dialAddr(addr net.Addr) string {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok || tcp.IP == nil || tcp.IP.IsUnspecified() {
		_, port, _ := net.SplitHostPort(addr.String())
		return "localhost:" + port
	}
	return tcp.String()
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
