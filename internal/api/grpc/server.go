package grpc

import (
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"

	"notes-backend/internal/api/grpc/interceptors"
	notesv1 "notes-backend/pkg/api/notes/v1"
)

// MaxConcurrentStreams ограничение одновременных стримов на соединение
const MaxConcurrentStreams = 25

// NewServer создает и настраивает gRPC сервер с интерцепторами и конфигурацией
func NewServer(handler notesv1.NotesServiceServer, log zerolog.Logger) *grpc.Server {
	// Порядок интерцепторов важен:
	// 1. Recovery - паника в любом следующем звене превращается в Internal
	// 2. Logger - логирует все запросы (включая отклоненные валидацией)
	// 3. Validate - валидирует запросы по тегам validate
	grpcServer := grpc.NewServer(
		grpc.MaxConcurrentStreams(MaxConcurrentStreams),
		// KeepAlive параметры для защиты от зависших соединений
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle:     30 * time.Minute, // Закрытие неактивных соединений
			MaxConnectionAge:      1 * time.Hour,    // Ротация соединений
			MaxConnectionAgeGrace: 5 * time.Second,  // Ожидание завершения активных запросов
			Time:                  10 * time.Minute, // Время между пингами
			Timeout:               20 * time.Second, // Время ожидания ответа на ping
		}),
		// Клиенты стримов событий держат соединение без запросов, пинги им разрешены
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             30 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.ChainUnaryInterceptor(
			interceptors.RecoveryUnaryInterceptor(log),
			interceptors.LoggerUnaryInterceptor(log),
			interceptors.ValidateUnaryInterceptor,
		),
		grpc.ChainStreamInterceptor(
			interceptors.StreamInterceptor(log),
		),
	)

	notesv1.RegisterNotesServiceServer(grpcServer, handler)
	log.Info().Str("service", notesv1.NotesService_ServiceName).Msg("Registered gRPC service")

	return grpcServer
}
