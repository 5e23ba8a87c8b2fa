package interceptors

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// LoggerUnaryInterceptor логирует каждый запрос:
// метод, код ответа и затраченное время.
func LoggerUnaryInterceptor(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		log.Debug().Str("method", info.FullMethod).Msg("incoming request")

		start := time.Now()
		resp, err := handler(ctx, req)
		duration := time.Since(start)

		st := status.Convert(err)
		event := log.Info()
		if err != nil {
			event = log.Warn().Str("error", st.Message())
		}
		event.
			Str("method", info.FullMethod).
			Str("code", st.Code().String()).
			Dur("duration", duration).
			Msg("request completed")

		return resp, err
	}
}
