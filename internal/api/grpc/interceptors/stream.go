package interceptors

import (
	"errors"
	"io"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
)

// wrappedServerStream оборачивает grpc.ServerStream для логирования
// каждого сообщения в стриме
type wrappedServerStream struct {
	grpc.ServerStream

	log  zerolog.Logger
	sent int
}

// RecvMsg логирует входящие сообщения
func (w *wrappedServerStream) RecvMsg(m any) error {
	err := w.ServerStream.RecvMsg(m)
	switch {
	case errors.Is(err, io.EOF):
		w.log.Trace().Msg("stream recv: EOF")
	case err != nil:
		w.log.Warn().Err(err).Msg("stream recv failed")
	default:
		w.log.Trace().Type("message", m).Msg("stream recv")
	}
	return err
}

// SendMsg логирует исходящие сообщения
func (w *wrappedServerStream) SendMsg(m any) error {
	err := w.ServerStream.SendMsg(m)
	if err != nil {
		w.log.Warn().Err(err).Msg("stream send failed")
		return err
	}
	w.sent++
	w.log.Trace().Type("message", m).Int("sent", w.sent).Msg("stream send")
	return nil
}

// StreamInterceptor логирует открытие и закрытие стрима и каждое сообщение в нем
func StreamInterceptor(log zerolog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		streamLog := log.With().Str("method", info.FullMethod).Logger()
		streamLog.Info().Msg("stream opened")

		wrapped := &wrappedServerStream{
			ServerStream: ss,
			log:          streamLog,
		}

		err := handler(srv, wrapped)
		if err != nil {
			streamLog.Warn().Err(err).Int("sent", wrapped.sent).Msg("stream closed with error")
		} else {
			streamLog.Info().Int("sent", wrapped.sent).Msg("stream closed")
		}
		return err
	}
}
