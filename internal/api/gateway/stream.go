package gateway

import (
	"errors"
	"io"
	"net/http"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	notesv1 "notes-backend/pkg/api/notes/v1"
)

// streamEvents отдает события заметок построчным JSON (одно событие на строку).
// Через wsproxy каждая строка уходит отдельным WebSocket сообщением.
func (g *Gateway) streamEvents(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	stream, err := g.client.SubscribeToEvents(r.Context(), &notesv1.SubscribeToEventsRequest{})
	if err != nil {
		g.writeError(w, r, err)
		return
	}

	rc := http.NewResponseController(w)
	// Стрим живет дольше WriteTimeout сервера
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	_ = rc.Flush()

	for {
		ev, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) || status.Code(err) == codes.Canceled {
				g.log.Debug().Msg("events stream finished")
				return
			}
			g.log.Warn().Err(err).Msg("events stream failed")
			return
		}

		data, err := responseMarshaler.Marshal(ev)
		if err != nil {
			g.log.Error().Err(err).Msg("failed to marshal event")
			return
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			g.log.Debug().Err(err).Msg("client disconnected from events stream")
			return
		}
		if err := rc.Flush(); err != nil {
			g.log.Debug().Err(err).Msg("failed to flush event")
			return
		}
	}
}
