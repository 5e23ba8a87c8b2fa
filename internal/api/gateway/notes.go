package gateway

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	notesv1 "notes-backend/pkg/api/notes/v1"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// Успешные ответы сериализуются encoding/json по json тегам сообщений,
// ошибки рендерит runtime.HTTPError маршалером mux
var responseMarshaler = &runtime.JSONBuiltin{}

// noteBody тело POST /notes и PUT /notes/{id}
type noteBody struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

func (g *Gateway) listNotes(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	resp, err := g.client.ListNotes(r.Context(), &notesv1.ListNotesRequest{})
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	notes := resp.Notes
	if notes == nil {
		notes = []*notesv1.Note{}
	}
	g.writeJSON(w, http.StatusOK, notes)
}

func (g *Gateway) createNote(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var body noteBody
	if err := decodeBody(r, &body); err != nil {
		g.writeError(w, r, err)
		return
	}

	resp, err := g.client.CreateNote(r.Context(), &notesv1.CreateNoteRequest{
		Title:   body.Title,
		Content: body.Content,
		Tags:    body.Tags,
	})
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/notes/"+resp.Note.GetId())
	g.writeJSON(w, http.StatusCreated, resp.Note)
}

func (g *Gateway) getNote(w http.ResponseWriter, r *http.Request, params map[string]string) {
	resp, err := g.client.GetNote(r.Context(), &notesv1.GetNoteRequest{Id: params["id"]})
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, http.StatusOK, resp.Note)
}

func (g *Gateway) updateNote(w http.ResponseWriter, r *http.Request, params map[string]string) {
	var body noteBody
	if err := decodeBody(r, &body); err != nil {
		g.writeError(w, r, err)
		return
	}

	resp, err := g.client.UpdateNote(r.Context(), &notesv1.UpdateNoteRequest{
		Id:      params["id"],
		Title:   body.Title,
		Content: body.Content,
		Tags:    body.Tags,
	})
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, http.StatusOK, resp.Note)
}

func (g *Gateway) deleteNote(w http.ResponseWriter, r *http.Request, params map[string]string) {
	if _, err := g.client.DeleteNote(r.Context(), &notesv1.DeleteNoteRequest{Id: params["id"]}); err != nil {
		g.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeBody читает JSON тело запроса, неизвестные поля игнорируются
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return status.Error(codes.InvalidArgument, "request body is empty")
		}
		return status.Errorf(codes.InvalidArgument, "invalid request body: %v", err)
	}
	return nil
}

func (g *Gateway) writeJSON(w http.ResponseWriter, code int, v any) {
	data, err := responseMarshaler.Marshal(v)
	if err != nil {
		g.log.Error().Err(err).Msg("failed to marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		g.log.Debug().Err(err).Msg("failed to write response")
	}
}

// writeError рендерит gRPC статус в HTTP ответ (NotFound -> 404, InvalidArgument -> 400)
func (g *Gateway) writeError(w http.ResponseWriter, r *http.Request, err error) {
	_, outbound := runtime.MarshalerForRequest(g.gwMux, r)
	runtime.HTTPError(r.Context(), g.gwMux, outbound, w, r, err)
}
