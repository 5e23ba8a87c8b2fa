package grpc

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"

	"notes-backend/internal/converter"
	"notes-backend/internal/model"
	svc "notes-backend/internal/service"
	notesv1 "notes-backend/pkg/api/notes/v1"
)

const (
	// ErrorDomain домен в ErrorInfo деталях ошибок
	ErrorDomain = "notes.v1"

	ReasonNotFound   = "NOTE_NOT_FOUND"
	ReasonValidation = "VALIDATION_ERROR"
	ReasonInternal   = "INTERNAL_ERROR"
)

// Handler реализует gRPC сервер для NotesService
type Handler struct {
	notesv1.UnimplementedNotesServiceServer

	// ctx сервера: при его отмене открытые стримы событий завершаются
	ctx         context.Context
	noteService svc.NoteService
	log         zerolog.Logger
}

// NewHandler создает новый экземпляр gRPC хэндлера
func NewHandler(ctx context.Context, noteService svc.NoteService, log zerolog.Logger) *Handler {
	return &Handler{
		ctx:         ctx,
		noteService: noteService,
		log:         log,
	}
}

// CreateNote создает новую заметку
func (h *Handler) CreateNote(ctx context.Context, req *notesv1.CreateNoteRequest) (*notesv1.CreateNoteResponse, error) {
	note, err := h.noteService.Create(ctx, req.GetTitle(), req.GetContent(), req.GetTags())
	if err != nil {
		return nil, h.handleError(err)
	}

	return &notesv1.CreateNoteResponse{
		Note: converter.ModelToApi(note),
	}, nil
}

// GetNote возвращает заметку по её ID
func (h *Handler) GetNote(ctx context.Context, req *notesv1.GetNoteRequest) (*notesv1.GetNoteResponse, error) {
	note, err := h.noteService.Get(ctx, req.GetId())
	if err != nil {
		return nil, h.handleError(err)
	}

	return &notesv1.GetNoteResponse{
		Note: converter.ModelToApi(note),
	}, nil
}

// ListNotes возвращает список всех заметок в порядке создания
func (h *Handler) ListNotes(ctx context.Context, _ *notesv1.ListNotesRequest) (*notesv1.ListNotesResponse, error) {
	notes, err := h.noteService.List(ctx)
	if err != nil {
		return nil, h.handleError(err)
	}

	return &notesv1.ListNotesResponse{
		Notes: converter.ModelsToApis(notes),
	}, nil
}

// UpdateNote полностью заменяет title, content и tags заметки
func (h *Handler) UpdateNote(ctx context.Context, req *notesv1.UpdateNoteRequest) (*notesv1.UpdateNoteResponse, error) {
	note, err := h.noteService.Update(ctx, req.GetId(), req.GetTitle(), req.GetContent(), req.GetTags())
	if err != nil {
		return nil, h.handleError(err)
	}

	return &notesv1.UpdateNoteResponse{
		Note: converter.ModelToApi(note),
	}, nil
}

// DeleteNote удаляет заметку по ID
func (h *Handler) DeleteNote(ctx context.Context, req *notesv1.DeleteNoteRequest) (*notesv1.DeleteNoteResponse, error) {
	if err := h.noteService.Delete(ctx, req.GetId()); err != nil {
		return nil, h.handleError(err)
	}

	return &notesv1.DeleteNoteResponse{}, nil
}

// SubscribeToEvents отправляет клиенту события изменения заметок.
// Стрим завершается при отключении клиента или остановке сервера.
func (h *Handler) SubscribeToEvents(_ *notesv1.SubscribeToEventsRequest, stream grpc.ServerStreamingServer[notesv1.NoteEvent]) error {
	events, unsubscribe := h.noteService.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-h.ctx.Done():
			h.log.Debug().Msg("server is shutting down, closing events stream")
			return nil
		case <-stream.Context().Done():
			h.log.Debug().Msg("client disconnected from events stream")
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := stream.Send(converter.EventToApi(ev)); err != nil {
				h.log.Warn().Err(err).Msg("failed to send note event")
				return err
			}
		}
	}
}

// handleError конвертирует доменные ошибки в gRPC статусы с ErrorInfo деталями
func (h *Handler) handleError(err error) error {
	if err == nil {
		return nil
	}

	var notFound *model.NotFoundError
	if errors.As(err, &notFound) {
		return withDetails(codes.NotFound, err.Error(), &errdetails.ErrorInfo{
			Reason:   ReasonNotFound,
			Domain:   ErrorDomain,
			Metadata: map[string]string{"note_id": notFound.ID},
		})
	}

	var invalid *model.ValidationError
	if errors.As(err, &invalid) {
		return withDetails(codes.InvalidArgument, err.Error(),
			&errdetails.ErrorInfo{
				Reason:   ReasonValidation,
				Domain:   ErrorDomain,
				Metadata: map[string]string{"field": invalid.Field},
			},
			&errdetails.BadRequest{
				FieldViolations: []*errdetails.BadRequest_FieldViolation{
					{Field: invalid.Field, Description: invalid.Reason},
				},
			},
		)
	}

	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	// Детали внутренних ошибок не уходят клиенту, только в лог
	h.log.Error().Err(err).Msg("internal error")
	return withDetails(codes.Internal, "internal error", &errdetails.ErrorInfo{
		Reason: ReasonInternal,
		Domain: ErrorDomain,
	})
}

func withDetails(code codes.Code, msg string, details ...protoadapt.MessageV1) error {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(details...)
	if err != nil {
		// Если не удалось добавить Details, просто возвращаем ошибку без деталей
		return st.Err()
	}
	return detailed.Err()
}
