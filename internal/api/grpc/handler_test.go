package grpc

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"notes-backend/internal/mocks"
	"notes-backend/internal/model"
	"notes-backend/internal/repository/memory"
	"notes-backend/internal/service/notes"
	notesv1 "notes-backend/pkg/api/notes/v1"
)

func newMockHandler(t *testing.T) (*mocks.MockNoteService, *Handler) {
	t.Helper()
	ctrl := gomock.NewController(t)
	service := mocks.NewMockNoteService(ctrl)
	return service, NewHandler(context.Background(), service, zerolog.Nop())
}

func errorInfo(t *testing.T, st *status.Status) *errdetails.ErrorInfo {
	t.Helper()
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info
		}
	}
	t.Fatalf("ErrorInfo not found in details: %v", st.Details())
	return nil
}

func TestGetNote_NotFoundWithDetails(t *testing.T) {
	ctx := context.Background()
	noteID := "non-existent-id"

	service, handler := newMockHandler(t)
	service.EXPECT().Get(gomock.Any(), noteID).Return(model.Note{}, model.NotFound(noteID))

	_, err := handler.GetNote(ctx, &notesv1.GetNoteRequest{Id: noteID})
	require.Error(t, err, "Expected error for non-existent note")

	st := status.Convert(err)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Contains(t, st.Message(), noteID)

	info := errorInfo(t, st)
	assert.Equal(t, ReasonNotFound, info.GetReason())
	assert.Equal(t, ErrorDomain, info.GetDomain())
	assert.Equal(t, noteID, info.GetMetadata()["note_id"])
}

func TestGetNote_Success(t *testing.T) {
	ctx := context.Background()
	noteID := "test-id-123"

	expectedNote := model.Note{
		ID:      noteID,
		Title:   "Test Title",
		Content: "Test Content",
		Tags:    []string{"work"},
	}

	service, handler := newMockHandler(t)
	service.EXPECT().Get(gomock.Any(), noteID).Return(expectedNote, nil)

	resp, err := handler.GetNote(ctx, &notesv1.GetNoteRequest{Id: noteID})
	require.NoError(t, err)
	require.NotNil(t, resp.Note)
	assert.Equal(t, noteID, resp.Note.Id)
	assert.Equal(t, expectedNote.Title, resp.Note.Title)
	assert.Equal(t, expectedNote.Content, resp.Note.Content)
	assert.Equal(t, expectedNote.Tags, resp.Note.Tags)
}

func TestCreateNote_PassesTags(t *testing.T) {
	service, handler := newMockHandler(t)
	service.EXPECT().
		Create(gomock.Any(), "Title", "Content", []string{"a", "b"}).
		Return(model.Note{ID: "1", Title: "Title", Content: "Content", Tags: []string{"a", "b"}}, nil)

	resp, err := handler.CreateNote(context.Background(), &notesv1.CreateNoteRequest{
		Title: "Title", Content: "Content", Tags: []string{"a", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "1", resp.Note.Id)
}

func TestListNotes_EmptyIsNotNil(t *testing.T) {
	service, handler := newMockHandler(t)
	service.EXPECT().List(gomock.Any()).Return(nil, nil)

	resp, err := handler.ListNotes(context.Background(), &notesv1.ListNotesRequest{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Notes)
	assert.Empty(t, resp.Notes)
}

func TestHandleError_Validation(t *testing.T) {
	_, handler := newMockHandler(t)

	grpcErr := handler.handleError(model.Invalid("title", "cannot be empty"))
	st := status.Convert(grpcErr)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Equal(t, "title cannot be empty", st.Message())

	require.Len(t, st.Details(), 2)
	assert.Equal(t, ReasonValidation, errorInfo(t, st).GetReason())

	badRequest, ok := st.Details()[1].(*errdetails.BadRequest)
	require.True(t, ok)
	assert.Equal(t, "title", badRequest.GetFieldViolations()[0].GetField())
	assert.Equal(t, "cannot be empty", badRequest.GetFieldViolations()[0].GetDescription())
}

func TestHandleError_Internal(t *testing.T) {
	_, handler := newMockHandler(t)

	grpcErr := handler.handleError(errors.New("disk is on fire"))
	st := status.Convert(grpcErr)
	assert.Equal(t, codes.Internal, st.Code())
	assert.NotContains(t, st.Message(), "disk", "internal details must not leak")
	assert.Equal(t, ReasonInternal, errorInfo(t, st).GetReason())
}

func TestHandleError_Context(t *testing.T) {
	_, handler := newMockHandler(t)

	assert.Equal(t, codes.Canceled, status.Code(handler.handleError(context.Canceled)))
	assert.Equal(t, codes.DeadlineExceeded, status.Code(handler.handleError(context.DeadlineExceeded)))
	assert.NoError(t, handler.handleError(nil))
}

// Интеграционные тесты: настоящий gRPC сервер поверх bufconn

type testServer struct {
	client notesv1.NotesServiceClient
	events *notes.EventService
	stop   context.CancelFunc
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	events := notes.NewEventService()
	service := notes.NewNoteService(memory.NewRepository(), events, zerolog.Nop())
	server := NewServer(NewHandler(ctx, service, zerolog.Nop()), zerolog.Nop())

	lis := bufconn.Listen(1 << 20)
	go func() {
		_ = server.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		cancel()
		_ = conn.Close()
		server.Stop()
	})

	return &testServer{
		client: notesv1.NewNotesServiceClient(conn),
		events: events,
		stop:   cancel,
	}
}

func TestServer_CRUD(t *testing.T) {
	ts := startTestServer(t)
	ctx := context.Background()

	_, err := ts.client.GetNote(ctx, &notesv1.GetNoteRequest{Id: "999"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	created, err := ts.client.CreateNote(ctx, &notesv1.CreateNoteRequest{Title: "Groceries", Content: "milk, eggs"})
	require.NoError(t, err)
	assert.Equal(t, "1", created.Note.Id)
	assert.Equal(t, created.Note.CreatedAt, created.Note.UpdatedAt)

	got, err := ts.client.GetNote(ctx, &notesv1.GetNoteRequest{Id: "1"})
	require.NoError(t, err)
	assert.Equal(t, created.Note, got.Note)

	updated, err := ts.client.UpdateNote(ctx, &notesv1.UpdateNoteRequest{Id: "1", Title: "Groceries", Content: "milk, eggs, bread"})
	require.NoError(t, err)
	assert.Equal(t, "milk, eggs, bread", updated.Note.Content)
	assert.Equal(t, created.Note.CreatedAt, updated.Note.CreatedAt)
	assert.True(t, updated.Note.UpdatedAt.After(created.Note.UpdatedAt))

	list, err := ts.client.ListNotes(ctx, &notesv1.ListNotesRequest{})
	require.NoError(t, err)
	require.Len(t, list.Notes, 1)

	_, err = ts.client.DeleteNote(ctx, &notesv1.DeleteNoteRequest{Id: "1"})
	require.NoError(t, err)

	_, err = ts.client.DeleteNote(ctx, &notesv1.DeleteNoteRequest{Id: "1"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	list, err = ts.client.ListNotes(ctx, &notesv1.ListNotesRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Notes)
}

func TestServer_ValidationRejectedBeforeHandler(t *testing.T) {
	ts := startTestServer(t)

	_, err := ts.client.CreateNote(context.Background(), &notesv1.CreateNoteRequest{Title: "  ", Content: "x"})
	st := status.Convert(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Equal(t, "title cannot be empty", st.Message())
	assert.Equal(t, ReasonValidation, errorInfo(t, st).GetReason())

	list, err := ts.client.ListNotes(context.Background(), &notesv1.ListNotesRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Notes)
}

func TestServer_SubscribeToEvents(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := ts.client.SubscribeToEvents(ctx, &notesv1.SubscribeToEventsRequest{})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return ts.events.SubscriberCount() == 1
	}, time.Second, 10*time.Millisecond)

	created, err := ts.client.CreateNote(ctx, &notesv1.CreateNoteRequest{Title: "Groceries"})
	require.NoError(t, err)
	_, err = ts.client.DeleteNote(ctx, &notesv1.DeleteNoteRequest{Id: created.Note.Id})
	require.NoError(t, err)

	ev, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "created", ev.Type)
	assert.Equal(t, created.Note.Id, ev.Note.Id)

	ev, err = stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "deleted", ev.Type)

	// Остановка сервера закрывает стрим
	ts.stop()
	_, err = stream.Recv()
	assert.ErrorIs(t, err, io.EOF)

	assert.Eventually(t, func() bool {
		return ts.events.SubscriberCount() == 0
	}, time.Second, 10*time.Millisecond)
}
