package notes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"notes-backend/internal/mocks"
	"notes-backend/internal/model"
	"notes-backend/internal/repository/memory"
)

func newTestService(t *testing.T) (*mocks.MockNoteRepository, *EventService, *service) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockNoteRepository(ctrl)
	events := NewEventService()
	svc := NewNoteService(repo, events, zerolog.Nop()).(*service)
	return repo, events, svc
}

func testNote(id string) model.Note {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return model.Note{ID: id, Title: "Test Note", Content: "Test Content", CreatedAt: now, UpdatedAt: now}
}

func TestNoteService_Create_Success(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newTestService(t)

	expected := testNote("1")
	repo.EXPECT().
		Create(gomock.Any(), model.NoteInput{Title: "Test Note", Content: "Test Content"}).
		Return(expected, nil)

	note, err := svc.Create(ctx, "Test Note", "Test Content", nil)
	require.NoError(t, err)
	assert.Equal(t, expected, note)
}

func TestNoteService_Create_TrimsInput(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newTestService(t)

	repo.EXPECT().
		Create(gomock.Any(), model.NoteInput{Title: "Test Note", Content: "Test Content", Tags: []string{"work"}}).
		Return(testNote("1"), nil)

	_, err := svc.Create(ctx, "  Test Note ", "  Test Content  ", []string{" work "})
	require.NoError(t, err)
}

func TestNoteService_Create_ValidationErrorPassesThrough(t *testing.T) {
	ctx := context.Background()
	repo, events, svc := newTestService(t)

	ch := events.Subscribe()
	defer events.Unsubscribe(ch)

	repo.EXPECT().
		Create(gomock.Any(), model.NoteInput{Title: "", Content: "content"}).
		Return(model.Note{}, model.Invalid("title", "cannot be empty"))

	note, err := svc.Create(ctx, "   ", "content", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
	assert.Equal(t, "title cannot be empty", err.Error())
	assert.True(t, note.IsEmpty())

	// Событие не публикуется при ошибке
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %+v", ev)
	default:
	}
}

func TestNoteService_Get_Success(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newTestService(t)

	repo.EXPECT().GetByID(gomock.Any(), "test-id").Return(testNote("test-id"), nil)

	note, err := svc.Get(ctx, "test-id")
	require.NoError(t, err)
	assert.Equal(t, "test-id", note.ID)
}

func TestNoteService_EmptyID(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newTestService(t)

	// Репозиторий не вызывается
	repo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)
	repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Get(ctx, "")
	assert.EqualError(t, err, "id cannot be empty")
	assert.True(t, errors.Is(err, model.ErrValidation))

	_, err = svc.Update(ctx, " ", "title", "content", nil)
	assert.EqualError(t, err, "id cannot be empty")

	err = svc.Delete(ctx, "")
	assert.EqualError(t, err, "id cannot be empty")
}

func TestNoteService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newTestService(t)

	repo.EXPECT().GetByID(gomock.Any(), "missing").Return(model.Note{}, model.NotFound("missing"))

	note, err := svc.Get(ctx, "missing")
	assert.True(t, errors.Is(err, model.ErrNotFound))
	assert.True(t, note.IsEmpty())
}

func TestNoteService_List(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newTestService(t)

	expected := []model.Note{testNote("1"), testNote("2")}
	repo.EXPECT().List(gomock.Any()).Return(expected, nil)

	notes, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected, notes)
}

func TestNoteService_List_Error(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newTestService(t)

	repo.EXPECT().List(gomock.Any()).Return(nil, errors.New("disk failure"))

	notes, err := svc.List(ctx)
	assert.EqualError(t, err, "disk failure")
	assert.Nil(t, notes)
}

func TestNoteService_Update_Success(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newTestService(t)

	expected := testNote("1")
	expected.Content = "Updated Content"
	repo.EXPECT().
		Update(gomock.Any(), "1", model.NoteInput{Title: "Updated Title", Content: "Updated Content"}).
		Return(expected, nil)

	note, err := svc.Update(ctx, "1", "Updated Title", " Updated Content ", nil)
	require.NoError(t, err)
	assert.Equal(t, expected, note)
}

func TestNoteService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newTestService(t)

	repo.EXPECT().Update(gomock.Any(), "missing", gomock.Any()).Return(model.Note{}, model.NotFound("missing"))

	_, err := svc.Update(ctx, "missing", "title", "content", nil)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestNoteService_Delete(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newTestService(t)

	gomock.InOrder(
		repo.EXPECT().Delete(gomock.Any(), "1").Return(nil),
		repo.EXPECT().Delete(gomock.Any(), "1").Return(model.NotFound("1")),
	)

	require.NoError(t, svc.Delete(ctx, "1"))
	assert.True(t, errors.Is(svc.Delete(ctx, "1"), model.ErrNotFound))
}

func TestNoteService_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(memory.NewRepository(), NewEventService(), zerolog.Nop())

	events, unsubscribe := svc.Subscribe()
	defer unsubscribe()

	created, err := svc.Create(ctx, "Groceries", "milk, eggs", nil)
	require.NoError(t, err)
	_, err = svc.Update(ctx, created.ID, "Groceries", "milk, eggs, bread", nil)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	var got []model.EventType
	for range 3 {
		select {
		case ev := <-events:
			assert.Equal(t, created.ID, ev.Note.ID)
			assert.False(t, ev.At.IsZero())
			got = append(got, ev.Type)
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for event")
		}
	}
	assert.Equal(t, []model.EventType{model.EventCreated, model.EventUpdated, model.EventDeleted}, got)
}

func TestNoteService_Scenario_InMemory(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(memory.NewRepository(), nil, zerolog.Nop())

	_, err := svc.Get(ctx, "999")
	assert.True(t, errors.Is(err, model.ErrNotFound))

	_, err = svc.Create(ctx, "", "x", nil)
	assert.True(t, errors.Is(err, model.ErrValidation))

	notes, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
