// Package repotest содержит общий набор тестов контракта NoteRepository.
// Каждая реализация хранилища запускает его из своего _test.go файла.
package repotest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-backend/internal/model"
	"notes-backend/internal/repository"
)

// Factory создает пустое хранилище для одного теста
type Factory func(t *testing.T) repository.NoteRepository

// Run запускает все тесты контракта против хранилища из factory
func Run(t *testing.T, factory Factory) {
	tests := map[string]func(t *testing.T, repo repository.NoteRepository){
		"CreateAssignsIdentity":   testCreateAssignsIdentity,
		"CreateRejectsEmptyTitle": testCreateRejectsEmptyTitle,
		"RoundTrip":               testRoundTrip,
		"GetMissing":              testGetMissing,
		"UpdateKeepsIdentity":     testUpdateKeepsIdentity,
		"UpdateMissing":           testUpdateMissing,
		"UpdateInvalidKeepsState": testUpdateInvalidKeepsState,
		"DeleteFinality":          testDeleteFinality,
		"IDsNotReusedAfterDelete": testIDsNotReusedAfterDelete,
		"ListCompleteness":        testListCompleteness,
		"ListInsertionOrder":      testListInsertionOrder,
		"ReturnedNotesAreCopies":  testReturnedNotesAreCopies,
		"ConcurrentCreateUnique":  testConcurrentCreateUnique,
		"ConcurrentUpdateDelete":  testConcurrentUpdateDelete,
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			test(t, factory(t))
		})
	}
}

func testCreateAssignsIdentity(t *testing.T, repo repository.NoteRepository) {
	ctx := context.Background()

	note, err := repo.Create(ctx, model.NoteInput{Title: "Groceries", Content: "milk, eggs"})
	require.NoError(t, err)

	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "Groceries", note.Title)
	assert.Equal(t, "milk, eggs", note.Content)
	assert.False(t, note.CreatedAt.IsZero())
	assert.Equal(t, note.CreatedAt, note.UpdatedAt)
}

func testCreateRejectsEmptyTitle(t *testing.T, repo repository.NoteRepository) {
	ctx := context.Background()

	note, err := repo.Create(ctx, model.NoteInput{Title: "", Content: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation), "expected validation error, got %v", err)
	assert.True(t, note.IsEmpty())

	notes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func testRoundTrip(t *testing.T, repo repository.NoteRepository) {
	ctx := context.Background()

	inputs := []model.NoteInput{
		{Title: "Groceries", Content: "milk, eggs"},
		{Title: "Empty content"},
		{Title: "Tagged", Content: "body", Tags: []string{"home", "todo"}},
		{Title: "Юникод", Content: "заметка ✓"},
	}

	for _, in := range inputs {
		created, err := repo.Create(ctx, in)
		require.NoError(t, err)

		fetched, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, fetched)
	}
}

func testGetMissing(t *testing.T, repo repository.NoteRepository) {
	_, err := repo.GetByID(context.Background(), "999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound), "expected not found, got %v", err)

	var nfErr *model.NotFoundError
	require.True(t, errors.As(err, &nfErr))
	assert.Equal(t, "999", nfErr.ID)
}

func testUpdateKeepsIdentity(t *testing.T, repo repository.NoteRepository) {
	ctx := context.Background()

	created, err := repo.Create(ctx, model.NoteInput{Title: "Groceries", Content: "milk, eggs"})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, model.NoteInput{Title: "Groceries", Content: "milk, eggs, bread"})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "milk, eggs, bread", updated.Content)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updated_at must advance")

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, fetched)
}

func testUpdateMissing(t *testing.T, repo repository.NoteRepository) {
	_, err := repo.Update(context.Background(), "999", model.NoteInput{Title: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound), "expected not found, got %v", err)
}

func testUpdateInvalidKeepsState(t *testing.T, repo repository.NoteRepository) {
	ctx := context.Background()

	created, err := repo.Create(ctx, model.NoteInput{Title: "Title", Content: "body"})
	require.NoError(t, err)

	_, err = repo.Update(ctx, created.ID, model.NoteInput{Title: "  ", Content: "new"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation), "expected validation error, got %v", err)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func testDeleteFinality(t *testing.T, repo repository.NoteRepository) {
	ctx := context.Background()

	created, err := repo.Create(ctx, model.NoteInput{Title: "Groceries"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound), "get after delete: %v", err)

	err = repo.Delete(ctx, created.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound), "second delete: %v", err)
}

func testIDsNotReusedAfterDelete(t *testing.T, repo repository.NoteRepository) {
	ctx := context.Background()

	issued := make(map[string]struct{})
	for i := range 10 {
		note, err := repo.Create(ctx, model.NoteInput{Title: fmt.Sprintf("note %d", i)})
		require.NoError(t, err)

		_, dup := issued[note.ID]
		require.False(t, dup, "id %s issued twice", note.ID)
		issued[note.ID] = struct{}{}

		require.NoError(t, repo.Delete(ctx, note.ID))
	}
}

func testListCompleteness(t *testing.T, repo repository.NoteRepository) {
	ctx := context.Background()

	want := make(map[string]model.Note)
	for i := range 6 {
		note, err := repo.Create(ctx, model.NoteInput{Title: fmt.Sprintf("note %d", i)})
		require.NoError(t, err)
		want[note.ID] = note
	}

	ids := lo.Keys(want)
	// Удаляем две заметки и обновляем одну
	for _, id := range ids[:2] {
		require.NoError(t, repo.Delete(ctx, id))
		delete(want, id)
	}
	updated, err := repo.Update(ctx, ids[2], model.NoteInput{Title: "updated", Content: "latest"})
	require.NoError(t, err)
	want[updated.ID] = updated

	notes, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, len(want))

	got := lo.SliceToMap(notes, func(n model.Note) (string, model.Note) {
		return n.ID, n
	})
	assert.Equal(t, want, got)
}

func testListInsertionOrder(t *testing.T, repo repository.NoteRepository) {
	ctx := context.Background()

	var ids []string
	for i := range 5 {
		note, err := repo.Create(ctx, model.NoteInput{Title: fmt.Sprintf("note %d", i)})
		require.NoError(t, err)
		ids = append(ids, note.ID)
	}

	// Обновление не меняет порядок
	_, err := repo.Update(ctx, ids[0], model.NoteInput{Title: "first, updated"})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, ids[2]))

	notes, err := repo.List(ctx)
	require.NoError(t, err)

	got := lo.Map(notes, func(n model.Note, _ int) string { return n.ID })
	assert.Equal(t, []string{ids[0], ids[1], ids[3], ids[4]}, got)
}

func testReturnedNotesAreCopies(t *testing.T, repo repository.NoteRepository) {
	ctx := context.Background()

	input := model.NoteInput{Title: "Tagged", Tags: []string{"a", "b"}}
	created, err := repo.Create(ctx, input)
	require.NoError(t, err)

	// Изменения у вызывающего не видны хранилищу
	input.Tags[0] = "mutated-input"
	created.Tags[1] = "mutated-result"
	created.Title = "mutated"

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tagged", fetched.Title)
	assert.Equal(t, []string{"a", "b"}, fetched.Tags)

	notes, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	notes[0].Tags[0] = "mutated-list"

	fetched, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, fetched.Tags)
}

func testConcurrentCreateUnique(t *testing.T, repo repository.NoteRepository) {
	ctx := context.Background()

	const workers, perWorker = 8, 25
	ids := make(chan string, workers*perWorker)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWorker {
				note, err := repo.Create(ctx, model.NoteInput{Title: fmt.Sprintf("w%d-%d", w, i)})
				if !assert.NoError(t, err) {
					return
				}
				ids <- note.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{})
	for id := range ids {
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers*perWorker)

	notes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, workers*perWorker)
}

func testConcurrentUpdateDelete(t *testing.T, repo repository.NoteRepository) {
	ctx := context.Background()

	created, err := repo.Create(ctx, model.NoteInput{Title: "shared"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, created.ID, model.NoteInput{Title: fmt.Sprintf("v%d", i)})
			if err != nil {
				assert.True(t, errors.Is(err, model.ErrNotFound), "unexpected update error: %v", err)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, repo.Delete(ctx, created.ID))
	}()
	wg.Wait()

	_, err = repo.GetByID(ctx, created.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	notes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
