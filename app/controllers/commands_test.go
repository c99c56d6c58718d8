package controllers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-widget/app/feedback"
	"todo-widget/app/logging"
	"todo-widget/app/models"
	"todo-widget/app/services"
	"todo-widget/app/storage"
	"todo-widget/app/views"
)

type seqIDs struct{ n int }

func (s *seqIDs) Next() string {
	s.n++
	return fmt.Sprintf("T%d", s.n)
}

func (s *seqIDs) Observe(string) {}

type fixture struct {
	ctl     *TaskController
	store   *services.TaskStore
	backend *storage.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := storage.NewMemory()
	return newFixtureOn(t, backend)
}

// newFixtureOn builds a fresh controller over backend, as a page reload would.
func newFixtureOn(t *testing.T, backend *storage.Memory) *fixture {
	t.Helper()
	logger := logging.Discard()
	store := services.NewTaskStore(backend, "tasks", logger)
	slot := feedback.NewSlot(time.Hour)
	t.Cleanup(slot.Stop)

	ctl := NewTaskController(store, slot, &seqIDs{}, logger)
	require.NoError(t, ctl.Load(context.Background()))
	return &fixture{ctl: ctl, store: store, backend: backend}
}

func (f *fixture) stored(t *testing.T) []models.Task {
	t.Helper()
	tasks, err := f.store.Load(context.Background())
	require.NoError(t, err)
	return tasks
}

// assertConsistent checks that the visible list mirrors the stored one.
func (f *fixture) assertConsistent(t *testing.T) {
	t.Helper()
	stored := f.stored(t)
	page := f.ctl.Page()
	require.Len(t, page.Entries, len(stored))
	for i, task := range stored {
		assert.Equal(t, views.Entry{ID: task.ID, Value: task.Value, Completed: task.Completed}, page.Entries[i])
	}
	assert.Equal(t, len(stored) > 0, page.ContainerVisible)
	assert.Equal(t, len(stored) > 0, page.ClearVisible)
}

func TestSubmitBuyMilk(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctl.Submit(context.Background(), "  Buy milk "))

	assert.Equal(t, []models.Task{{ID: "T1", Value: "Buy milk", Completed: false}}, f.stored(t))
	page := f.ctl.Page()
	assert.Len(t, page.Entries, 1)
	assert.True(t, page.ContainerVisible)
	assert.True(t, page.ClearVisible)
	assert.Equal(t, "", page.Input)
	assert.Equal(t, LabelAdd, page.SubmitLabel)
	assert.Equal(t, feedback.Message{Text: MsgAdded, Kind: feedback.Success}, page.Feedback)
	f.assertConsistent(t)
}

func TestSubmitEmptyIsRejected(t *testing.T) {
	for _, input := range []string{"", " ", "\t\n  "} {
		f := newFixture(t)
		require.NoError(t, f.ctl.Submit(context.Background(), "A"))

		require.NoError(t, f.ctl.Submit(context.Background(), input))

		assert.Len(t, f.stored(t), 1, "input %q", input)
		assert.Equal(t, feedback.Message{Text: MsgEmpty, Kind: feedback.Danger}, f.ctl.Feedback())
		f.assertConsistent(t)
	}
}

func TestSubmitDuplicateIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctl.Submit(ctx, "Buy milk"))

	require.NoError(t, f.ctl.Submit(ctx, "Buy milk"))
	require.NoError(t, f.ctl.Submit(ctx, "  Buy milk  "))

	assert.Len(t, f.stored(t), 1)
	assert.Equal(t, feedback.Message{Text: MsgDuplicate, Kind: feedback.Danger}, f.ctl.Feedback())
	f.assertConsistent(t)
}

func TestToggleCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctl.Submit(ctx, "Buy milk"))

	require.NoError(t, f.ctl.Click(ctx, "T1", TargetComplete))
	assert.True(t, f.stored(t)[0].Completed)
	assert.Equal(t, feedback.Message{Text: MsgCompleted, Kind: feedback.Success}, f.ctl.Feedback())
	f.assertConsistent(t)

	require.NoError(t, f.ctl.Click(ctx, "T1", TargetComplete))
	assert.False(t, f.stored(t)[0].Completed)
	assert.Equal(t, MsgActive, f.ctl.Feedback().Text)
	f.assertConsistent(t)
}

func TestDeleteLastTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctl.Submit(ctx, "Buy milk"))

	require.NoError(t, f.ctl.Click(ctx, "T1", TargetDelete))

	assert.Empty(t, f.stored(t))
	page := f.ctl.Page()
	assert.Empty(t, page.Entries)
	assert.False(t, page.ContainerVisible)
	assert.False(t, page.ClearVisible)
	assert.Equal(t, feedback.Message{Text: MsgRemoved, Kind: feedback.Danger}, page.Feedback)

	raw, ok, err := f.backend.Get(ctx, "tasks")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[]`, raw)
}

func TestDeletedIDNeverReappearsAfterReload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctl.Submit(ctx, "A"))
	require.NoError(t, f.ctl.Submit(ctx, "B"))
	require.NoError(t, f.ctl.Click(ctx, "T1", TargetDelete))

	reloaded := newFixtureOn(t, f.backend)
	page := reloaded.ctl.Page()
	require.Len(t, page.Entries, 1)
	assert.Equal(t, "T2", page.Entries[0].ID)
}

func TestSubmitAfterRestartDoesNotReuseStoredID(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	require.NoError(t, backend.Set(ctx, "tasks", `[{"id":"5000","value":"A","completed":false}]`))

	logger := logging.Discard()
	store := services.NewTaskStore(backend, "tasks", logger)
	slot := feedback.NewSlot(time.Hour)
	t.Cleanup(slot.Stop)
	stuck := services.NewClockIDs(func() time.Time { return time.UnixMilli(5000) })
	ctl := NewTaskController(store, slot, stuck, logger)
	require.NoError(t, ctl.Load(ctx))

	require.NoError(t, ctl.Submit(ctx, "B"))
	tasks, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.NotEqual(t, tasks[0].ID, tasks[1].ID)

	require.NoError(t, ctl.Click(ctx, "5000", TargetDelete))
	tasks, err = store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "B", tasks[0].Value)
}

type repeatIDs struct{ ids []string }

func (r *repeatIDs) Next() string {
	id := r.ids[0]
	r.ids = r.ids[1:]
	return id
}

func (r *repeatIDs) Observe(string) {}

func TestSubmitRemintsTakenID(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	require.NoError(t, backend.Set(ctx, "tasks", `[{"id":"T1","value":"A","completed":false}]`))

	logger := logging.Discard()
	store := services.NewTaskStore(backend, "tasks", logger)
	slot := feedback.NewSlot(time.Hour)
	t.Cleanup(slot.Stop)
	ctl := NewTaskController(store, slot, &repeatIDs{ids: []string{"T1", "T1", "T2"}}, logger)
	require.NoError(t, ctl.Load(ctx))

	require.NoError(t, ctl.Submit(ctx, "B"))

	tasks, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Task{{ID: "T1", Value: "A"}, {ID: "T2", Value: "B"}}, tasks)
}

func TestClickOutsideEntryIsIgnored(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctl.Submit(ctx, "A"))
	before := f.ctl.Feedback()

	require.NoError(t, f.ctl.Click(ctx, "", TargetDelete))
	require.NoError(t, f.ctl.Click(ctx, "T99", TargetComplete))
	require.NoError(t, f.ctl.Click(ctx, "T1", "title"))

	assert.Equal(t, []models.Task{{ID: "T1", Value: "A"}}, f.stored(t))
	assert.Equal(t, before, f.ctl.Feedback())
}

func TestClearAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctl.Submit(ctx, "A"))
	require.NoError(t, f.ctl.Submit(ctx, "B"))

	require.NoError(t, f.ctl.ClearAll(ctx))

	page := f.ctl.Page()
	assert.Empty(t, page.Entries)
	assert.False(t, page.ContainerVisible)
	assert.False(t, page.ClearVisible)
	assert.Equal(t, feedback.Message{Text: MsgCleared, Kind: feedback.Danger}, page.Feedback)

	reloaded := newFixtureOn(t, f.backend)
	assert.Empty(t, reloaded.ctl.Page().Entries)
}

func TestLoadRendersStoredOrder(t *testing.T) {
	backend := storage.NewMemory()
	require.NoError(t, backend.Set(context.Background(), "tasks",
		`[{"id":"T1","value":"A","completed":true},{"id":"T2","value":"B","completed":false}]`))

	f := newFixtureOn(t, backend)

	page := f.ctl.Page()
	assert.Equal(t, []views.Entry{
		{ID: "T1", Value: "A", Completed: true},
		{ID: "T2", Value: "B", Completed: false},
	}, page.Entries)
	assert.True(t, page.ContainerVisible)
	assert.True(t, page.ClearVisible)
}

func TestLoadCorruptStorageRendersNothing(t *testing.T) {
	backend := storage.NewMemory()
	require.NoError(t, backend.Set(context.Background(), "tasks", "%%%"))

	f := newFixtureOn(t, backend)

	page := f.ctl.Page()
	assert.Empty(t, page.Entries)
	assert.False(t, page.ContainerVisible)
	assert.True(t, page.Feedback.Empty())
}

func TestEditInPlace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctl.Submit(ctx, "A"))
	require.NoError(t, f.ctl.Submit(ctx, "B"))

	require.NoError(t, f.ctl.Click(ctx, "T1", TargetEdit))
	page := f.ctl.Page()
	assert.True(t, page.Editing)
	assert.Equal(t, "T1", page.EditID)
	assert.Equal(t, "A", page.Input)
	assert.Equal(t, LabelEdit, page.SubmitLabel)

	// Renaming onto another task's value is a duplicate.
	require.NoError(t, f.ctl.Submit(ctx, "B"))
	assert.Equal(t, MsgDuplicate, f.ctl.Feedback().Text)
	assert.True(t, f.ctl.Page().Editing)

	require.NoError(t, f.ctl.Submit(ctx, "A2"))
	assert.Equal(t, []models.Task{{ID: "T1", Value: "A2"}, {ID: "T2", Value: "B"}}, f.stored(t))
	assert.Equal(t, feedback.Message{Text: MsgUpdated, Kind: feedback.Success}, f.ctl.Feedback())
	page = f.ctl.Page()
	assert.False(t, page.Editing)
	assert.Equal(t, "", page.Input)
	assert.Equal(t, LabelAdd, page.SubmitLabel)
	f.assertConsistent(t)
}

func TestEditKeepingSameValue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctl.Submit(ctx, "A"))
	require.True(t, f.ctl.BeginEdit("T1"))

	require.NoError(t, f.ctl.Submit(ctx, "A"))

	assert.Equal(t, MsgUpdated, f.ctl.Feedback().Text)
	assert.Len(t, f.stored(t), 1)
}

func TestCancelEditAndDeleteWhileEditing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctl.Submit(ctx, "A"))

	assert.False(t, f.ctl.BeginEdit("missing"))
	require.True(t, f.ctl.BeginEdit("T1"))
	f.ctl.CancelEdit()
	assert.False(t, f.ctl.Page().Editing)

	require.True(t, f.ctl.BeginEdit("T1"))
	require.NoError(t, f.ctl.Click(ctx, "T1", TargetDelete))
	page := f.ctl.Page()
	assert.False(t, page.Editing)
	assert.Equal(t, "", page.Input)

	// A later submit creates a task instead of editing the deleted one.
	require.NoError(t, f.ctl.Submit(ctx, "C"))
	assert.Equal(t, []models.Task{{ID: "T2", Value: "C"}}, f.stored(t))
}
