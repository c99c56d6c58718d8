package controllers

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"todo-widget/app/feedback"
	"todo-widget/app/models"
	"todo-widget/app/services"
	"todo-widget/app/views"
)

// Click targets inside a task entry.
const (
	TargetDelete   = "delete"
	TargetComplete = "complete"
	TargetEdit     = "edit"
)

// Submit button labels.
const (
	LabelAdd  = "Add Task"
	LabelEdit = "Edit Task"
)

// Feedback texts.
const (
	MsgEmpty     = "Please enter a task"
	MsgDuplicate = "Task already exists"
	MsgAdded     = "Task added"
	MsgUpdated   = "Task updated"
	MsgRemoved   = "Task removed"
	MsgCompleted = "Task marked as completed"
	MsgActive    = "Task marked as active"
	MsgCleared   = "All tasks cleared"
)

// IDSource mints task ids. Observe is called with every stored id so the
// source never hands out one that is already taken.
type IDSource interface {
	Next() string
	Observe(id string)
}

// TaskController owns the widget state: the stored task list, the visible
// registry derived from it, the feedback slot and the form/edit state.
// Commands are serialised and each runs to completion.
type TaskController struct {
	store    *services.TaskStore
	feedback *feedback.Slot
	ids      IDSource
	logger   *log.Logger

	mu       sync.Mutex
	registry *views.Registry
	input    string
	editFlag bool
	editID   string
}

// NewTaskController creates a new TaskController.
func NewTaskController(store *services.TaskStore, slot *feedback.Slot, ids IDSource, logger *log.Logger) *TaskController {
	return &TaskController{
		store:    store,
		feedback: slot,
		ids:      ids,
		logger:   logger,
		registry: views.NewRegistry(),
	}
}

// Load replays the stored tasks into the visible list.
func (c *TaskController) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refresh(ctx)
}

// Submit handles the task form. Empty or duplicate input only produces
// feedback; otherwise the task is created, or updated when editing.
func (c *TaskController) Submit(ctx context.Context, input string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	value := strings.TrimSpace(input)
	if value == "" {
		c.feedback.Show(MsgEmpty, feedback.Danger)
		return nil
	}

	tasks, err := c.store.Load(ctx)
	if err != nil {
		return err
	}
	exceptID := ""
	if c.editFlag {
		exceptID = c.editID
	}
	if hasValue(tasks, value, exceptID) {
		c.feedback.Show(MsgDuplicate, feedback.Danger)
		return nil
	}

	if c.editFlag {
		if err := c.store.SetValue(ctx, c.editID, value); err != nil {
			return err
		}
		c.logger.Debug("task updated", "id", c.editID)
		c.feedback.Show(MsgUpdated, feedback.Success)
	} else {
		for _, t := range tasks {
			c.ids.Observe(t.ID)
		}
		id := c.ids.Next()
		for hasID(tasks, id) {
			id = c.ids.Next()
		}
		if err := c.store.Add(ctx, id, value); err != nil {
			return err
		}
		c.logger.Debug("task added", "id", id)
		c.feedback.Show(MsgAdded, feedback.Success)
	}

	c.setBackToDefault()
	return c.refresh(ctx)
}

// Click handles a click delegated from the task list. Clicks outside any
// known entry, or on an unknown target, do nothing.
func (c *TaskController) Click(ctx context.Context, id, target string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.registry.Find(id); !ok {
		return nil
	}

	switch target {
	case TargetDelete:
		if err := c.store.Remove(ctx, id); err != nil {
			return err
		}
		if c.editFlag && c.editID == id {
			c.setBackToDefault()
		}
		c.logger.Debug("task removed", "id", id)
		c.feedback.Show(MsgRemoved, feedback.Danger)
	case TargetComplete:
		completed, found, err := c.store.Toggle(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			break
		}
		if completed {
			c.feedback.Show(MsgCompleted, feedback.Success)
		} else {
			c.feedback.Show(MsgActive, feedback.Success)
		}
	case TargetEdit:
		c.beginEdit(id)
		return nil
	default:
		return nil
	}
	return c.refresh(ctx)
}

// BeginEdit puts the form into edit mode for the task with the given id.
// It reports false when no such entry is visible.
func (c *TaskController) BeginEdit(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.beginEdit(id)
}

// CancelEdit leaves edit mode without changing anything.
func (c *TaskController) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setBackToDefault()
}

// ClearAll erases every task.
func (c *TaskController) ClearAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Clear(ctx); err != nil {
		return err
	}
	c.registry.Clear()
	c.logger.Debug("tasks cleared")
	c.feedback.Show(MsgCleared, feedback.Danger)
	c.setBackToDefault()
	return nil
}

// Page snapshots the current widget state for rendering.
func (c *TaskController) Page() views.Page {
	c.mu.Lock()
	defer c.mu.Unlock()

	label := LabelAdd
	if c.editFlag {
		label = LabelEdit
	}
	return views.Page{
		Entries:          c.registry.Entries(),
		Input:            c.input,
		SubmitLabel:      label,
		Editing:          c.editFlag,
		EditID:           c.editID,
		Feedback:         c.feedback.Current(),
		ContainerVisible: c.registry.ContainerVisible(),
		ClearVisible:     c.registry.ClearVisible(),
	}
}

// Tasks returns the stored task list.
func (c *TaskController) Tasks(ctx context.Context) ([]models.Task, error) {
	return c.store.Load(ctx)
}

// Feedback returns the message currently shown.
func (c *TaskController) Feedback() feedback.Message {
	return c.feedback.Current()
}

func (c *TaskController) beginEdit(id string) bool {
	entry, ok := c.registry.Find(id)
	if !ok {
		return false
	}
	c.editFlag = true
	c.editID = id
	c.input = entry.Value
	return true
}

func (c *TaskController) setBackToDefault() {
	c.input = ""
	c.editFlag = false
	c.editID = ""
}

// refresh rebuilds the visible list from the store.
func (c *TaskController) refresh(ctx context.Context) error {
	tasks, err := c.store.Load(ctx)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		c.ids.Observe(t.ID)
	}
	c.registry.Reset(tasks)
	return nil
}

func hasValue(tasks []models.Task, value, exceptID string) bool {
	for _, t := range tasks {
		if t.Value == value && t.ID != exceptID {
			return true
		}
	}
	return false
}

func hasID(tasks []models.Task, id string) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}
