package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"todo-widget/app/logging"
	"todo-widget/app/views"
)

// Index handles GET /: a page load rebuilds the list from storage.
func (c *TaskController) Index(w http.ResponseWriter, r *http.Request) {
	if err := c.Load(r.Context()); err != nil {
		c.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := views.WritePage(&buf, c.Page()); err != nil {
		c.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// CSS handles GET /static/app.css.
func (c *TaskController) CSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write([]byte(views.AppCSS))
}

// SubmitTask handles POST /tasks.
func (c *TaskController) SubmitTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	if err := c.Submit(r.Context(), r.PostFormValue("value")); err != nil {
		c.fail(w, r, err)
		return
	}
	backToPage(w, r)
}

// ClickTask handles POST /tasks/click, a click delegated from the list.
func (c *TaskController) ClickTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	c.click(w, r, r.PostFormValue("id"), r.PostFormValue("target"))
}

// DeleteTask handles POST /tasks/{taskID}/delete.
func (c *TaskController) DeleteTask(w http.ResponseWriter, r *http.Request) {
	c.click(w, r, mux.Vars(r)["taskID"], TargetDelete)
}

// ToggleTask handles POST /tasks/{taskID}/toggle.
func (c *TaskController) ToggleTask(w http.ResponseWriter, r *http.Request) {
	c.click(w, r, mux.Vars(r)["taskID"], TargetComplete)
}

// EditTask handles POST /tasks/{taskID}/edit.
func (c *TaskController) EditTask(w http.ResponseWriter, r *http.Request) {
	c.click(w, r, mux.Vars(r)["taskID"], TargetEdit)
}

// CancelEditTask handles POST /tasks/edit/cancel.
func (c *TaskController) CancelEditTask(w http.ResponseWriter, r *http.Request) {
	c.CancelEdit()
	backToPage(w, r)
}

// ClearTasks handles POST /tasks/clear.
func (c *TaskController) ClearTasks(w http.ResponseWriter, r *http.Request) {
	if err := c.ClearAll(r.Context()); err != nil {
		c.fail(w, r, err)
		return
	}
	backToPage(w, r)
}

// GetTasks handles GET /api/tasks.
func (c *TaskController) GetTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := c.Tasks(r.Context())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// GetTaskByID handles GET /api/tasks/{taskID}.
func (c *TaskController) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]
	tasks, err := c.Tasks(r.Context())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	for _, t := range tasks {
		if t.ID == taskID {
			writeJSON(w, http.StatusOK, t)
			return
		}
	}
	http.Error(w, "Task not found", http.StatusNotFound)
}

// GetFeedback handles GET /api/feedback.
func (c *TaskController) GetFeedback(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.Feedback())
}

func (c *TaskController) click(w http.ResponseWriter, r *http.Request, id, target string) {
	if err := c.Click(r.Context(), id, target); err != nil {
		c.fail(w, r, err)
		return
	}
	backToPage(w, r)
}

func (c *TaskController) fail(w http.ResponseWriter, r *http.Request, err error) {
	c.logger.Error("request failed",
		"id", logging.RequestID(r.Context()),
		"path", r.URL.Path,
		"err", err,
	)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func backToPage(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
