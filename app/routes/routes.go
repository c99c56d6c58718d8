package routes

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"todo-widget/app/controllers"
	"todo-widget/app/logging"
)

// RegisterRoutes sets up all routes for the application.
func RegisterRoutes(router *mux.Router, taskController *controllers.TaskController) {
	router.HandleFunc("/", taskController.Index).Methods(http.MethodGet)
	router.HandleFunc("/static/app.css", taskController.CSS).Methods(http.MethodGet)

	router.HandleFunc("/tasks", taskController.SubmitTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/click", taskController.ClickTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/clear", taskController.ClearTasks).Methods(http.MethodPost)
	router.HandleFunc("/tasks/edit/cancel", taskController.CancelEditTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{taskID}/delete", taskController.DeleteTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{taskID}/toggle", taskController.ToggleTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{taskID}/edit", taskController.EditTask).Methods(http.MethodPost)

	router.HandleFunc("/api/tasks", taskController.GetTasks).Methods(http.MethodGet)
	router.HandleFunc("/api/tasks/{taskID}", taskController.GetTaskByID).Methods(http.MethodGet)
	router.HandleFunc("/api/feedback", taskController.GetFeedback).Methods(http.MethodGet)
}

// NewRouter builds the router with request logging and security headers.
func NewRouter(taskController *controllers.TaskController, logger *log.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(mux.MiddlewareFunc(logging.Middleware(logger)), withSecurityHeaders)
	RegisterRoutes(router, taskController)
	return router
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; base-uri 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}
