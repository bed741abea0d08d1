package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/middleware"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	taskRepo repository.TaskRepository
}

func NewTaskHandler(taskRepo repository.TaskRepository) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo}
}

func (handler *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	filter := repository.TaskFilter{DueDate: r.URL.Query().Get("due_date")}
	if status := r.URL.Query().Get("status"); status != "" {
		s := models.TaskStatus(status)
		filter.Status = &s
	}
	if priority := r.URL.Query().Get("priority"); priority != "" {
		p := models.TaskPriority(priority)
		filter.Priority = &p
	}

	tasks, err := handler.taskRepo.FindAll(ctx, user.ID, filter)
	if err != nil {
		slog.Error("finding tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load tasks")
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (handler *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	task, err := handler.taskRepo.FindByID(ctx, chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (handler *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var task models.Task
	if err := decodeJSON(r, &task); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if task.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	task.UserID = user.ID

	created, err := handler.taskRepo.Create(ctx, task)
	if err != nil {
		slog.Error("creating task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create task")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (handler *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	task, err := handler.taskRepo.FindByID(ctx, chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	var payload models.Task
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task.Title = payload.Title
	task.Description = payload.Description
	task.Priority = payload.Priority
	task.Status = payload.Status
	task.DueDate = payload.DueDate
	task.DueTime = payload.DueTime

	if err := handler.taskRepo.Update(ctx, task); err != nil {
		slog.Error("updating task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (handler *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	task, err := handler.taskRepo.FindByID(ctx, chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	now := time.Now()
	task.Status = models.TaskStatusCompleted
	task.CompletedAt = &now

	if err := handler.taskRepo.Update(ctx, task); err != nil {
		slog.Error("completing task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to complete task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (handler *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	if err := handler.taskRepo.Delete(ctx, chi.URLParam(r, "id"), user.ID); err != nil {
		slog.Error("deleting task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}
	w.WriteHeader(http.StatusOK)
}
