package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
)

type ICalHandler struct {
	taskRepo  repository.TaskRepository
	tokenRepo repository.APITokenRepository
}

func NewICalHandler(taskRepo repository.TaskRepository, tokenRepo repository.APITokenRepository) *ICalHandler {
	return &ICalHandler{taskRepo: taskRepo, tokenRepo: tokenRepo}
}

// Feed serves the user's open tasks with due dates as an iCal calendar.
// Calendar apps can't send headers, so auth is a token query parameter.
func (handler *ICalHandler) Feed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	token, err := handler.tokenRepo.FindByTokenHash(ctx, repository.HashToken(tokenString))
	if err != nil || (token.ExpiresAt != nil && token.ExpiresAt.Before(time.Now())) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tasks, err := handler.taskRepo.FindAll(ctx, token.UserID, repository.TaskFilter{
		Statuses: []models.TaskStatus{models.TaskStatusPending, models.TaskStatusInProgress},
	})
	if err != nil {
		slog.Error("finding tasks for ical", "error", err)
		http.Error(w, "Error", http.StatusInternalServerError)
		return
	}

	calendar := ical.NewCalendar()
	calendar.SetMethod(ical.MethodPublish)
	calendar.SetProductId("-//LifeOS//Tasks//ES")

	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}
		due, err := time.Parse("2006-01-02", *task.DueDate)
		if err != nil {
			continue
		}
		if task.DueTime != nil {
			if parsed, err := time.Parse("15:04", *task.DueTime); err == nil {
				due = time.Date(due.Year(), due.Month(), due.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.Local)
			}
		}

		event := calendar.AddEvent(fmt.Sprintf("task-%s@lifeos", task.ID))
		event.SetSummary(task.Title)
		event.SetDescription(task.Description)
		event.SetStartAt(due)
		event.SetEndAt(due.Add(30 * time.Minute))
		event.SetDtStampTime(time.Now())
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=lifeos-tasks.ics")
	w.Write([]byte(calendar.Serialize()))
}
