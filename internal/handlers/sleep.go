package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/middleware"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
)

type SleepHandler struct {
	sleepRepo repository.SleepRepository
}

func NewSleepHandler(sleepRepo repository.SleepRepository) *SleepHandler {
	return &SleepHandler{sleepRepo: sleepRepo}
}

func (handler *SleepHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	to := r.URL.Query().Get("to")
	if to == "" {
		to = time.Now().Format("2006-01-02")
	}
	from := r.URL.Query().Get("from")
	if from == "" {
		from = time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	}

	logs, err := handler.sleepRepo.FindRange(ctx, user.ID, from, to)
	if err != nil {
		slog.Error("finding sleep logs", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load sleep logs")
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (handler *SleepHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var log models.SleepLog
	if err := decodeJSON(r, &log); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if log.Date == "" {
		log.Date = time.Now().Format("2006-01-02")
	}
	log.UserID = user.ID

	saved, err := handler.sleepRepo.Upsert(ctx, log)
	if err != nil {
		slog.Error("saving sleep log", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save sleep log")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
