package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/middleware"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
	profileRepo   repository.ProfileRepository
}

func NewReportHandler(reportService *services.ReportService, profileRepo repository.ProfileRepository) *ReportHandler {
	return &ReportHandler{reportService: reportService, profileRepo: profileRepo}
}

func (handler *ReportHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	report, err := handler.reportService.Weekly(ctx, user.ID, time.Now())
	if err != nil {
		slog.Error("building weekly report", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (handler *ReportHandler) TDEE(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	profile, err := handler.profileRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}

	result, err := services.CalculateTDEE(profile)
	if err != nil {
		if errors.Is(err, services.ErrProfileIncomplete) {
			writeError(w, http.StatusBadRequest, "profile is incomplete")
			return
		}
		slog.Error("calculating tdee", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to calculate")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type ProfileHandler struct {
	profileRepo repository.ProfileRepository
}

func NewProfileHandler(profileRepo repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profileRepo: profileRepo}
}

func (handler *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	profile, err := handler.profileRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (handler *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var profile models.Profile
	if err := decodeJSON(r, &profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	profile.UserID = user.ID

	saved, err := handler.profileRepo.Upsert(ctx, profile)
	if err != nil {
		slog.Error("saving profile", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
