package handlers

import (
	"log/slog"
	"net/http"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/middleware"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/services"
)

type QuickAddHandler struct {
	quickAddService *services.QuickAddService
	voiceService    *services.VoiceService
}

func NewQuickAddHandler(quickAddService *services.QuickAddService, voiceService *services.VoiceService) *QuickAddHandler {
	return &QuickAddHandler{quickAddService: quickAddService, voiceService: voiceService}
}

func (handler *QuickAddHandler) QuickAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var payload struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &payload); err != nil || payload.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	result, err := handler.quickAddService.Dispatch(ctx, user.ID, payload.Text)
	if err != nil {
		slog.Error("quick add failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to process input")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (handler *QuickAddHandler) Voice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var payload struct {
		Transcript string `json:"transcript"`
	}
	if err := decodeJSON(r, &payload); err != nil || payload.Transcript == "" {
		writeError(w, http.StatusBadRequest, "transcript is required")
		return
	}

	result := handler.voiceService.Process(ctx, user.ID, payload.Transcript)
	writeJSON(w, http.StatusOK, result)
}
