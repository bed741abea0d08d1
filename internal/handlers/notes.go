package handlers

import (
	"log/slog"
	"net/http"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/middleware"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/go-chi/chi/v5"
)

type NoteHandler struct {
	noteRepo repository.NoteRepository
}

func NewNoteHandler(noteRepo repository.NoteRepository) *NoteHandler {
	return &NoteHandler{noteRepo: noteRepo}
}

func (handler *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	notes, err := handler.noteRepo.FindAll(ctx, user.ID)
	if err != nil {
		slog.Error("finding notes", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load notes")
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (handler *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var note models.Note
	if err := decodeJSON(r, &note); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if note.Title == "" && note.Content == "" {
		writeError(w, http.StatusBadRequest, "title or content is required")
		return
	}
	note.UserID = user.ID

	created, err := handler.noteRepo.Create(ctx, note)
	if err != nil {
		slog.Error("creating note", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create note")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (handler *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	note, err := handler.noteRepo.FindByID(ctx, chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}

	var payload models.Note
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note.Title = payload.Title
	note.Content = payload.Content
	note.Tags = payload.Tags

	if err := handler.noteRepo.Update(ctx, note); err != nil {
		slog.Error("updating note", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update note")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (handler *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	if err := handler.noteRepo.Delete(ctx, chi.URLParam(r, "id"), user.ID); err != nil {
		slog.Error("deleting note", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete note")
		return
	}
	w.WriteHeader(http.StatusOK)
}
