package httpapi

import (
	"fmt"
	"net/http"

	"github.com/eslsoft/studydesk/internal/entity"
)

func (h *Handler) listUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.content.ListUnits(r.Context(), r.URL.Query().Get("courseId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, units)
}

func (h *Handler) createUnit(w http.ResponseWriter, r *http.Request) {
	var unit entity.Unit
	if err := decodeJSON(w, r, &unit); err != nil {
		h.writeError(w, r, err)
		return
	}
	created, err := h.content.CreateUnit(r.Context(), h.owner(r), &unit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) deleteUnit(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteUnit(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	notes, err := h.content.ListNotes(r.Context(), q.Get("courseId"), q.Get("unitId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, notes)
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	var note entity.Note
	if err := decodeJSON(w, r, &note); err != nil {
		h.writeError(w, r, err)
		return
	}
	created, err := h.content.CreateNote(r.Context(), h.owner(r), &note)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	var note entity.Note
	if err := decodeJSON(w, r, &note); err != nil {
		h.writeError(w, r, err)
		return
	}
	note.ID = r.PathValue("id")
	updated, err := h.content.UpdateNote(r.Context(), &note)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteNote(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listFlashcards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		cards []entity.Flashcard
		err   error
	)
	switch {
	case q.Get("unitId") != "":
		cards, err = h.cards.ListByUnit(r.Context(), q.Get("unitId"))
	case q.Get("courseId") != "":
		cards, err = h.cards.ListByCourse(r.Context(), q.Get("courseId"))
	default:
		err = fmt.Errorf("%w: unitId or courseId required", entity.ErrInvalidID)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, cards)
}

func (h *Handler) createFlashcard(w http.ResponseWriter, r *http.Request) {
	var card entity.Flashcard
	if err := decodeJSON(w, r, &card); err != nil {
		h.writeError(w, r, err)
		return
	}
	created, err := h.cards.Create(r.Context(), h.owner(r), &card)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateFlashcard(w http.ResponseWriter, r *http.Request) {
	var card entity.Flashcard
	if err := decodeJSON(w, r, &card); err != nil {
		h.writeError(w, r, err)
		return
	}
	card.ID = r.PathValue("id")
	updated, err := h.cards.Update(r.Context(), &card)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteFlashcard(w http.ResponseWriter, r *http.Request) {
	if err := h.cards.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reviewRequest struct {
	Confidence int `json:"confidence"`
}

func (h *Handler) reviewFlashcard(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	card, err := h.cards.Review(r.Context(), r.PathValue("id"), req.Confidence)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, card)
}
