package httpapi

import (
	"net/http"

	"github.com/eslsoft/studydesk/internal/entity"
)

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.academic.ListRecords(r.Context(), h.owner(r), r.URL.Query().Get("term"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, records)
}

func (h *Handler) addRecord(w http.ResponseWriter, r *http.Request) {
	var record entity.AcademicRecord
	if err := decodeJSON(w, r, &record); err != nil {
		h.writeError(w, r, err)
		return
	}
	created, err := h.academic.AddRecord(r.Context(), h.owner(r), &record)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.academic.DeleteRecord(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type gpaResponse struct {
	Term string  `json:"term,omitempty"`
	GPA  float64 `json:"gpa"`
}

func (h *Handler) gpa(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	gpa, err := h.academic.GPA(r.Context(), h.owner(r), term)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, gpaResponse{Term: term, GPA: gpa})
}
