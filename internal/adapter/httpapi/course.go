package httpapi

import (
	"net/http"

	"github.com/eslsoft/studydesk/internal/entity"
)

func (h *Handler) listCourses(w http.ResponseWriter, r *http.Request) {
	includeArchived, err := queryBool(r, "archived")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	courses, err := h.courses.List(r.Context(), h.owner(r), includeArchived)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, courses)
}

func (h *Handler) createCourse(w http.ResponseWriter, r *http.Request) {
	var course entity.Course
	if err := decodeJSON(w, r, &course); err != nil {
		h.writeError(w, r, err)
		return
	}
	created, err := h.courses.Create(r.Context(), h.owner(r), &course)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) getCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.courses.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, course)
}

func (h *Handler) updateCourse(w http.ResponseWriter, r *http.Request) {
	var course entity.Course
	if err := decodeJSON(w, r, &course); err != nil {
		h.writeError(w, r, err)
		return
	}
	course.ID = r.PathValue("id")
	updated, err := h.courses.Update(r.Context(), &course)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

type archiveRequest struct {
	Archived *bool `json:"archived"`
}

func (h *Handler) archiveCourse(w http.ResponseWriter, r *http.Request) {
	req := archiveRequest{}
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			h.writeError(w, r, err)
			return
		}
	}
	archived := true
	if req.Archived != nil {
		archived = *req.Archived
	}
	course, err := h.courses.Archive(r.Context(), r.PathValue("id"), archived)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, course)
}

func (h *Handler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := h.courses.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) courseGrade(w http.ResponseWriter, r *http.Request) {
	summary, err := h.tasks.GradeSummary(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}
