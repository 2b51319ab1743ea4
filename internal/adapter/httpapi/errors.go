package httpapi

import (
	"errors"
	"net/http"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/usecase/backup"
)

type errorResponse struct {
	Error string `json:"error"`
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, backup.ErrMalformedImport):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrValidation),
		errors.Is(err, entity.ErrInvalidID),
		errors.Is(err, entity.ErrInvalidOwner),
		errors.Is(err, entity.ErrInvalidTheme),
		errors.Is(err, entity.ErrInvalidConfidence),
		errors.Is(err, entity.ErrInvalidGrade),
		errors.Is(err, entity.ErrReviewCountRegression),
		errors.Is(err, entity.ErrCourseArchived):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a usecase error onto a status code. Internal failures are
// logged and reported with a generic message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		msg = http.StatusText(status)
	}
	h.writeJSON(w, status, errorResponse{Error: msg})
}
