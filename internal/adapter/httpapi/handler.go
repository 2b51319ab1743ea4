// Package httpapi exposes the study usecases as a JSON API for the browser front-end.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/infrastructure/config"
	"github.com/eslsoft/studydesk/internal/usecase"
	"github.com/eslsoft/studydesk/internal/usecase/backup"
)

// OwnerHeader carries the owner identifier of the caller.
const OwnerHeader = "X-Owner-ID"

const _maxBodyBytes = 1 << 20

type Handler struct {
	courses  usecase.CourseUsecase
	content  usecase.ContentUsecase
	cards    usecase.FlashcardUsecase
	tasks    usecase.TaskUsecase
	academic usecase.AcademicUsecase
	profiles usecase.ProfileUsecase
	backup   *backup.Service
	logger   *logrus.Logger

	profileName  string
	defaultOwner string
}

func NewHandler(
	cfg *config.Config,
	logger *logrus.Logger,
	courses usecase.CourseUsecase,
	content usecase.ContentUsecase,
	cards usecase.FlashcardUsecase,
	tasks usecase.TaskUsecase,
	academic usecase.AcademicUsecase,
	profiles usecase.ProfileUsecase,
	backupSvc *backup.Service,
) *Handler {
	return &Handler{
		courses:      courses,
		content:      content,
		cards:        cards,
		tasks:        tasks,
		academic:     academic,
		profiles:     profiles,
		backup:       backupSvc,
		logger:       logger,
		profileName:  cfg.User.Name,
		defaultOwner: cfg.User.Owner,
	}
}

// Routes returns the API mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/courses", h.listCourses)
	mux.HandleFunc("POST /api/courses", h.createCourse)
	mux.HandleFunc("GET /api/courses/{id}", h.getCourse)
	mux.HandleFunc("PUT /api/courses/{id}", h.updateCourse)
	mux.HandleFunc("DELETE /api/courses/{id}", h.deleteCourse)
	mux.HandleFunc("POST /api/courses/{id}/archive", h.archiveCourse)
	mux.HandleFunc("GET /api/courses/{id}/grade", h.courseGrade)

	mux.HandleFunc("GET /api/units", h.listUnits)
	mux.HandleFunc("POST /api/units", h.createUnit)
	mux.HandleFunc("DELETE /api/units/{id}", h.deleteUnit)

	mux.HandleFunc("GET /api/notes", h.listNotes)
	mux.HandleFunc("POST /api/notes", h.createNote)
	mux.HandleFunc("PUT /api/notes/{id}", h.updateNote)
	mux.HandleFunc("DELETE /api/notes/{id}", h.deleteNote)

	mux.HandleFunc("GET /api/flashcards", h.listFlashcards)
	mux.HandleFunc("POST /api/flashcards", h.createFlashcard)
	mux.HandleFunc("PUT /api/flashcards/{id}", h.updateFlashcard)
	mux.HandleFunc("DELETE /api/flashcards/{id}", h.deleteFlashcard)
	mux.HandleFunc("POST /api/flashcards/{id}/review", h.reviewFlashcard)

	mux.HandleFunc("GET /api/tasks", h.listTasks)
	mux.HandleFunc("POST /api/tasks", h.createTask)
	mux.HandleFunc("GET /api/tasks/today", h.todayTasks)
	mux.HandleFunc("GET /api/tasks/week", h.weekTasks)
	mux.HandleFunc("GET /api/tasks/{id}", h.getTask)
	mux.HandleFunc("PUT /api/tasks/{id}", h.updateTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", h.deleteTask)
	mux.HandleFunc("POST /api/tasks/{id}/complete", h.completeTask)

	mux.HandleFunc("GET /api/records", h.listRecords)
	mux.HandleFunc("POST /api/records", h.addRecord)
	mux.HandleFunc("DELETE /api/records/{id}", h.deleteRecord)
	mux.HandleFunc("GET /api/gpa", h.gpa)

	mux.HandleFunc("GET /api/profile", h.getProfile)
	mux.HandleFunc("PATCH /api/profile", h.updateProfile)
	mux.HandleFunc("GET /api/profile/theme", h.getTheme)
	mux.HandleFunc("PUT /api/profile/theme", h.setTheme)
	mux.HandleFunc("GET /api/profile/study", h.listSessions)
	mux.HandleFunc("POST /api/profile/study", h.recordStudy)

	mux.HandleFunc("GET /api/export", h.export)
	mux.HandleFunc("POST /api/import", h.importBackup)

	return mux
}

// owner resolves the caller's owner id, falling back to the configured default.
func (h *Handler) owner(r *http.Request) string {
	if owner := strings.TrimSpace(r.Header.Get(OwnerHeader)); owner != "" {
		return owner
	}
	return h.defaultOwner
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, _maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body required", entity.ErrValidation)
		}
		return fmt.Errorf("%w: decode request body: %v", entity.ErrValidation, err)
	}
	return nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.WithError(err).Warn("write response")
	}
}

func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", entity.ErrValidation, name)
	}
	return v, nil
}

func queryInt32(r *http.Request, name string) (int32, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a 32-bit integer", entity.ErrValidation, name)
	}
	return int32(v), nil
}

// ProvideRoutes exposes the handler's mux to the DI container.
func ProvideRoutes(h *Handler) http.Handler {
	return h.Routes()
}
