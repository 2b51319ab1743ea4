package httpapi

import (
	"net/http"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/repository"
)

type listTasksResponse struct {
	Items    []entity.Task `json:"items"`
	Total    int64         `json:"total"`
	PageNo   int32         `json:"pageNo,omitempty"`
	PageSize int32         `json:"pageSize,omitempty"`
}

// listTasks returns every task in display order, or one filtered page when any
// of filter, order_by, page_no or page_size is given.
func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("filter") && !q.Has("order_by") && !q.Has("page_no") && !q.Has("page_size") {
		tasks, err := h.tasks.List(r.Context(), h.owner(r))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, http.StatusOK, listTasksResponse{Items: tasks, Total: int64(len(tasks))})
		return
	}

	pageNo, err := queryInt32(r, "page_no")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	pageSize, err := queryInt32(r, "page_size")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	query := &repository.ListTaskQuery{
		Pagination: repository.Pagination{PageNo: pageNo, PageSize: pageSize},
		FilterOrder: repository.FilterOrder{
			Filter:  q.Get("filter"),
			OrderBy: q.Get("order_by"),
		},
	}
	tasks, total, err := h.tasks.Filter(r.Context(), h.owner(r), query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, listTasksResponse{
		Items:    tasks,
		Total:    total,
		PageNo:   query.PageNo,
		PageSize: query.PageSize,
	})
}

func (h *Handler) todayTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.Today(r.Context(), h.owner(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tasks)
}

func (h *Handler) weekTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.Week(r.Context(), h.owner(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tasks)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var task entity.Task
	if err := decodeJSON(w, r, &task); err != nil {
		h.writeError(w, r, err)
		return
	}
	created, err := h.tasks.Create(r.Context(), h.owner(r), &task)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, task)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	var task entity.Task
	if err := decodeJSON(w, r, &task); err != nil {
		h.writeError(w, r, err)
		return
	}
	task.ID = r.PathValue("id")
	updated, err := h.tasks.Update(r.Context(), &task)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type completeRequest struct {
	Grade *float64 `json:"grade"`
}

func (h *Handler) completeTask(w http.ResponseWriter, r *http.Request) {
	req := completeRequest{}
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			h.writeError(w, r, err)
			return
		}
	}
	task, err := h.tasks.Complete(r.Context(), r.PathValue("id"), req.Grade)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, task)
}
