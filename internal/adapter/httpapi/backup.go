package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/eslsoft/studydesk/internal/usecase/backup"
)

func backupOptions(r *http.Request, owner string) []backup.Option {
	opts := []backup.Option{backup.WithOwner(owner)}
	if raw := r.URL.Query().Get("collections"); raw != "" {
		opts = append(opts, backup.WithCollections(strings.Split(raw, ",")))
	}
	return opts
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.backup.Export(r.Context(), &buf, backupOptions(r, h.owner(r))...); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "studydesk-backup.json"))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WithError(err).Warn("write export")
	}
}

func (h *Handler) importBackup(w http.ResponseWriter, r *http.Request) {
	if err := h.backup.Import(r.Context(), r.Body, backupOptions(r, h.owner(r))...); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
