package httpapi

import (
	"net/http"

	"github.com/eslsoft/studydesk/internal/entity"
)

type profileResponse struct {
	*entity.User
	// CurrentStreak is the streak as of today; the stored value is not reset
	// until the next study action.
	CurrentStreak int `json:"currentStreak"`
}

func (h *Handler) profileView(r *http.Request, user *entity.User) (profileResponse, error) {
	streak, err := h.profiles.Streak(r.Context(), user.Name)
	if err != nil {
		return profileResponse{}, err
	}
	return profileResponse{User: user, CurrentStreak: streak}, nil
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.profiles.Ensure(r.Context(), h.profileName)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.profileView(r, user)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

type profilePatch struct {
	Avatar *string `json:"avatar"`
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var patch profilePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := h.profiles.Ensure(r.Context(), h.profileName)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if patch.Avatar != nil {
		if user, err = h.profiles.SetAvatar(r.Context(), h.profileName, *patch.Avatar); err != nil {
			h.writeError(w, r, err)
			return
		}
	}
	view, err := h.profileView(r, user)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

type themeBody struct {
	Theme string `json:"theme"`
}

func (h *Handler) getTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.profiles.Theme(r.Context(), h.profileName)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, themeBody{Theme: string(theme)})
}

func (h *Handler) setTheme(w http.ResponseWriter, r *http.Request) {
	var req themeBody
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := h.profiles.SetTheme(r.Context(), h.profileName, req.Theme)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, themeBody{Theme: string(user.Theme)})
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.profiles.Sessions(r.Context(), h.owner(r), r.URL.Query().Get("courseId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sessions)
}

type studyResponse struct {
	Profile *entity.User         `json:"profile"`
	Session *entity.StudySession `json:"session"`
}

func (h *Handler) recordStudy(w http.ResponseWriter, r *http.Request) {
	var session entity.StudySession
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &session); err != nil {
			h.writeError(w, r, err)
			return
		}
	}
	if session.OwnerID == "" {
		session.OwnerID = h.owner(r)
	}
	user, stored, err := h.profiles.RecordStudy(r.Context(), h.profileName, &session)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, studyResponse{Profile: user, Session: stored})
}
