package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/repository"
)

// ProfileUsecase manages the installation profile: theme, study streak and
// the study sessions that feed it.
type ProfileUsecase interface {
	Ensure(ctx context.Context, name string) (*entity.User, error)
	Get(ctx context.Context, name string) (*entity.User, error)
	SetAvatar(ctx context.Context, name, avatar string) (*entity.User, error)
	SetTheme(ctx context.Context, name, theme string) (*entity.User, error)
	Theme(ctx context.Context, name string) (entity.Theme, error)
	CachedTheme() entity.Theme
	RecordStudy(ctx context.Context, name string, session *entity.StudySession) (*entity.User, *entity.StudySession, error)
	Streak(ctx context.Context, name string) (int, error)
	Sessions(ctx context.Context, ownerID, courseID string) ([]entity.StudySession, error)
}

// NewProfileUsecase wires the repositories with default behaviour.
func NewProfileUsecase(users repository.UserRepository, sessions repository.StudySessionRepository, flag repository.ThemeFlag) ProfileUsecase {
	return &profileUsecase{
		users:    users,
		sessions: sessions,
		flag:     flag,
		clock:    time.Now,
	}
}

type profileUsecase struct {
	users    repository.UserRepository
	sessions repository.StudySessionRepository
	flag     repository.ThemeFlag
	clock    func() time.Time
}

func profileName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &entity.ValidationError{Entity: "user", Fields: []string{"Name(required)"}}
	}
	return name, nil
}

// Ensure returns the named profile, creating it with defaults on first use.
func (u *profileUsecase) Ensure(ctx context.Context, name string) (*entity.User, error) {
	name, err := profileName(name)
	if err != nil {
		return nil, err
	}
	user, err := u.users.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	user = &entity.User{Name: name, Theme: u.CachedTheme()}
	user.Normalize(u.clock())
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *profileUsecase) Get(ctx context.Context, name string) (*entity.User, error) {
	name, err := profileName(name)
	if err != nil {
		return nil, err
	}
	user, err := u.users.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrNotFound
	}
	return user, nil
}

func (u *profileUsecase) SetAvatar(ctx context.Context, name, avatar string) (*entity.User, error) {
	user, err := u.Ensure(ctx, name)
	if err != nil {
		return nil, err
	}
	user.Avatar = strings.TrimSpace(avatar)
	user.Normalize(u.clock())
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetTheme validates the theme and writes it to the profile and the flag file.
func (u *profileUsecase) SetTheme(ctx context.Context, name, theme string) (*entity.User, error) {
	parsed, err := entity.ParseTheme(theme)
	if err != nil {
		return nil, err
	}
	user, err := u.Ensure(ctx, name)
	if err != nil {
		return nil, err
	}
	user.Theme = parsed
	user.Normalize(u.clock())
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := u.flag.Save(parsed); err != nil {
		return nil, err
	}
	return user, nil
}

// Theme returns the profile's theme and brings the flag file in line with it.
// Without a profile the flag is used, and the system theme after that.
func (u *profileUsecase) Theme(ctx context.Context, name string) (entity.Theme, error) {
	name, err := profileName(name)
	if err != nil {
		return entity.ThemeUnspecified, err
	}
	cached := u.CachedTheme()
	user, err := u.users.Get(ctx, name)
	if err != nil {
		return entity.ThemeUnspecified, err
	}
	if user == nil {
		return cached, nil
	}
	theme := entity.NormalizeTheme(user.Theme)
	if theme != cached {
		if err := u.flag.Save(theme); err != nil {
			return entity.ThemeUnspecified, err
		}
	}
	return theme, nil
}

// CachedTheme reads only the flag file.
func (u *profileUsecase) CachedTheme() entity.Theme {
	theme, err := u.flag.Load()
	if err != nil || theme == entity.ThemeUnspecified {
		return entity.ThemeSystem
	}
	return theme
}

// RecordStudy logs a study session and advances the profile's streak.
func (u *profileUsecase) RecordStudy(ctx context.Context, name string, session *entity.StudySession) (*entity.User, *entity.StudySession, error) {
	if session == nil {
		return nil, nil, errors.New("study session payload required")
	}
	user, err := u.Ensure(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	now := u.clock()

	item := *session
	item.CreatedAt = time.Time{}
	item.CourseID = strings.TrimSpace(item.CourseID)
	item.Normalize(now)
	if err := item.Validate(); err != nil {
		return nil, nil, err
	}
	if err := u.sessions.Add(ctx, &item); err != nil {
		return nil, nil, err
	}

	user.StudyStreak = NextStudyStreak(user.LastStudyDate, user.StudyStreak, now)
	studied := now
	user.LastStudyDate = &studied
	user.Normalize(now)
	if err := u.users.Update(ctx, user); err != nil {
		return nil, nil, err
	}
	return user, &item, nil
}

// Streak is the streak still in effect now; it reads 0 once a day was skipped.
func (u *profileUsecase) Streak(ctx context.Context, name string) (int, error) {
	name, err := profileName(name)
	if err != nil {
		return 0, err
	}
	user, err := u.users.Get(ctx, name)
	if err != nil || user == nil {
		return 0, err
	}
	return CalculateStudyStreak(user.LastStudyDate, user.StudyStreak, u.clock()), nil
}

// Sessions lists study sessions, most recent first.
func (u *profileUsecase) Sessions(ctx context.Context, ownerID, courseID string) ([]entity.StudySession, error) {
	var (
		sessions []entity.StudySession
		err      error
	)
	if courseID = strings.TrimSpace(courseID); courseID != "" {
		sessions, err = u.sessions.ListByCourse(ctx, courseID)
	} else {
		sessions, err = u.sessions.GetAll(ctx, ownerScope(ownerID))
	}
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].StartedAt.After(sessions[j].StartedAt) })
	return sessions, nil
}
