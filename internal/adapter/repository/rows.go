package repository

import (
	"database/sql"
	"time"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/grade"
	"github.com/eslsoft/studydesk/internal/infrastructure/database/migrate"
	"github.com/eslsoft/studydesk/internal/infrastructure/database/types"
)

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}

func courseTable(s *Store) *table[entity.Course] {
	return &table[entity.Course]{
		s:      s,
		schema: migrate.CoursesTable,
		id:     func(c *entity.Course) string { return c.ID },
		owner:  func(c *entity.Course) string { return c.OwnerID },
		values: func(c *entity.Course) ([]any, error) {
			return []any{
				c.ID, nullString(c.OwnerID), c.Name, c.Color,
				nullString(c.Instructor), nullString(c.Schedule), nullString(c.Location), nullString(c.Description),
				c.Archived, c.CreatedAt.UTC(), c.UpdatedAt.UTC(),
			}, nil
		},
		scan: func(r rowScanner) (*entity.Course, error) {
			var (
				c                                          entity.Course
				owner, instructor, schedule, location, desc sql.NullString
			)
			if err := r.Scan(&c.ID, &owner, &c.Name, &c.Color, &instructor, &schedule, &location, &desc,
				&c.Archived, &c.CreatedAt, &c.UpdatedAt); err != nil {
				return nil, err
			}
			c.OwnerID = owner.String
			c.Instructor = instructor.String
			c.Schedule = schedule.String
			c.Location = location.String
			c.Description = desc.String
			c.CreatedAt, c.UpdatedAt = c.CreatedAt.UTC(), c.UpdatedAt.UTC()
			return &c, nil
		},
	}
}

func unitTable(s *Store) *table[entity.Unit] {
	return &table[entity.Unit]{
		s:      s,
		schema: migrate.UnitsTable,
		id:     func(u *entity.Unit) string { return u.ID },
		owner:  func(u *entity.Unit) string { return u.OwnerID },
		values: func(u *entity.Unit) ([]any, error) {
			return []any{
				u.ID, nullString(u.OwnerID), u.CourseID, u.Name, u.OrderIndex,
				nullString(u.Description), u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
			}, nil
		},
		scan: func(r rowScanner) (*entity.Unit, error) {
			var (
				u           entity.Unit
				owner, desc sql.NullString
				order       int64
			)
			if err := r.Scan(&u.ID, &owner, &u.CourseID, &u.Name, &order, &desc, &u.CreatedAt, &u.UpdatedAt); err != nil {
				return nil, err
			}
			u.OwnerID = owner.String
			u.OrderIndex = int(order)
			u.Description = desc.String
			u.CreatedAt, u.UpdatedAt = u.CreatedAt.UTC(), u.UpdatedAt.UTC()
			return &u, nil
		},
	}
}

func noteTable(s *Store) *table[entity.Note] {
	return &table[entity.Note]{
		s:      s,
		schema: migrate.NotesTable,
		id:     func(n *entity.Note) string { return n.ID },
		owner:  func(n *entity.Note) string { return n.OwnerID },
		values: func(n *entity.Note) ([]any, error) {
			tags, err := types.Tags(n.Tags).Value()
			if err != nil {
				return nil, err
			}
			return []any{
				n.ID, nullString(n.OwnerID), n.CourseID, n.UnitID, n.Title, n.Content,
				tags, n.CreatedAt.UTC(), n.UpdatedAt.UTC(),
			}, nil
		},
		scan: func(r rowScanner) (*entity.Note, error) {
			var (
				n     entity.Note
				owner sql.NullString
				tags  types.Tags
			)
			if err := r.Scan(&n.ID, &owner, &n.CourseID, &n.UnitID, &n.Title, &n.Content, &tags,
				&n.CreatedAt, &n.UpdatedAt); err != nil {
				return nil, err
			}
			n.OwnerID = owner.String
			n.Tags = []string(tags)
			n.CreatedAt, n.UpdatedAt = n.CreatedAt.UTC(), n.UpdatedAt.UTC()
			return &n, nil
		},
	}
}

func flashcardTable(s *Store) *table[entity.Flashcard] {
	return &table[entity.Flashcard]{
		s:      s,
		schema: migrate.FlashcardsTable,
		id:     func(f *entity.Flashcard) string { return f.ID },
		owner:  func(f *entity.Flashcard) string { return f.OwnerID },
		values: func(f *entity.Flashcard) ([]any, error) {
			tags, err := types.Tags(f.Tags).Value()
			if err != nil {
				return nil, err
			}
			return []any{
				f.ID, nullString(f.OwnerID), f.CourseID, f.UnitID, f.Question, f.Answer, tags,
				f.ConfidenceLevel, f.ReviewCount, nullTime(f.LastReviewed), f.CreatedAt.UTC(), f.UpdatedAt.UTC(),
			}, nil
		},
		scan: func(r rowScanner) (*entity.Flashcard, error) {
			var (
				f                   entity.Flashcard
				owner               sql.NullString
				tags                types.Tags
				confidence, reviews int64
				lastReviewed        sql.NullTime
			)
			if err := r.Scan(&f.ID, &owner, &f.CourseID, &f.UnitID, &f.Question, &f.Answer, &tags,
				&confidence, &reviews, &lastReviewed, &f.CreatedAt, &f.UpdatedAt); err != nil {
				return nil, err
			}
			f.OwnerID = owner.String
			f.Tags = []string(tags)
			f.ConfidenceLevel = int(confidence)
			f.ReviewCount = int(reviews)
			f.LastReviewed = timePtr(lastReviewed)
			f.CreatedAt, f.UpdatedAt = f.CreatedAt.UTC(), f.UpdatedAt.UTC()
			return &f, nil
		},
	}
}

func taskTable(s *Store) *table[entity.Task] {
	return &table[entity.Task]{
		s:      s,
		schema: migrate.TasksTable,
		id:     func(t *entity.Task) string { return t.ID },
		owner:  func(t *entity.Task) string { return t.OwnerID },
		values: func(t *entity.Task) ([]any, error) {
			return []any{
				t.ID, nullString(t.OwnerID), nullString(t.CourseID), t.Title, nullString(t.Description),
				t.DueDate.UTC(), string(t.Type), string(t.Status), int(t.Priority),
				nullFloat(t.Weight), nullFloat(t.Grade), nullTime(t.CompletedAt),
				t.CreatedAt.UTC(), t.UpdatedAt.UTC(),
			}, nil
		},
		scan: func(r rowScanner) (*entity.Task, error) {
			var (
				t                    entity.Task
				owner, course, desc  sql.NullString
				taskType, status     string
				priority             int64
				weight, gradeValue   sql.NullFloat64
				completedAt          sql.NullTime
			)
			if err := r.Scan(&t.ID, &owner, &course, &t.Title, &desc, &t.DueDate, &taskType, &status, &priority,
				&weight, &gradeValue, &completedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
				return nil, err
			}
			t.OwnerID = owner.String
			t.CourseID = course.String
			t.Description = desc.String
			t.DueDate = t.DueDate.UTC()
			t.Type = entity.TaskType(taskType)
			t.Status = entity.TaskStatus(status)
			t.Priority = entity.Priority(priority)
			t.Weight = floatPtr(weight)
			t.Grade = floatPtr(gradeValue)
			t.CompletedAt = timePtr(completedAt)
			t.CreatedAt, t.UpdatedAt = t.CreatedAt.UTC(), t.UpdatedAt.UTC()
			return &t, nil
		},
	}
}

func academicRecordTable(s *Store) *table[entity.AcademicRecord] {
	return &table[entity.AcademicRecord]{
		s:      s,
		schema: migrate.AcademicRecordsTable,
		id:     func(r *entity.AcademicRecord) string { return r.ID },
		owner:  func(r *entity.AcademicRecord) string { return r.OwnerID },
		values: func(r *entity.AcademicRecord) ([]any, error) {
			return []any{
				r.ID, nullString(r.OwnerID), r.Name, r.Term, r.Credits,
				nullString(string(r.Grade)), nullString(r.Notes), r.CreatedAt.UTC(), r.UpdatedAt.UTC(),
			}, nil
		},
		scan: func(row rowScanner) (*entity.AcademicRecord, error) {
			var (
				r                   entity.AcademicRecord
				owner, letter, note sql.NullString
			)
			if err := row.Scan(&r.ID, &owner, &r.Name, &r.Term, &r.Credits, &letter, &note,
				&r.CreatedAt, &r.UpdatedAt); err != nil {
				return nil, err
			}
			r.OwnerID = owner.String
			r.Grade = grade.Letter(letter.String)
			r.Notes = note.String
			r.CreatedAt, r.UpdatedAt = r.CreatedAt.UTC(), r.UpdatedAt.UTC()
			return &r, nil
		},
	}
}

func studySessionTable(s *Store) *table[entity.StudySession] {
	return &table[entity.StudySession]{
		s:      s,
		schema: migrate.StudySessionsTable,
		id:     func(ss *entity.StudySession) string { return ss.ID },
		owner:  func(ss *entity.StudySession) string { return ss.OwnerID },
		values: func(ss *entity.StudySession) ([]any, error) {
			return []any{
				ss.ID, nullString(ss.OwnerID), nullString(ss.CourseID), ss.StartedAt.UTC(), ss.DurationMinutes,
				nullString(ss.Notes), ss.CreatedAt.UTC(), ss.UpdatedAt.UTC(),
			}, nil
		},
		scan: func(r rowScanner) (*entity.StudySession, error) {
			var (
				ss                  entity.StudySession
				owner, course, note sql.NullString
				minutes             int64
			)
			if err := r.Scan(&ss.ID, &owner, &course, &ss.StartedAt, &minutes, &note, &ss.CreatedAt, &ss.UpdatedAt); err != nil {
				return nil, err
			}
			ss.OwnerID = owner.String
			ss.CourseID = course.String
			ss.StartedAt = ss.StartedAt.UTC()
			ss.DurationMinutes = int(minutes)
			ss.Notes = note.String
			ss.CreatedAt, ss.UpdatedAt = ss.CreatedAt.UTC(), ss.UpdatedAt.UTC()
			return &ss, nil
		},
	}
}

func userTable(s *Store) *table[entity.User] {
	return &table[entity.User]{
		s:      s,
		schema: migrate.UserProfilesTable,
		id:     func(u *entity.User) string { return u.Name },
		values: func(u *entity.User) ([]any, error) {
			return []any{
				u.Name, nullString(u.Avatar), string(entity.NormalizeTheme(u.Theme)), u.StudyStreak,
				nullTime(u.LastStudyDate), u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
			}, nil
		},
		scan: func(r rowScanner) (*entity.User, error) {
			var (
				u         entity.User
				avatar    sql.NullString
				theme     string
				streak    int64
				lastStudy sql.NullTime
			)
			if err := r.Scan(&u.Name, &avatar, &theme, &streak, &lastStudy, &u.CreatedAt, &u.UpdatedAt); err != nil {
				return nil, err
			}
			u.Avatar = avatar.String
			u.Theme = entity.Theme(theme)
			u.StudyStreak = int(streak)
			u.LastStudyDate = timePtr(lastStudy)
			u.CreatedAt, u.UpdatedAt = u.CreatedAt.UTC(), u.UpdatedAt.UTC()
			return &u, nil
		},
	}
}
