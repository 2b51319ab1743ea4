package repository

import (
	"context"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/repository"
)

type academicRecordRepository struct {
	collection[entity.AcademicRecord]
}

// NewAcademicRecordRepository constructs the academic record repository.
func NewAcademicRecordRepository(s *Store) repository.AcademicRecordRepository {
	return &academicRecordRepository{collection[entity.AcademicRecord]{t: academicRecordTable(s)}}
}

func (r *academicRecordRepository) ListByTerm(ctx context.Context, owner *repository.OwnerFilter, term string) ([]entity.AcademicRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pred := entsql.EQ("term", term)
	if p := r.t.ownerPredicate(owner); p != nil {
		pred = entsql.And(pred, p)
	}
	ownerOK := r.t.ownerMatch(owner)
	return r.t.indexed(ctx, "list by term", "academicrecord_term", pred,
		func(rec *entity.AcademicRecord) bool { return ownerOK(rec) && rec.Term == term })
}

type studySessionRepository struct {
	collection[entity.StudySession]
}

// NewStudySessionRepository constructs the study session repository.
func NewStudySessionRepository(s *Store) repository.StudySessionRepository {
	return &studySessionRepository{collection[entity.StudySession]{t: studySessionTable(s)}}
}

func (r *studySessionRepository) ListByCourse(ctx context.Context, courseID string) ([]entity.StudySession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.indexed(ctx, "list by course", "studysession_course_id",
		entsql.EQ("course_id", courseID),
		func(ss *entity.StudySession) bool { return ss.CourseID == courseID })
}

type userRepository struct {
	c collection[entity.User]
}

// NewUserRepository constructs the profile repository.
func NewUserRepository(s *Store) repository.UserRepository {
	return &userRepository{c: collection[entity.User]{t: userTable(s)}}
}

func (r *userRepository) Get(ctx context.Context, name string) (*entity.User, error) {
	return r.c.Get(ctx, name)
}

func (r *userRepository) GetAll(ctx context.Context) ([]entity.User, error) {
	return r.c.GetAll(ctx, nil)
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.c.Update(ctx, user)
}

func (r *userRepository) Remove(ctx context.Context, name string) error {
	return r.c.Remove(ctx, name)
}
