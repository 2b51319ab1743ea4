package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studydesk/internal/adapter/repository"
	"github.com/eslsoft/studydesk/internal/infrastructure/config"
	"github.com/eslsoft/studydesk/internal/infrastructure/server"
	"github.com/eslsoft/studydesk/internal/usecase"
	"github.com/eslsoft/studydesk/internal/usecase/backup"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Store  *repository.Store

	Courses  usecase.CourseUsecase
	Content  usecase.ContentUsecase
	Cards    usecase.FlashcardUsecase
	Tasks    usecase.TaskUsecase
	Academic usecase.AcademicUsecase
	Profiles usecase.ProfileUsecase
	Owners   usecase.OwnerUsecase
	Backup   *backup.Service

	Server *server.Server
}
