//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/eslsoft/studydesk/internal/adapter/httpapi"
	"github.com/eslsoft/studydesk/internal/adapter/repository"
	"github.com/eslsoft/studydesk/internal/infrastructure/config"
	"github.com/eslsoft/studydesk/internal/infrastructure/database"
	"github.com/eslsoft/studydesk/internal/infrastructure/server"
	"github.com/eslsoft/studydesk/internal/usecase"
	"github.com/eslsoft/studydesk/internal/usecase/backup"
)

var databaseSet = wire.NewSet(
	database.NewDriver,
	repository.NewStore,
)

var repositorySet = wire.NewSet(
	repository.NewCourseRepository,
	repository.NewUnitRepository,
	repository.NewNoteRepository,
	repository.NewFlashcardRepository,
	repository.NewTaskRepository,
	repository.NewAcademicRecordRepository,
	repository.NewStudySessionRepository,
	repository.NewUserRepository,
	repository.NewOwnerDataRepository,
	repository.NewSnapshotRepository,
	repository.ProvideThemeFlag,
)

var usecaseSet = wire.NewSet(
	usecase.NewCourseUsecase,
	usecase.NewContentUsecase,
	usecase.NewFlashcardUsecase,
	usecase.NewTaskUsecase,
	usecase.NewAcademicUsecase,
	usecase.NewProfileUsecase,
	usecase.NewOwnerUsecase,
	backup.NewService,
)

var serverSet = wire.NewSet(
	server.NewLogger,
	httpapi.NewHandler,
	httpapi.ProvideRoutes,
	server.NewServer,
)

// Initialize builds the application container using Wire.
func Initialize(cfg *config.Config) (*Container, func(), error) {
	wire.Build(
		databaseSet,
		repositorySet,
		usecaseSet,
		serverSet,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}
