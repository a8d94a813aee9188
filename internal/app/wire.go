//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/jmoiron/sqlx"

	"github.com/eslsoft/spellnet/internal/adapter/repository"
	"github.com/eslsoft/spellnet/internal/adapter/rest"
	"github.com/eslsoft/spellnet/internal/infrastructure/config"
	"github.com/eslsoft/spellnet/internal/infrastructure/database"
	"github.com/eslsoft/spellnet/internal/infrastructure/scheduler"
	"github.com/eslsoft/spellnet/internal/infrastructure/server"
	repoport "github.com/eslsoft/spellnet/internal/repository"
	"github.com/eslsoft/spellnet/internal/usecase"
	"github.com/eslsoft/spellnet/internal/usecase/transfer"
)

var configSet = wire.NewSet(
	config.Load,
)

var databaseSet = wire.NewSet(
	database.NewDB,
	database.NewTransactor,
	wire.Bind(new(repoport.Transactor), new(*database.Transactor)),
)

var repositorySet = wire.NewSet(
	repository.NewWordRepository,
	repository.NewProgressRepository,
	repository.NewSessionRepository,
)

var usecaseSet = wire.NewSet(
	usecase.NewQuizUsecase,
	usecase.NewStatsUsecase,
	usecase.NewSessionUsecase,
	usecase.NewWordUsecase,
	provideTransfer,
)

var serviceSet = wire.NewSet(
	rest.NewHandler,
	rest.NewRouter,
	wire.Bind(new(rest.Pinger), new(*sqlx.DB)),
)

var serverSet = wire.NewSet(
	server.NewLogger,
	server.NewServer,
	scheduler.New,
	wire.Bind(new(scheduler.Exporter), new(*transfer.Service)),
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		databaseSet,
		repositorySet,
		usecaseSet,
		serviceSet,
		serverSet,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}
