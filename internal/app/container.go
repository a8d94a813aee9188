package app

import (
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/spellnet/internal/infrastructure/config"
	"github.com/eslsoft/spellnet/internal/infrastructure/scheduler"
	"github.com/eslsoft/spellnet/internal/infrastructure/server"
	"github.com/eslsoft/spellnet/internal/repository"
	"github.com/eslsoft/spellnet/internal/usecase/transfer"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config    *config.Config
	Logger    *logrus.Logger
	DB        *sqlx.DB
	Words     repository.WordRepository
	Transfer  *transfer.Service
	Server    *server.Server
	Scheduler *scheduler.Scheduler
}

func provideTransfer(words repository.WordRepository, logger *logrus.Logger) *transfer.Service {
	return transfer.NewService(words, logger)
}
