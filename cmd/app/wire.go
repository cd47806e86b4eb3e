//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/darkroompro/devcalc/internal/bootstrap"
	"github.com/darkroompro/devcalc/internal/domain/export"
	"github.com/darkroompro/devcalc/internal/domain/history"
	"github.com/darkroompro/devcalc/internal/domain/preferences"
	"github.com/darkroompro/devcalc/internal/infra/config"
	"github.com/darkroompro/devcalc/internal/infra/dataset"
	httpiface "github.com/darkroompro/devcalc/internal/interface/http"
	"github.com/darkroompro/devcalc/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideDatasetSource,
		provideCalculator,
		provideHistoryConfig,
		provideHistoryRepository,
		providePreferencesConfig,
		providePreferenceStore,
		provideExportConfig,
		provideExportStorage,
		history.NewService,
		preferences.NewService,
		export.NewService,
		wire.Bind(new(httpiface.DatasetSource), new(*dataset.FileSource)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
