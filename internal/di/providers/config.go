// Package providers contains dependency injection providers for the book diary server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/ElenaBalahnina123/BookDiary/internal/config"
	"github.com/ElenaBalahnina123/BookDiary/internal/logger"
	"github.com/ElenaBalahnina123/BookDiary/internal/validation"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting BookDiary Server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Data.BasePath,
		"catalog_url", cfg.Catalog.BaseURL,
	)

	return log, nil
}

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
