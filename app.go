package hjarta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/0xalexb/hjarta/config"
	"github.com/0xalexb/hjarta/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is a configured starting point for application using Fx.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &App{
		app: configure(&options),
	}
}

func configure(options *Options) *fx.App {
	logger := createLogger(options.LogLevel, os.Stderr)
	slog.SetDefault(logger)

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(logging.LoggerConfig{Level: options.LogLevel}),
		fx.Supply(logger),
		configModule(options),
		fx.Options(options.Modules...),
	)
}

// configModule wires schema initialization when a document source is set.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func configModule(options *Options) fx.Option {
	if options.Document == nil {
		return fx.Options()
	}

	schema := options.Schema
	if schema == nil {
		schema = config.Default()
	}

	var loggingField *config.Field[logging.LoggerConfig]

	if options.ConfiguredLogging {
		field, err := logging.Ensure(schema)
		if err != nil {
			return fx.Error(err)
		}

		loggingField = field
	}

	return fx.Options(
		fx.Provide(options.Document),
		config.Module(schema),
		fx.Invoke(func(_ *config.Store) {
			if loggingField == nil {
				return
			}

			configured := logging.NewLogger(loggingField.Configured(), os.Stderr)
			slog.SetDefault(configured)
			configured.Debug("logger configured from document")
		}),
	)
}

func createLogger(level string, w io.Writer) *slog.Logger {
	cfg := logging.LoggerConfig{Level: level}

	return logging.NewLogger(cfg, w)
}

// Start starts the Fx application.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Err returns the error encountered while building the application, if any.
// Configuration errors surface here when the document is invalid.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	return app.app.Err()
}
