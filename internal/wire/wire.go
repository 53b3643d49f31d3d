// Package wire provides dependency injection for the fb application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"io"
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	cliadapter "github.com/example/formbuilder/internal/adapters/cli"
	"github.com/example/formbuilder/internal/adapters/graphql"
	"github.com/example/formbuilder/internal/adapters/i18n"
	"github.com/example/formbuilder/internal/adapters/ident"
	"github.com/example/formbuilder/internal/adapters/sqlite"
	"github.com/example/formbuilder/internal/adapters/terminal"
	"github.com/example/formbuilder/internal/app"
	"github.com/example/formbuilder/internal/config"
	"github.com/example/formbuilder/internal/db"
	"github.com/example/formbuilder/internal/logging"
	"github.com/example/formbuilder/internal/ports/primary"
)

var (
	cfg      *config.Config
	cfgErr   error
	cfgOnce  sync.Once
	registry = prometheus.NewRegistry()

	database       *sql.DB
	logger         *zap.Logger
	questionEditor primary.QuestionEditor
	logService     primary.LogService
	cacheService   primary.CacheService
	once           sync.Once
)

// Config returns the configuration of the current directory. It is loaded
// once and not validated, so commands that create the configuration can use it.
func Config() (*config.Config, error) {
	cfgOnce.Do(func() {
		dir, err := os.Getwd()
		if err != nil {
			cfgErr = err
			return
		}
		cfg, cfgErr = config.LoadConfig(dir)
	})
	return cfg, cfgErr
}

// Registry returns the registry holding the GraphQL operation metrics.
func Registry() *prometheus.Registry {
	return registry
}

// QuestionEditor returns the singleton QuestionEditor instance.
func QuestionEditor() primary.QuestionEditor {
	once.Do(initServices)
	return questionEditor
}

// LogService returns the singleton LogService instance.
func LogService() primary.LogService {
	once.Do(initServices)
	return logService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cfg, err := Config()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logFile, err := cfg.ResolveLogFile()
	if err != nil {
		log.Fatalf("failed to resolve log file: %v", err)
	}
	logger, err = logging.New(logging.Options{Level: cfg.LogLevel, File: logFile})
	if err != nil {
		log.Fatalf("failed to initialize logging: %v", err)
	}

	cachePath, err := cfg.ResolveCachePath()
	if err != nil {
		log.Fatalf("failed to resolve cache path: %v", err)
	}
	database, err = db.Open(cachePath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	queryCache := sqlite.NewQueryCacheRepository(database)
	submissions := sqlite.NewSubmissionRepository(database)

	translator, err := i18n.NewTranslator(cfg.Locale)
	if err != nil {
		log.Fatalf("failed to load messages: %v", err)
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	executor := graphql.NewInstrumentedExecutor(
		graphql.NewExecutor(cfg.Endpoint, httpClient, queryCache, cfg.Headers, logger),
		graphql.NewMetrics(registry),
	)

	// Create services (primary ports implementation)
	questionEditor = app.NewQuestionEditorService(
		executor,
		terminal.NewNotifier(os.Stderr),
		translator,
		ident.NewSlugifier(translator.Language().String()),
		ident.UUIDTokens{},
		submissions,
		logger,
		app.EditorConfig{SlugDebounce: cfg.SlugDebounce},
	)
	logService = app.NewLogService(submissions)
	cacheService = app.NewCacheService(queryCache)
}

// Shutdown flushes the logger and closes the database if services were started.
func Shutdown() {
	if logger != nil {
		_ = logger.Sync()
	}
	if database != nil {
		_ = database.Close()
	}
}

// QuestionAdapter returns a new QuestionAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func QuestionAdapter() *cliadapter.QuestionAdapter {
	return QuestionAdapterWithOutput(os.Stdout)
}

// QuestionAdapterWithOutput returns a new QuestionAdapter writing to the given output.
func QuestionAdapterWithOutput(out io.Writer) *cliadapter.QuestionAdapter {
	once.Do(initServices)
	return cliadapter.NewQuestionAdapter(questionEditor, out)
}

// LogAdapter returns a new LogAdapter writing to stdout.
func LogAdapter() *cliadapter.LogAdapter {
	return LogAdapterWithOutput(os.Stdout)
}

// LogAdapterWithOutput returns a new LogAdapter writing to the given output.
func LogAdapterWithOutput(out io.Writer) *cliadapter.LogAdapter {
	once.Do(initServices)
	return cliadapter.NewLogAdapter(logService, cacheService, out)
}
