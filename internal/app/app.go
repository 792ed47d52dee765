package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"sentinelwatch/internal/analyze"
	"sentinelwatch/internal/config"
	"sentinelwatch/internal/predictor"
	"sentinelwatch/internal/queue"
	"sentinelwatch/internal/service"
	"sentinelwatch/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newAnalyzer() (*analyze.Analyzer, error) {
	return analyze.NewAnalyzer(analyze.DefaultTaxonomy(), a.Logger)
}

// newPredictor loads the trained artifact when configured; any load
// failure downgrades to the heuristic instead of refusing to start.
func (a *App) newPredictor() *predictor.Predictor {
	var model *predictor.Model
	if path := a.Config.Predictor.ModelPath; path != "" {
		loaded, err := predictor.TryLoad(path)
		if err != nil {
			a.Logger.Warn().Err(err).Str("path", path).Msg("modelo indisponível, usando heurística")
		} else {
			a.Logger.Info().Str("model_version", loaded.Name()).Msg("modelo carregado")
			model = loaded
		}
	}

	var reasoner predictor.Reasoner
	if a.Config.Reasoning.Enabled {
		reasoner = predictor.NewClaudeReasoner(
			a.Config.Reasoning.APIKey,
			a.Config.Reasoning.Model,
			a.Config.Reasoning.Timeout,
			a.Logger,
		)
	}

	return predictor.New(model, reasoner, a.Logger)
}

func (a *App) openStore(ctx context.Context) (*storage.Store, func(), error) {
	if a.Config.Database.DSN == "" {
		return nil, nil, nil
	}

	pool, err := storage.NewPool(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, nil, err
	}

	closer := func() {
		store.Close()
	}
	return store, closer, nil
}

func (a *App) openQueue(ctx context.Context) (*queue.Client, func(), error) {
	client, err := queue.New(queue.Options{
		URL:        a.Config.Queue.URL,
		PopTimeout: a.Config.Queue.PopTimeout,
	}, a.Logger)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, nil, err
	}

	closer := func() {
		client.Close()
	}
	return client, closer, nil
}

// Run executes the long-running pipeline worker.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		a.Logger.Warn().Msg("database.dsn not configured; persistence disabled")
	}
	if closeStore != nil {
		defer closeStore()
	}

	q, closeQueue, err := a.openQueue(ctx)
	if err != nil {
		return err
	}
	defer closeQueue()

	analyzer, err := a.newAnalyzer()
	if err != nil {
		return err
	}

	var events storage.EventStore
	var preds storage.PredictionStore
	if store != nil {
		events = store
		preds = store
	}

	svc := service.New(a.Config, q, q, events, preds, analyzer, a.newPredictor(), a.Logger)

	a.Logger.Info().Msg("starting enrichment pipeline")
	err = svc.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("pipeline terminated with error")
		return err
	}

	a.Logger.Info().Msg("enrichment pipeline stopped")
	return nil
}

// ExportOptions hold parameters for the dataset export.
type ExportOptions struct {
	CSVPath   string
	PNGPath   string
	MinEvents int
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Limit int
}

// SimulateOptions describe the synthetic event pushed through the
// pipeline by the simulate command.
type SimulateOptions struct {
	Title     string
	Body      string
	EventType string
	SourceURL string
	Persist   bool
}
