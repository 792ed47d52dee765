package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"sentinelwatch/internal/analyze"
	"sentinelwatch/internal/config"
	"sentinelwatch/internal/event"
	"sentinelwatch/internal/features"
	"sentinelwatch/internal/predictor"
	"sentinelwatch/internal/storage"
)

// Source pops one raw payload from a named queue. A nil payload with nil
// error signals an idle timeout.
type Source interface {
	Pop(ctx context.Context, queue string) ([]byte, error)
}

// Publisher pushes a document onto a named queue.
type Publisher interface {
	Publish(ctx context.Context, queue string, v any) error
}

// Service runs the enrichment and impact-scoring pipeline: consume one
// raw event, normalize, filter, classify, extract features, predict, and
// persist. Everything is computed before any write, so redelivery at any
// point is safe.
// is safe.
type Service struct {
	source    Source
	publisher Publisher
	events    storage.EventStore
	preds     storage.PredictionStore
	analyzer  *analyze.Analyzer
	predictor *predictor.Predictor
	logger    zerolog.Logger

	queues      config.QueueConfig
	idleBackoff time.Duration
}

// New constructs the pipeline service.
func New(cfg *config.Config, source Source, publisher Publisher, events storage.EventStore, preds storage.PredictionStore, analyzer *analyze.Analyzer, pred *predictor.Predictor, logger zerolog.Logger) *Service {
	idle := cfg.Queue.IdleBackoff
	if idle <= 0 {
		idle = 500 * time.Millisecond
	}

	return &Service{
		source:      source,
		publisher:   publisher,
		events:      events,
		preds:       preds,
		analyzer:    analyzer,
		predictor:   pred,
		logger:      logger.With().Str("component", "service").Logger(),
		queues:      cfg.Queue,
		idleBackoff: idle,
	}
}

// Run consumes the inbound queue until the context is cancelled. Each
// item is processed start-to-finish before the next is dequeued; only
// queue or storage connectivity failures terminate the loop.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info().Str("queue", s.queues.EventsQueue).Msg("pipeline aguardando eventos na fila")

	for {
		payload, err := s.source.Pop(ctx, s.queues.EventsQueue)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("pop raw event: %w", err)
		}
		if payload == nil {
			if err := sleepCtx(ctx, s.idleBackoff); err != nil {
				return err
			}
			continue
		}

		var raw event.RawEvent
		if err := json.Unmarshal(payload, &raw); err != nil {
			// Malformed input: log and discard, never retry.
			s.logger.Error().Err(err).Msg("payload indecifrável descartado")
			continue
		}

		if err := s.ProcessRaw(ctx, raw); err != nil {
			switch {
			case errors.Is(err, analyze.ErrNotRelevant):
				s.logger.Debug().Str("event_id", raw.EventID).Msg("evento irrelevante descartado")
			case ctx.Err() != nil:
				return ctx.Err()
			default:
				// Connectivity to storage/queue is the only failure
				// allowed to halt a worker.
				return err
			}
		}
	}
}

// ProcessRaw runs one raw event through the full pipeline. Returns
// ErrNotRelevant for filtered items and a wrapped error when persistence
// or publishing fails.
func (s *Service) ProcessRaw(ctx context.Context, raw event.RawEvent) error {
	enriched, err := s.analyzer.Enrich(raw)
	if err != nil {
		return err
	}

	vec := features.Extract(*enriched)
	prediction := s.predictor.PredictEvent(ctx, *enriched, vec)

	if s.events != nil {
		if err := s.events.UpsertEvent(ctx, *enriched); err != nil {
			return fmt.Errorf("persist event %s: %w", enriched.ID, err)
		}
	}
	if s.preds != nil {
		if err := s.preds.UpsertPrediction(ctx, prediction); err != nil {
			return fmt.Errorf("persist prediction %s: %w", enriched.ID, err)
		}
	}

	if s.publisher != nil {
		if s.queues.EnrichedQueue != "" {
			if err := s.publisher.Publish(ctx, s.queues.EnrichedQueue, enriched); err != nil {
				return fmt.Errorf("publish enriched event %s: %w", enriched.ID, err)
			}
		}
		if s.queues.AlertsQueue != "" {
			if err := s.publisher.Publish(ctx, s.queues.AlertsQueue, enriched); err != nil {
				return fmt.Errorf("publish alert %s: %w", enriched.ID, err)
			}
		}
	}

	s.logger.Info().
		Str("event_id", enriched.ID).
		Str("type", enriched.Type).
		Str("impact", enriched.Impact).
		Str("sector", enriched.Sector).
		Float64("probability", prediction.Probability).
		Str("model_version", prediction.ModelVersion).
		Msg("evento processado e salvo")

	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
