package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"sentinelwatch/internal/analyze"
	"sentinelwatch/internal/event"
	"sentinelwatch/internal/features"
	"sentinelwatch/internal/service"
	"sentinelwatch/internal/storage"
)

// SimulateEvent pushes one synthetic raw event through the full
// pipeline and prints the enriched record plus the prediction. With
// Persist enabled the documents are also upserted, exactly as the
// worker would.
func (a *App) SimulateEvent(ctx context.Context, opts SimulateOptions) error {
	if opts.Title == "" {
		return errors.New("--title is required")
	}

	raw := event.RawEvent{
		EventID:   uuid.NewString(),
		EventType: opts.EventType,
		Title:     opts.Title,
		Body:      opts.Body,
		Link:      opts.SourceURL,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Source: event.Source{
			ID:  "simulate",
			URL: opts.SourceURL,
		},
	}

	analyzer, err := a.newAnalyzer()
	if err != nil {
		return err
	}
	pred := a.newPredictor()

	enriched, err := analyzer.Enrich(raw)
	if err != nil {
		if errors.Is(err, analyze.ErrNotRelevant) {
			fmt.Fprintln(os.Stdout, "evento descartado: nenhum termo relevante encontrado")
			return nil
		}
		return err
	}

	vec := features.Extract(*enriched)
	prediction := pred.PredictEvent(ctx, *enriched, vec)

	if opts.Persist {
		store, closeStore, err := a.openStore(ctx)
		if err != nil {
			return err
		}
		if store == nil {
			return errors.New("database not configured; cannot persist simulation")
		}
		if closeStore != nil {
			defer closeStore()
		}

		var events storage.EventStore = store
		var preds storage.PredictionStore = store
		svc := service.New(a.Config, nil, nil, events, preds, analyzer, pred, a.Logger)
		if err := svc.ProcessRaw(ctx, raw); err != nil {
			return err
		}
	}

	return printSimulation(*enriched, prediction)
}

func printSimulation(enriched event.EnrichedEvent, prediction event.Prediction) error {
	out := struct {
		Event      event.EnrichedEvent `json:"event"`
		Prediction event.Prediction    `json:"prediction"`
	}{Event: enriched, Prediction: prediction}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
