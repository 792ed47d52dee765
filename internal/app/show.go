package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"sentinelwatch/internal/storage"
)

// Show prints recent enriched events and their predictions side by side.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database not configured; cannot show events")
	}
	if closeStore != nil {
		defer closeStore()
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	events, err := store.ListRecentEvents(ctx, limit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(os.Stdout, "no events found")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Time (UTC)\tTitle\tSector\tImpact\tUrgency\tScore\tProb\tConfidence\tModel")

	for _, ev := range events {
		probability := "-"
		confidence := "-"
		model := "-"
		prediction, err := store.GetPrediction(ctx, ev.ID)
		switch {
		case err == nil:
			probability = fmt.Sprintf("%.3f", prediction.Probability)
			confidence = prediction.Confidence
			model = prediction.ModelVersion
		case !errors.Is(err, storage.ErrNotFound):
			return err
		}

		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			ev.Timestamp,
			sanitizeInline(ev.Title),
			ev.Sector,
			ev.Impact,
			ev.Urgency,
			ev.Analytics.Score,
			probability,
			confidence,
			model,
		)
	}

	writer.Flush()
	return nil
}

func sanitizeInline(v string) string {
	cleaned := strings.ReplaceAll(v, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")
	return cleaned
}
