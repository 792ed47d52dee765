package app

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"sentinelwatch/internal/dataset"
)

// ExportDataset builds the labeled training set from stored events and
// writes it as CSV and/or a PNG ranking chart.
func (a *App) ExportDataset(ctx context.Context, opts ExportOptions) error {
	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}

	minEvents := opts.MinEvents
	if minEvents <= 0 {
		minEvents = a.Config.Dataset.MinEvents
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database not configured; cannot export dataset")
	}
	if closeStore != nil {
		defer closeStore()
	}

	events, err := store.ListAllEvents(ctx)
	if err != nil {
		return err
	}
	if len(events) < minEvents {
		return fmt.Errorf("dataset insuficiente: %d eventos armazenados, mínimo %d", len(events), minEvents)
	}

	rows := dataset.Build(events)
	summary := dataset.Summarize(rows)
	a.Logger.Info().
		Int("total", summary.Total).
		Int("positive", summary.Positive).
		Int("negative", summary.Negative).
		Msg("exporting dataset")

	if opts.CSVPath != "" {
		if err := writeDatasetCSV(opts.CSVPath, rows); err != nil {
			return err
		}
	}

	if opts.PNGPath != "" {
		if err := writeDatasetPNG(opts.PNGPath, rows); err != nil {
			return err
		}
	}

	return nil
}

func writeDatasetCSV(path string, rows []dataset.Row) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(dataset.Header()); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row.Record()); err != nil {
			return err
		}
	}

	return writer.Error()
}

// writeDatasetPNG renders events ranked by impact score with the
// assigned label overlaid, a quick visual check of label balance.
func writeDatasetPNG(path string, rows []dataset.Row) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	ranked := dataset.SortByScore(rows)

	x := make([]float64, len(ranked))
	scores := make([]float64, len(ranked))
	labels := make([]float64, len(ranked))
	for i, row := range ranked {
		x[i] = float64(i)
		scores[i] = row.Vector.ImpactScore
		labels[i] = float64(row.Label)
	}

	scoreFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.0f")
	}
	graph := chart.Chart{
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			Name: "Rank",
		},
		YAxis: chart.YAxis{
			Name:           "Impact score",
			ValueFormatter: scoreFormatter,
		},
		YAxisSecondary: chart.YAxis{
			Name:           "Label",
			ValueFormatter: scoreFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Impact score",
				XValues: x,
				YValues: scores,
			},
			chart.ContinuousSeries{
				Name:    "Label",
				XValues: x,
				YValues: labels,
				YAxis:   chart.YAxisSecondary,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
