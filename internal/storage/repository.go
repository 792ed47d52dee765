package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sentinelwatch/internal/event"
)

var (
	// ErrNotConfigured indicates the storage pool was not initialised.
	ErrNotConfigured = errors.New("storage: pool not configured")
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("storage: not found")
)

// Full documents live in JSONB; the extracted columns exist for
// filtering and ordering. Upserts replace by key: redelivery of the
// same event id overwrites, never duplicates.
const (
	createSchemaSQL = `CREATE TABLE IF NOT EXISTS events (
        id          TEXT PRIMARY KEY,
        event_type  TEXT NOT NULL,
        sector      TEXT NOT NULL,
        impact      TEXT NOT NULL,
        urgency     TEXT NOT NULL,
        country     TEXT NOT NULL,
        region      TEXT NOT NULL,
        score       INTEGER NOT NULL,
        event_ts    TEXT NOT NULL,
        doc         JSONB NOT NULL,
        created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
    );
    CREATE TABLE IF NOT EXISTS predictions (
        event_id       TEXT PRIMARY KEY,
        probability    DOUBLE PRECISION NOT NULL,
        confidence     TEXT NOT NULL,
        impact_category TEXT NOT NULL,
        model_version  TEXT NOT NULL,
        predicted_at   TEXT NOT NULL,
        doc            JSONB NOT NULL,
        created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
    );
    CREATE INDEX IF NOT EXISTS events_event_ts_idx ON events (event_ts DESC);
    CREATE INDEX IF NOT EXISTS events_impact_idx ON events (impact);`

	upsertEventSQL = `INSERT INTO events (
        id, event_type, sector, impact, urgency, country, region, score, event_ts, doc
    ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8,$9,$10
    )
    ON CONFLICT (id) DO UPDATE
    SET
        event_type = EXCLUDED.event_type,
        sector     = EXCLUDED.sector,
        impact     = EXCLUDED.impact,
        urgency    = EXCLUDED.urgency,
        country    = EXCLUDED.country,
        region     = EXCLUDED.region,
        score      = EXCLUDED.score,
        event_ts   = EXCLUDED.event_ts,
        doc        = EXCLUDED.doc;`

	getEventSQL = `SELECT doc FROM events WHERE id = $1;`

	listRecentEventsSQL = `SELECT doc FROM events ORDER BY event_ts DESC LIMIT $1;`

	listAllEventsSQL = `SELECT doc FROM events ORDER BY event_ts;`

	countEventsSQL = `SELECT COUNT(*) FROM events;`

	upsertPredictionSQL = `INSERT INTO predictions (
        event_id, probability, confidence, impact_category, model_version, predicted_at, doc
    ) VALUES (
        $1,$2,$3,$4,$5,$6,$7
    )
    ON CONFLICT (event_id) DO UPDATE
    SET
        probability     = EXCLUDED.probability,
        confidence      = EXCLUDED.confidence,
        impact_category = EXCLUDED.impact_category,
        model_version   = EXCLUDED.model_version,
        predicted_at    = EXCLUDED.predicted_at,
        doc             = EXCLUDED.doc;`

	getPredictionSQL = `SELECT doc FROM predictions WHERE event_id = $1;`

	listRecentPredictionsSQL = `SELECT doc FROM predictions ORDER BY predicted_at DESC LIMIT $1;`
)

// EventStore defines operations for enriched event persistence.
type EventStore interface {
	UpsertEvent(ctx context.Context, ev event.EnrichedEvent) error
	GetEvent(ctx context.Context, id string) (event.EnrichedEvent, error)
	ListRecentEvents(ctx context.Context, limit int) ([]event.EnrichedEvent, error)
	ListAllEvents(ctx context.Context) ([]event.EnrichedEvent, error)
	CountEvents(ctx context.Context) (int64, error)
}

// PredictionStore defines operations for prediction persistence.
type PredictionStore interface {
	UpsertPrediction(ctx context.Context, p event.Prediction) error
	GetPrediction(ctx context.Context, eventID string) (event.Prediction, error)
	ListRecentPredictions(ctx context.Context, limit int) ([]event.Prediction, error)
}

// Store aggregates access to events and predictions.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wires a pgx pool into a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

// EnsureSchema creates the tables and indexes when absent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}
	if _, execErr := pool.Exec(ctx, createSchemaSQL); execErr != nil {
		return fmt.Errorf("ensure schema: %w", execErr)
	}
	return nil
}

func (s *Store) getPool() (*pgxpool.Pool, error) {
	if s == nil || s.pool == nil {
		return nil, ErrNotConfigured
	}
	return s.pool, nil
}

// UpsertEvent persists or replaces an enriched event keyed by its id.
func (s *Store) UpsertEvent(ctx context.Context, ev event.EnrichedEvent) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}

	doc, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event doc: %w", err)
	}

	_, execErr := pool.Exec(ctx, upsertEventSQL,
		ev.ID,
		ev.Type,
		ev.Sector,
		ev.Impact,
		ev.Urgency,
		ev.Location.Country,
		ev.Location.Region,
		ev.Analytics.Score,
		ev.Timestamp,
		doc,
	)
	if execErr != nil {
		return fmt.Errorf("upsert event: %w", execErr)
	}
	return nil
}

// GetEvent fetches one enriched event by id.
func (s *Store) GetEvent(ctx context.Context, id string) (event.EnrichedEvent, error) {
	pool, err := s.getPool()
	if err != nil {
		return event.EnrichedEvent{}, err
	}

	var doc []byte
	if scanErr := pool.QueryRow(ctx, getEventSQL, id).Scan(&doc); scanErr != nil {
		if errors.Is(scanErr, pgx.ErrNoRows) {
			return event.EnrichedEvent{}, ErrNotFound
		}
		return event.EnrichedEvent{}, fmt.Errorf("get event: %w", scanErr)
	}
	return decodeEvent(doc)
}

// ListRecentEvents lists the most recent events by event timestamp.
func (s *Store) ListRecentEvents(ctx context.Context, limit int) ([]event.EnrichedEvent, error) {
	return s.queryEvents(ctx, listRecentEventsSQL, limit)
}

// ListAllEvents streams every stored event in timestamp order; used by
// the dataset exporter.
func (s *Store) ListAllEvents(ctx context.Context) ([]event.EnrichedEvent, error) {
	return s.queryEvents(ctx, listAllEventsSQL)
}

func (s *Store) queryEvents(ctx context.Context, sql string, args ...any) ([]event.EnrichedEvent, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, sql, args...)
	if queryErr != nil {
		return nil, fmt.Errorf("query events: %w", queryErr)
	}
	defer rows.Close()

	events := make([]event.EnrichedEvent, 0)
	for rows.Next() {
		var doc []byte
		if scanErr := rows.Scan(&doc); scanErr != nil {
			return nil, scanErr
		}
		ev, decErr := decodeEvent(doc)
		if decErr != nil {
			return nil, decErr
		}
		events = append(events, ev)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return events, nil
}

// CountEvents counts stored events.
func (s *Store) CountEvents(ctx context.Context) (int64, error) {
	pool, err := s.getPool()
	if err != nil {
		return 0, err
	}
	var count int64
	if scanErr := pool.QueryRow(ctx, countEventsSQL).Scan(&count); scanErr != nil {
		return 0, fmt.Errorf("count events: %w", scanErr)
	}
	return count, nil
}

// UpsertPrediction persists or replaces a prediction keyed by event_id.
func (s *Store) UpsertPrediction(ctx context.Context, p event.Prediction) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}

	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prediction doc: %w", err)
	}

	_, execErr := pool.Exec(ctx, upsertPredictionSQL,
		p.EventID,
		p.Probability,
		p.Confidence,
		p.ImpactCategory,
		p.ModelVersion,
		p.PredictedAt,
		doc,
	)
	if execErr != nil {
		return fmt.Errorf("upsert prediction: %w", execErr)
	}
	return nil
}

// GetPrediction fetches one prediction by event id.
func (s *Store) GetPrediction(ctx context.Context, eventID string) (event.Prediction, error) {
	pool, err := s.getPool()
	if err != nil {
		return event.Prediction{}, err
	}

	var doc []byte
	if scanErr := pool.QueryRow(ctx, getPredictionSQL, eventID).Scan(&doc); scanErr != nil {
		if errors.Is(scanErr, pgx.ErrNoRows) {
			return event.Prediction{}, ErrNotFound
		}
		return event.Prediction{}, fmt.Errorf("get prediction: %w", scanErr)
	}

	var p event.Prediction
	if decErr := json.Unmarshal(doc, &p); decErr != nil {
		return event.Prediction{}, fmt.Errorf("decode prediction doc: %w", decErr)
	}
	return p, nil
}

// ListRecentPredictions lists the most recent predictions.
func (s *Store) ListRecentPredictions(ctx context.Context, limit int) ([]event.Prediction, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listRecentPredictionsSQL, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list recent predictions: %w", queryErr)
	}
	defer rows.Close()

	predictions := make([]event.Prediction, 0, limit)
	for rows.Next() {
		var doc []byte
		if scanErr := rows.Scan(&doc); scanErr != nil {
			return nil, scanErr
		}
		var p event.Prediction
		if decErr := json.Unmarshal(doc, &p); decErr != nil {
			return nil, fmt.Errorf("decode prediction doc: %w", decErr)
		}
		predictions = append(predictions, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return predictions, nil
}

func decodeEvent(doc []byte) (event.EnrichedEvent, error) {
	var ev event.EnrichedEvent
	if err := json.Unmarshal(doc, &ev); err != nil {
		return event.EnrichedEvent{}, fmt.Errorf("decode event doc: %w", err)
	}
	return ev, nil
}

var (
	_ EventStore      = (*Store)(nil)
	_ PredictionStore = (*Store)(nil)
)
