package history

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/pedrocvaranda/modelo-alocacao-caixa/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
    id TEXT PRIMARY KEY,
    created_at INTEGER NOT NULL,
    valid INTEGER NOT NULL,
    reserve_pct REAL NOT NULL,
    growth_pct REAL NOT NULL,
    risk_pct REAL NOT NULL,
    bad_survival_probability REAL NOT NULL,
    bad_mean_months_to_zero REAL,
    reserve_value REAL NOT NULL,
    growth_value REAL NOT NULL,
    risk_value REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_evaluations_created_at ON evaluations(created_at);
`

// Repository handles evaluation history database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new history repository and ensures its schema.
func NewRepository(db *sql.DB, log zerolog.Logger) (*Repository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "history").Logger(),
	}, nil
}

// Save records an evaluation outcome. The infinite mean time-to-zero is
// stored as NULL.
func (r *Repository) Save(outcome domain.EvaluationOutcome) error {
	var meanMonths sql.NullFloat64
	if !math.IsInf(outcome.BadMeanMonthsToZero, 1) {
		meanMonths = sql.NullFloat64{Float64: outcome.BadMeanMonthsToZero, Valid: true}
	}

	query := `INSERT INTO evaluations (
		id, created_at, valid,
		reserve_pct, growth_pct, risk_pct,
		bad_survival_probability, bad_mean_months_to_zero,
		reserve_value, growth_value, risk_value
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		outcome.ID,
		outcome.CreatedAt.Unix(),
		outcome.Valid,
		outcome.ReservePct,
		outcome.GrowthPct,
		outcome.RiskPct,
		outcome.BadSurvivalProbability,
		meanMonths,
		outcome.ReserveValue,
		outcome.GrowthValue,
		outcome.RiskValue,
	)
	if err != nil {
		return fmt.Errorf("failed to insert evaluation %s: %w", outcome.ID, err)
	}

	r.log.Debug().Str("id", outcome.ID).Bool("valid", outcome.Valid).Msg("Evaluation recorded")
	return nil
}

// Get returns an evaluation record by ID.
func (r *Repository) Get(id string) (Record, error) {
	query := `SELECT id, created_at, valid,
		reserve_pct, growth_pct, risk_pct,
		bad_survival_probability, bad_mean_months_to_zero,
		reserve_value, growth_value, risk_value
	FROM evaluations WHERE id = ?`

	record, err := scanRecord(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return Record{}, fmt.Errorf("evaluation %s not found", id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to query evaluation %s: %w", id, err)
	}
	return record, nil
}

// List returns the most recent evaluation records, newest first.
func (r *Repository) List(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, created_at, valid,
		reserve_pct, growth_pct, risk_pct,
		bad_survival_probability, bad_mean_months_to_zero,
		reserve_value, growth_value, risk_value
	FROM evaluations ORDER BY created_at DESC, id LIMIT ?`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating evaluations: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (Record, error) {
	var record Record
	var createdAtUnix int64
	var meanMonths sql.NullFloat64

	err := row.Scan(
		&record.ID,
		&createdAtUnix,
		&record.Valid,
		&record.ReservePct,
		&record.GrowthPct,
		&record.RiskPct,
		&record.BadSurvivalProbability,
		&meanMonths,
		&record.ReserveValue,
		&record.GrowthValue,
		&record.RiskValue,
	)
	if err != nil {
		return Record{}, err
	}

	record.CreatedAt = time.Unix(createdAtUnix, 0).UTC()
	if meanMonths.Valid {
		record.BadMeanMonthsToZero = &meanMonths.Float64
	}
	return record, nil
}
