package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecordRepository is the durable audit store for completed intake records.
type RecordRepository interface {
	Save(ctx context.Context, record *entity.IntakeRecord) error
	GetByID(ctx context.Context, id string) (*entity.IntakeRecord, error)
}

var _ RecordRepository = &RecordPostgres{}

// RecordPostgres implements RecordRepository using PostgreSQL. Answer fields
// are stored as JSONB so the table survives questionnaire changes.
type RecordPostgres struct {
	db *pgxpool.Pool
}

func NewRecordPostgres(db *pgxpool.Pool) *RecordPostgres {
	return &RecordPostgres{db: db}
}

func (r *RecordPostgres) Save(ctx context.Context, record *entity.IntakeRecord) error {
	fields, err := json.Marshal(record.Fields)
	if err != nil {
		return fmt.Errorf("marshal record fields: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO intake_records (
			id, created_at, fields,
			recommended_approach, suggested_model_type, complexity_estimate, next_steps,
			forced_advance
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`,
		record.ID,
		record.CreatedAt,
		fields,
		record.RecommendedApproach,
		record.SuggestedModelType,
		record.ComplexityEstimate,
		record.NextSteps,
		record.ForcedAdvance,
	)
	if err != nil {
		return fmt.Errorf("insert intake record: %w", err)
	}

	return nil
}

func (r *RecordPostgres) GetByID(ctx context.Context, id string) (*entity.IntakeRecord, error) {
	var (
		record entity.IntakeRecord
		fields []byte
	)

	err := r.db.QueryRow(ctx, `
		SELECT id, created_at, fields,
			recommended_approach, suggested_model_type, complexity_estimate, next_steps,
			forced_advance
		FROM intake_records
		WHERE id = $1`, id).Scan(
		&record.ID,
		&record.CreatedAt,
		&fields,
		&record.RecommendedApproach,
		&record.SuggestedModelType,
		&record.ComplexityEstimate,
		&record.NextSteps,
		&record.ForcedAdvance,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select intake record: %w", err)
	}

	if err := json.Unmarshal(fields, &record.Fields); err != nil {
		return nil, fmt.Errorf("unmarshal record fields: %w", err)
	}

	return &record, nil
}
