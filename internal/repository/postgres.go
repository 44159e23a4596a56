package repository

import (
	"context"
	"fmt"

	"address-validator/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
	CREATE TABLE IF NOT EXISTS address_validations (
		id BIGSERIAL PRIMARY KEY,
		request_id UUID NOT NULL,
		input TEXT NOT NULL,
		status VARCHAR(32) NOT NULL,
		formatted_address TEXT NOT NULL DEFAULT '',
		alternatives TEXT[],
		message TEXT NOT NULL DEFAULT '',
		provider VARCHAR(64) NOT NULL,
		cached BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS address_validations_created_at_idx ON address_validations (created_at DESC);
	CREATE INDEX IF NOT EXISTS address_validations_status_idx ON address_validations (status);
`

// Repository stores validation history in PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the history table and its indexes if they do not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// SaveValidation inserts one validation record and returns its id
func (r *Repository) SaveValidation(ctx context.Context, record models.ValidationRecord) (int64, error) {
	sql := `
		INSERT INTO address_validations
			(request_id, input, status, formatted_address, alternatives, message, provider, cached)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, sql,
		pgtype.UUID{Bytes: record.RequestID, Valid: true},
		record.Input,
		string(record.Status),
		record.FormattedAddress,
		record.Alternatives,
		record.Message,
		record.Provider,
		record.Cached,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to insert validation: %w", err)
	}

	return id, nil
}

// CopyValidations bulk-inserts records with the COPY protocol
func (r *Repository) CopyValidations(ctx context.Context, records []models.ValidationRecord) (int64, error) {
	n, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"address_validations"},
		[]string{"request_id", "input", "status", "formatted_address", "alternatives", "message", "provider", "cached"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			rec := records[i]
			return []any{
				pgtype.UUID{Bytes: rec.RequestID, Valid: true},
				rec.Input,
				string(rec.Status),
				rec.FormattedAddress,
				rec.Alternatives,
				rec.Message,
				rec.Provider,
				rec.Cached,
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to copy validations: %w", err)
	}
	return n, nil
}

// RecentValidations returns the latest limit records, newest first
func (r *Repository) RecentValidations(ctx context.Context, limit int) ([]models.ValidationRecord, error) {
	sql := `
		SELECT
			id,
			request_id,
			input,
			status,
			formatted_address,
			alternatives,
			message,
			provider,
			cached,
			created_at
		FROM address_validations
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute history query: %w", err)
	}
	defer rows.Close()

	records := []models.ValidationRecord{}
	for rows.Next() {
		var (
			rec       models.ValidationRecord
			requestID pgtype.UUID
			status    string
		)
		err := rows.Scan(
			&rec.ID,
			&requestID,
			&rec.Input,
			&status,
			&rec.FormattedAddress,
			&rec.Alternatives,
			&rec.Message,
			&rec.Provider,
			&rec.Cached,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan validation: %w", err)
		}
		rec.RequestID = uuid.UUID(requestID.Bytes)
		rec.Status = models.Status(status)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return records, nil
}
