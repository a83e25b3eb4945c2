package assessment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no assessment exists for the given id.
	ErrNotFound = errors.New("assessment not found")
	// ErrStoreDisabled is returned by history operations when the service
	// runs without a database.
	ErrStoreDisabled = errors.New("assessment store disabled")
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	ListRecent(ctx context.Context, limit int) ([]Record, error)
	Save(ctx context.Context, rec *Record) error
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

const recordColumns = `id, disease, symptoms, age_group, gender, medical_history,
	current_medications, stress_levels, dietary_habits, scores, primary_dosha,
	secondary_dosha, treatment, tongue_analysis, final_output, pipeline, created_at`

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM assessments WHERE id = $1`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *postgresRepo) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT ` + recordColumns + ` FROM assessments ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var rec Record
	var scoresJSON, treatmentJSON []byte

	err := row.Scan(
		&rec.ID,
		&rec.Disease,
		&rec.Symptoms,
		&rec.AgeGroup,
		&rec.Gender,
		&rec.MedicalHistory,
		&rec.CurrentMedications,
		&rec.StressLevels,
		&rec.DietaryHabits,
		&scoresJSON,
		&rec.Primary,
		&rec.Secondary,
		&treatmentJSON,
		&rec.TongueAnalysis,
		&rec.FinalOutput,
		&rec.Pipeline,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(scoresJSON) > 0 {
		if err := json.Unmarshal(scoresJSON, &rec.Scores); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scores: %w", err)
		}
	}
	if len(treatmentJSON) > 0 {
		if err := json.Unmarshal(treatmentJSON, &rec.Treatment); err != nil {
			return nil, fmt.Errorf("failed to unmarshal treatment: %w", err)
		}
	}
	return &rec, nil
}

func (r *postgresRepo) Save(ctx context.Context, rec *Record) error {
	scoresJSON, err := json.Marshal(rec.Scores)
	if err != nil {
		return err
	}
	treatmentJSON, err := json.Marshal(rec.Treatment)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO assessments (id, disease, symptoms, age_group, gender,
			medical_history, current_medications, stress_levels, dietary_habits,
			scores, primary_dosha, secondary_dosha, treatment, tongue_analysis,
			final_output, pipeline, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID, rec.Disease, rec.Symptoms, rec.AgeGroup, rec.Gender,
		rec.MedicalHistory, rec.CurrentMedications, rec.StressLevels,
		rec.DietaryHabits, scoresJSON, rec.Primary, rec.Secondary,
		treatmentJSON, rec.TongueAnalysis, rec.FinalOutput, rec.Pipeline,
		rec.CreatedAt)
	return err
}
