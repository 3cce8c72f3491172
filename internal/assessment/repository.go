package assessment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("analysis record not found")

type Repository interface {
	Save(ctx context.Context, r *AnalysisRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*AnalysisRecord, error)
	List(ctx context.Context) ([]AnalysisRecord, error)
	Count(ctx context.Context, f RecordFilter) (int, error)
	Ping(ctx context.Context) error
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

const recordColumns = `id, name, age, bmi, systolic_bp, blood_sugar, is_smoker, metabolic_score, hypertension_score, diabetes_score, created_at`

func (r *postgresRepo) Save(ctx context.Context, rec *AnalysisRecord) error {
	query := `INSERT INTO analysis_results (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	smoker := 0
	if rec.IsSmoker {
		smoker = 1
	}
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Name, rec.Age, rec.BMI, rec.SystolicBP, rec.BloodSugar, smoker,
		rec.MetabolicScore, rec.HypertensionScore, rec.DiabetesScore, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert analysis result: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*AnalysisRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM analysis_results WHERE id = $1`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get analysis result: %w", err)
	}
	return rec, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]AnalysisRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM analysis_results ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list analysis results: %w", err)
	}
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan analysis result: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Count(ctx context.Context, f RecordFilter) (int, error) {
	query, args := countQuery(f)
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count analysis results: %w", err)
	}
	return n, nil
}

func (r *postgresRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func countQuery(f RecordFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.IsSmoker != nil {
		v := 0
		if *f.IsSmoker {
			v = 1
		}
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("is_smoker = $%d", len(args)))
	}
	if f.MinAge != nil {
		args = append(args, *f.MinAge)
		conds = append(conds, fmt.Sprintf("age >= $%d", len(args)))
	}
	if f.MaxAge != nil {
		args = append(args, *f.MaxAge)
		conds = append(conds, fmt.Sprintf("age <= $%d", len(args)))
	}

	query := `SELECT COUNT(*) FROM analysis_results`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	return query, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*AnalysisRecord, error) {
	var (
		rec    AnalysisRecord
		smoker int
	)
	err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.Age,
		&rec.BMI,
		&rec.SystolicBP,
		&rec.BloodSugar,
		&smoker,
		&rec.MetabolicScore,
		&rec.HypertensionScore,
		&rec.DiabetesScore,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.IsSmoker = smoker == 1
	return &rec, nil
}
