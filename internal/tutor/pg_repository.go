package tutor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanTutor(row pgx.Row) (*Tutor, error) {
	var t Tutor
	var subjects []string

	if err := row.Scan(&t.ID, &t.Name, &subjects, &t.HourlyRate); err != nil {
		return nil, err
	}

	t.Subjects = subjects
	return &t, nil
}

func (r *PgRepository) ListTutors(ctx context.Context) ([]Tutor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, subjects, hourly_rate
		FROM tutors
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query tutors: %w", err)
	}
	defer rows.Close()

	var tutors []Tutor
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		t, err := scanTutor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tutor: %w", err)
		}
		index[t.ID] = len(tutors)
		tutors = append(tutors, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rateRows, err := r.pool.Query(ctx, `
		SELECT tutor_id, weekday, rate
		FROM tutor_availability_rates
	`)
	if err != nil {
		return nil, fmt.Errorf("query availability rates: %w", err)
	}
	defer rateRows.Close()

	for rateRows.Next() {
		var (
			tutorID uuid.UUID
			weekday int16
			rate    float64
		)
		if err := rateRows.Scan(&tutorID, &weekday, &rate); err != nil {
			return nil, fmt.Errorf("scan availability rate: %w", err)
		}
		i, ok := index[tutorID]
		if !ok || weekday < int16(time.Sunday) || weekday > int16(time.Saturday) {
			continue
		}
		tutors[i].Rates[weekday] = rate
	}
	if err := rateRows.Err(); err != nil {
		return nil, err
	}

	return tutors, nil
}

// UpsertTutor writes t and replaces its weekly rates in one transaction.
// Empty weekdays are stored as missing rows.
func (r *PgRepository) UpsertTutor(ctx context.Context, t Tutor) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO tutors (id, name, subjects, hourly_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    subjects = EXCLUDED.subjects,
		    hourly_rate = EXCLUDED.hourly_rate,
		    updated_at = now()
	`, t.ID, t.Name, t.Subjects, t.HourlyRate)
	if err != nil {
		return fmt.Errorf("upsert tutor %s: %w", t.Name, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM tutor_availability_rates WHERE tutor_id = $1`, t.ID); err != nil {
		return fmt.Errorf("clear rates for %s: %w", t.Name, err)
	}

	batch := &pgx.Batch{}
	for wd, rate := range t.Rates {
		if rate <= 0 {
			continue
		}
		batch.Queue(`
			INSERT INTO tutor_availability_rates (tutor_id, weekday, rate)
			VALUES ($1, $2, $3)
		`, t.ID, int16(wd), rate)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert rates for %s: %w", t.Name, err)
		}
	}

	return tx.Commit(ctx)
}
