package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Shivanand-hulikatti/activity-signup/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists the catalog in PostgreSQL. Schema lives in
// internal/database/migrations.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Seed inserts activities from catalog that are not yet in the database.
// Rosters of existing activities are left untouched, so restarts keep signups.
// It returns the number of activities inserted.
func (s *PostgresStore) Seed(ctx context.Context, catalog model.Catalog) (int, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	slices.Sort(names)

	inserted := 0
	for _, name := range names {
		a := catalog[name]
		tag, err := tx.Exec(ctx,
			`INSERT INTO activities (name, description, schedule, max_participants)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (name) DO NOTHING`,
			name, a.Description, a.Schedule, a.MaxParticipants,
		)
		if err != nil {
			return 0, fmt.Errorf("insert activity %q: %w", name, err)
		}
		if tag.RowsAffected() == 0 {
			continue
		}
		inserted++

		for _, email := range a.Participants {
			if err := insertParticipant(ctx, tx, name, email); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return inserted, nil
}

// List returns every activity with its roster in signup order.
func (s *PostgresStore) List(ctx context.Context) (model.Catalog, error) {
	rows, err := s.db.Query(ctx,
		`SELECT name, description, schedule, max_participants FROM activities`,
	)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	catalog := make(model.Catalog)
	for rows.Next() {
		var name string
		a := model.Activity{Participants: []string{}}
		if err := rows.Scan(&name, &a.Description, &a.Schedule, &a.MaxParticipants); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		catalog[name] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	prows, err := s.db.Query(ctx,
		`SELECT activity_name, email FROM participants ORDER BY activity_name, seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var name, email string
		if err := prows.Scan(&name, &email); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		a, ok := catalog[name]
		if !ok {
			continue
		}
		a.Participants = append(a.Participants, email)
		catalog[name] = a
	}
	return catalog, prows.Err()
}

// AddParticipant locks the activity row with SELECT … FOR UPDATE so that
// concurrent signups for the same activity are serialised and the duplicate
// and capacity checks see a consistent roster.
func (s *PostgresStore) AddParticipant(ctx context.Context, activity, email string, enforceCapacity bool) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT max_participants FROM activities WHERE name = $1 FOR UPDATE`,
		activity,
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock activity row: %w", err)
	}

	var dup bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM participants WHERE activity_name = $1 AND email = $2)`,
		activity, email,
	).Scan(&dup)
	if err != nil {
		return fmt.Errorf("check duplicate: %w", err)
	}
	if dup {
		return ErrAlreadySignedUp
	}

	if enforceCapacity {
		var count int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM participants WHERE activity_name = $1`,
			activity,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("count participants: %w", err)
		}
		if count >= capacity {
			return ErrActivityFull
		}
	}

	if err := insertParticipant(ctx, tx, activity, email); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) RemoveParticipant(ctx context.Context, activity, email string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM activities WHERE name = $1)`,
		activity,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check activity: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM participants WHERE activity_name = $1 AND email = $2`,
		activity, email,
	)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotRegistered
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertParticipant(ctx context.Context, tx pgx.Tx, activity, email string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO participants (id, activity_name, email, signed_up_at)
		 VALUES ($1, $2, $3, $4)`,
		uuid.New(), activity, email, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert participant: %w", err)
	}
	return nil
}
