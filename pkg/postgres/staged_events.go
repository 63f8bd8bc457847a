package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ChefStevePopp/ChefLife-sub003/pkg/db"
)

// GetStagedEvents retrieves all staged attendance events
func (d *DB) GetStagedEvents(ctx context.Context) ([]db.StagedEvent, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, employee_id, employee_name, shift_date, event_type,
		       description, suggested_points, status, auto_detected, created_at
		FROM staged_event
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staged events: %w", err)
	}
	defer rows.Close()

	var events []db.StagedEvent
	for rows.Next() {
		var e db.StagedEvent
		var shiftDate time.Time
		var createdAt time.Time
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.EmployeeName, &shiftDate,
			&e.EventType, &e.Description, &e.SuggestedPoints, &e.Status,
			&e.AutoDetected, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan staged event: %w", err)
		}
		e.Date = shiftDate.Format("2006-01-02")
		e.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staged events: %w", err)
	}

	return events, nil
}

// InsertStagedEvents inserts a batch of staged attendance events
func (d *DB) InsertStagedEvents(ctx context.Context, events []db.StagedEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range events {
		_, err := tx.Exec(ctx, `
			INSERT INTO staged_event
				(id, employee_id, employee_name, shift_date, event_type,
				 description, suggested_points, status, auto_detected)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, e.ID, e.EmployeeID, e.EmployeeName, e.Date, e.EventType,
			e.Description, e.SuggestedPoints, e.Status, e.AutoDetected)
		if err != nil {
			return fmt.Errorf("failed to insert staged event %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit staged events: %w", err)
	}

	return nil
}
