package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ChefStevePopp/ChefLife-sub003/pkg/core/deltaengine"
	"github.com/ChefStevePopp/ChefLife-sub003/pkg/db"
)

// StageResult reports what one staging run did
type StageResult struct {
	// Staged holds the events written (or, on a dry run, that would be
	// written)
	Staged []db.StagedEvent
	// SkippedDuplicates counts events already present in the store
	SkippedDuplicates int
	DryRun            bool
}

// StageEvents persists the detected events from an analysis report for
// manager review, skipping any event whose (employee, date, type) is
// already staged. The dedup check runs against the full store up front so
// re-running the same exports is safe.
func StageEvents(ctx context.Context, store db.StagedEventStore, logger *zap.Logger, report *deltaengine.Report, dryRun bool) (*StageResult, error) {
	if report == nil {
		return nil, fmt.Errorf("no report to stage")
	}
	if len(report.Errors) > 0 {
		return nil, fmt.Errorf("refusing to stage events from a report with errors: %v", report.Errors)
	}

	logger.Debug("Fetching existing staged events for dedup")
	existing, err := store.GetStagedEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staged events: %w", err)
	}

	staged := make(map[string]bool, len(existing))
	for _, e := range existing {
		staged[e.DedupKey()] = true
	}

	result := &StageResult{DryRun: dryRun}
	for _, delta := range report.Deltas {
		for _, event := range delta.Events {
			candidate := db.StagedEvent{
				ID:              uuid.New().String(),
				EmployeeID:      delta.EmployeeID,
				EmployeeName:    delta.EmployeeName,
				Date:            delta.Date,
				EventType:       string(event.Type),
				Description:     event.Description,
				SuggestedPoints: event.SuggestedPoints,
				Status:          db.StagedEventPending,
				AutoDetected:    event.AutoDetected,
			}

			key := candidate.DedupKey()
			if staged[key] {
				result.SkippedDuplicates++
				continue
			}
			staged[key] = true
			result.Staged = append(result.Staged, candidate)
		}
	}

	logger.Info("Staging detected events",
		zap.Int("new", len(result.Staged)),
		zap.Int("duplicates_skipped", result.SkippedDuplicates),
		zap.Bool("dry_run", dryRun))

	if dryRun || len(result.Staged) == 0 {
		return result, nil
	}

	if err := store.InsertStagedEvents(ctx, result.Staged); err != nil {
		return nil, fmt.Errorf("failed to insert staged events: %w", err)
	}

	return result, nil
}
