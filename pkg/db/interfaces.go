package db

import "context"

// StagedEventStore defines the staged-event operations used by the staging
// service. The postgres.DB implements this interface.
type StagedEventStore interface {
	GetStagedEvents(ctx context.Context) ([]StagedEvent, error)
	InsertStagedEvents(ctx context.Context, events []StagedEvent) error
}
