package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ChefStevePopp/ChefLife-sub003/pkg/core/deltaengine"
	"github.com/ChefStevePopp/ChefLife-sub003/pkg/db"
)

// mockEventStore implements db.StagedEventStore
type mockEventStore struct {
	existing  []db.StagedEvent
	inserted  []db.StagedEvent
	getErr    error
	insertErr error
}

func (m *mockEventStore) GetStagedEvents(ctx context.Context) ([]db.StagedEvent, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.existing, nil
}

func (m *mockEventStore) InsertStagedEvents(ctx context.Context, events []db.StagedEvent) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, events...)
	return nil
}

func reportWithEvents() *deltaengine.Report {
	return &deltaengine.Report{
		Deltas: []deltaengine.ShiftDelta{
			{
				EmployeeID:   "E1",
				EmployeeName: "Ana Reyes",
				Date:         "2025-01-05",
				Status:       deltaengine.StatusMatched,
				Events: []deltaengine.DetectedEvent{
					{
						Type:            deltaengine.EventTardinessMinor,
						Description:     "Arrived 12 min late",
						SuggestedPoints: 1,
						AutoDetected:    true,
					},
				},
			},
			{
				EmployeeID:   "E2",
				EmployeeName: "Ben Okafor",
				Date:         "2025-01-05",
				Status:       deltaengine.StatusNoShow,
				Events: []deltaengine.DetectedEvent{
					{
						Type:            deltaengine.EventNoCallNoShow,
						Description:     "Scheduled shift with no matching worked shift",
						SuggestedPoints: 6,
						AutoDetected:    true,
					},
				},
			},
		},
	}
}

func TestStageEvents_StagesAllNewEvents(t *testing.T) {
	store := &mockEventStore{}

	result, err := StageEvents(context.Background(), store, zap.NewNop(), reportWithEvents(), false)
	require.NoError(t, err)

	assert.Len(t, result.Staged, 2)
	assert.Zero(t, result.SkippedDuplicates)
	assert.Len(t, store.inserted, 2)

	first := store.inserted[0]
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "E1", first.EmployeeID)
	assert.Equal(t, string(deltaengine.EventTardinessMinor), first.EventType)
	assert.Equal(t, db.StagedEventPending, first.Status)
	assert.True(t, first.AutoDetected)
}

func TestStageEvents_SkipsAlreadyStagedEvents(t *testing.T) {
	store := &mockEventStore{
		existing: []db.StagedEvent{
			{
				EmployeeID: "E2",
				Date:       "2025-01-05",
				EventType:  string(deltaengine.EventNoCallNoShow),
			},
		},
	}

	result, err := StageEvents(context.Background(), store, zap.NewNop(), reportWithEvents(), false)
	require.NoError(t, err)

	assert.Len(t, result.Staged, 1)
	assert.Equal(t, 1, result.SkippedDuplicates)
	assert.Equal(t, "E1", result.Staged[0].EmployeeID)
}

func TestStageEvents_DryRunDoesNotInsert(t *testing.T) {
	store := &mockEventStore{}

	result, err := StageEvents(context.Background(), store, zap.NewNop(), reportWithEvents(), true)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Len(t, result.Staged, 2)
	assert.Empty(t, store.inserted)
}

func TestStageEvents_DedupesWithinBatch(t *testing.T) {
	report := reportWithEvents()
	// Same employee/date/type appearing twice in one report
	report.Deltas = append(report.Deltas, report.Deltas[0])

	store := &mockEventStore{}
	result, err := StageEvents(context.Background(), store, zap.NewNop(), report, false)
	require.NoError(t, err)

	assert.Len(t, result.Staged, 2)
	assert.Equal(t, 1, result.SkippedDuplicates)
}

func TestStageEvents_RefusesReportWithErrors(t *testing.T) {
	report := &deltaengine.Report{Errors: []string{"scheduled: empty file"}}

	_, err := StageEvents(context.Background(), &mockEventStore{}, zap.NewNop(), report, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to stage")
}

func TestStageEvents_StoreFetchErrorPropagates(t *testing.T) {
	store := &mockEventStore{getErr: fmt.Errorf("connection refused")}

	_, err := StageEvents(context.Background(), store, zap.NewNop(), reportWithEvents(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch staged events")
}

func TestStageEvents_InsertErrorPropagates(t *testing.T) {
	store := &mockEventStore{insertErr: fmt.Errorf("constraint violation")}

	_, err := StageEvents(context.Background(), store, zap.NewNop(), reportWithEvents(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert staged events")
}

func TestStageEvents_NothingToStage(t *testing.T) {
	store := &mockEventStore{}
	report := &deltaengine.Report{}

	result, err := StageEvents(context.Background(), store, zap.NewNop(), report, false)
	require.NoError(t, err)
	assert.Empty(t, result.Staged)
	assert.Empty(t, store.inserted)
}
