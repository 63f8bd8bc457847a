package deltaengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(employeeID, date, in, out string) rawShiftRow {
	return rawShiftRow{
		EmployeeID: employeeID,
		Date:       date,
		FirstName:  "Test",
		LastName:   employeeID,
		InTimeRaw:  in,
		OutTimeRaw: out,
	}
}

func TestBuildShifts_FiltersZeroDurationRows(t *testing.T) {
	rows := []rawShiftRow{
		row("E1", "2025-01-05", "9:00 AM", "5:00 PM"),
		row("E2", "2025-01-05", "9:00 AM", "9:00 AM"), // clock error
	}

	shifts, filtered, err := buildShifts(rows)
	require.NoError(t, err)
	assert.Len(t, shifts, 1)
	assert.Equal(t, 1, filtered)
	assert.Equal(t, "E1", shifts[0].EmployeeID)
}

func TestBuildShifts_FiltersNegativeDurationRows(t *testing.T) {
	rows := []rawShiftRow{
		row("E1", "2025-01-05", "5:00 PM", "9:00 AM"),
	}

	shifts, filtered, err := buildShifts(rows)
	require.NoError(t, err)
	assert.Empty(t, shifts)
	assert.Equal(t, 1, filtered)
}

func TestBuildShifts_AssignsSequencesWithinGroup(t *testing.T) {
	rows := []rawShiftRow{
		row("E1", "2025-01-05", "2:00 PM", "6:00 PM"),
		row("E1", "2025-01-05", "8:00 AM", "12:00 PM"),
		row("E1", "2025-01-06", "8:00 AM", "12:00 PM"),
	}

	shifts, _, err := buildShifts(rows)
	require.NoError(t, err)
	require.Len(t, shifts, 3)

	// Sorted by date then start time; sequences restart per day
	assert.Equal(t, "E1-2025-01-05-1", shifts[0].MatchKey)
	assert.Equal(t, 8, shifts[0].InTime.Hour())
	assert.Equal(t, "E1-2025-01-05-2", shifts[1].MatchKey)
	assert.Equal(t, 14, shifts[1].InTime.Hour())
	assert.Equal(t, "E1-2025-01-06-1", shifts[2].MatchKey)
}

func TestBuildShifts_SortsByDateThenEmployee(t *testing.T) {
	rows := []rawShiftRow{
		row("E2", "2025-01-06", "9:00 AM", "5:00 PM"),
		row("E1", "2025-01-06", "9:00 AM", "5:00 PM"),
		row("E9", "2025-01-05", "9:00 AM", "5:00 PM"),
	}

	shifts, _, err := buildShifts(rows)
	require.NoError(t, err)
	require.Len(t, shifts, 3)
	assert.Equal(t, "E9", shifts[0].EmployeeID)
	assert.Equal(t, "E1", shifts[1].EmployeeID)
	assert.Equal(t, "E2", shifts[2].EmployeeID)
}

func TestBuildShifts_MalformedTimePropagates(t *testing.T) {
	rows := []rawShiftRow{
		row("E1", "2025-01-05", "25:00XM", "5:00 PM"),
	}

	_, _, err := buildShifts(rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E1")
	assert.Contains(t, err.Error(), "invalid time format")
}

func TestBuildShifts_ComputesDuration(t *testing.T) {
	rows := []rawShiftRow{
		row("E1", "2025-01-05", "9:00 AM", "5:30 PM"),
	}

	shifts, _, err := buildShifts(rows)
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, 510, shifts[0].DurationMin)
}
