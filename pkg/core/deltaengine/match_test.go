package deltaengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shift(employeeID, date string, inHour, inMin, outHour, outMin int) *ParsedShift {
	in := time.Date(2025, 1, 5, inHour, inMin, 0, 0, time.UTC)
	out := time.Date(2025, 1, 5, outHour, outMin, 0, 0, time.UTC)
	return &ParsedShift{
		EmployeeID:   employeeID,
		EmployeeName: "Test " + employeeID,
		Date:         date,
		InTime:       in,
		OutTime:      out,
		DurationMin:  minutesBetween(in, out),
	}
}

func TestMatchShifts_SimplePairing(t *testing.T) {
	scheduled := []*ParsedShift{shift("E1", "2025-01-05", 9, 0, 17, 0)}
	worked := []*ParsedShift{shift("E1", "2025-01-05", 9, 12, 17, 0)}

	outcome := matchShifts(scheduled, worked, 240)
	require.Len(t, outcome.Pairs, 1)
	assert.Empty(t, outcome.NoShows)
	assert.Empty(t, outcome.Unscheduled)
	assert.Equal(t, 12, outcome.Pairs[0].StartDiffMin)
}

func TestMatchShifts_SplitShiftDisambiguation(t *testing.T) {
	scheduled := []*ParsedShift{
		shift("E1", "2025-01-05", 8, 0, 12, 0),
		shift("E1", "2025-01-05", 14, 0, 18, 0),
	}
	worked := []*ParsedShift{
		shift("E1", "2025-01-05", 8, 5, 12, 0),
		shift("E1", "2025-01-05", 14, 10, 18, 30),
	}

	outcome := matchShifts(scheduled, worked, 240)
	require.Len(t, outcome.Pairs, 2)
	assert.Empty(t, outcome.NoShows)
	assert.Empty(t, outcome.Unscheduled)

	// Each worked shift pairs with its temporally nearest scheduled
	// shift, not swapped
	assert.Equal(t, 8, outcome.Pairs[0].Scheduled.InTime.Hour())
	assert.Equal(t, 8, outcome.Pairs[0].Worked.InTime.Hour())
	assert.Equal(t, 14, outcome.Pairs[1].Scheduled.InTime.Hour())
	assert.Equal(t, 14, outcome.Pairs[1].Worked.InTime.Hour())
}

func TestMatchShifts_UnmatchedScheduledBecomesNoShow(t *testing.T) {
	scheduled := []*ParsedShift{
		shift("E1", "2025-01-05", 8, 0, 12, 0),
		shift("E1", "2025-01-05", 14, 0, 18, 0),
	}
	worked := []*ParsedShift{
		shift("E1", "2025-01-05", 8, 0, 12, 0),
	}

	outcome := matchShifts(scheduled, worked, 240)
	require.Len(t, outcome.Pairs, 1)
	require.Len(t, outcome.NoShows, 1)
	assert.Equal(t, 14, outcome.NoShows[0].InTime.Hour())
}

func TestMatchShifts_OutsideWindowBecomesUnscheduled(t *testing.T) {
	scheduled := []*ParsedShift{shift("E1", "2025-01-05", 8, 0, 12, 0)}
	worked := []*ParsedShift{shift("E1", "2025-01-05", 14, 0, 18, 0)}

	// 360 min apart, window 240: no pairing on either side
	outcome := matchShifts(scheduled, worked, 240)
	assert.Empty(t, outcome.Pairs)
	require.Len(t, outcome.NoShows, 1)
	require.Len(t, outcome.Unscheduled, 1)
}

func TestMatchShifts_WindowBoundaryIsInclusive(t *testing.T) {
	scheduled := []*ParsedShift{shift("E1", "2025-01-05", 8, 0, 12, 0)}
	worked := []*ParsedShift{shift("E1", "2025-01-05", 12, 0, 16, 0)}

	outcome := matchShifts(scheduled, worked, 240)
	require.Len(t, outcome.Pairs, 1)
	assert.Equal(t, 240, outcome.Pairs[0].StartDiffMin)
}

func TestMatchShifts_ScheduledClaimedAtMostOnce(t *testing.T) {
	scheduled := []*ParsedShift{shift("E1", "2025-01-05", 9, 0, 17, 0)}
	worked := []*ParsedShift{
		shift("E1", "2025-01-05", 9, 5, 13, 0),
		shift("E1", "2025-01-05", 9, 10, 17, 0),
	}

	outcome := matchShifts(scheduled, worked, 240)
	require.Len(t, outcome.Pairs, 1)
	require.Len(t, outcome.Unscheduled, 1)

	// Earlier-processed worked shift claims first (greedy, start-time order)
	assert.Equal(t, 5, outcome.Pairs[0].StartDiffMin)
	assert.Equal(t, 10, outcome.Unscheduled[0].InTime.Minute())
}

func TestMatchShifts_NoCrossEmployeeMatching(t *testing.T) {
	scheduled := []*ParsedShift{shift("E1", "2025-01-05", 9, 0, 17, 0)}
	worked := []*ParsedShift{shift("E2", "2025-01-05", 9, 0, 17, 0)}

	outcome := matchShifts(scheduled, worked, 240)
	assert.Empty(t, outcome.Pairs)
	assert.Len(t, outcome.NoShows, 1)
	assert.Len(t, outcome.Unscheduled, 1)
}

func TestMatchShifts_NoCrossDayMatching(t *testing.T) {
	scheduled := []*ParsedShift{shift("E1", "2025-01-05", 9, 0, 17, 0)}
	workedNextDay := shift("E1", "2025-01-06", 9, 0, 17, 0)

	outcome := matchShifts(scheduled, []*ParsedShift{workedNextDay}, 240)
	assert.Empty(t, outcome.Pairs)
	assert.Len(t, outcome.NoShows, 1)
	assert.Len(t, outcome.Unscheduled, 1)
}

func TestMatchShifts_MatchingInvariants(t *testing.T) {
	scheduled := []*ParsedShift{
		shift("E1", "2025-01-05", 8, 0, 12, 0),
		shift("E1", "2025-01-05", 14, 0, 18, 0),
		shift("E2", "2025-01-05", 9, 0, 17, 0),
		shift("E3", "2025-01-05", 9, 0, 17, 0),
	}
	worked := []*ParsedShift{
		shift("E1", "2025-01-05", 8, 10, 12, 0),
		shift("E2", "2025-01-05", 9, 2, 17, 5),
		shift("E4", "2025-01-05", 10, 0, 18, 0),
	}

	outcome := matchShifts(scheduled, worked, 240)

	// matched + no-shows == scheduled; matched + unscheduled == worked
	assert.Equal(t, len(scheduled), len(outcome.Pairs)+len(outcome.NoShows))
	assert.Equal(t, len(worked), len(outcome.Pairs)+len(outcome.Unscheduled))

	// one-to-one: no shift appears in more than one pair
	seenScheduled := make(map[*ParsedShift]bool)
	seenWorked := make(map[*ParsedShift]bool)
	for _, pair := range outcome.Pairs {
		assert.False(t, seenScheduled[pair.Scheduled])
		assert.False(t, seenWorked[pair.Worked])
		seenScheduled[pair.Scheduled] = true
		seenWorked[pair.Worked] = true

		// window invariant
		assert.LessOrEqual(t, pair.StartDiffMin, 240)
	}
}
