package deltaengine

import "sort"

// matchOutcome is the result of pairing one employee/day group
type matchOutcome struct {
	Pairs       []MatchedPair
	NoShows     []*ParsedShift
	Unscheduled []*ParsedShift
}

// matchShifts pairs worked shifts to scheduled shifts within every
// employee/day group by closest start time. For each worked shift, taken in
// start-time order, the not-yet-claimed scheduled shift with the smallest
// absolute start-time difference wins, provided the difference is within
// windowMin. A scheduled shift is claimed at most once. Worked shifts with
// no candidate in the window become unscheduled work; scheduled shifts
// never claimed become no-shows.
//
// This is greedy nearest-neighbor, not optimal bipartite assignment: when
// two worked shifts are each closest to the same scheduled shift, the
// earlier-processed one claims it. Groups are single-digit sized so the
// O(n^2) scan is irrelevant; the processing order is load-bearing for
// reproducibility and must not be changed.
func matchShifts(scheduled, worked []*ParsedShift, windowMin int) matchOutcome {
	scheduledGroups := groupByEmployeeDay(scheduled)
	workedGroups := groupByEmployeeDay(worked)

	// Walk groups in a deterministic order: every key from either side,
	// sorted
	keySet := make(map[string]bool, len(scheduledGroups)+len(workedGroups))
	for key := range scheduledGroups {
		keySet[key] = true
	}
	for key := range workedGroups {
		keySet[key] = true
	}
	keys := make([]string, 0, len(keySet))
	for key := range keySet {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var outcome matchOutcome
	for _, key := range keys {
		matchGroup(scheduledGroups[key], workedGroups[key], windowMin, &outcome)
	}
	return outcome
}

func matchGroup(scheduled, worked []*ParsedShift, windowMin int, outcome *matchOutcome) {
	sort.SliceStable(worked, func(i, j int) bool {
		return worked[i].InTime.Before(worked[j].InTime)
	})

	claimed := make([]bool, len(scheduled))

	for _, workedShift := range worked {
		bestIdx := -1
		bestDiff := 0
		for i, scheduledShift := range scheduled {
			if claimed[i] {
				continue
			}
			diff := minutesBetween(scheduledShift.InTime, workedShift.InTime)
			if diff < 0 {
				diff = -diff
			}
			if diff > windowMin {
				continue
			}
			if bestIdx == -1 || diff < bestDiff {
				bestIdx = i
				bestDiff = diff
			}
		}

		if bestIdx == -1 {
			outcome.Unscheduled = append(outcome.Unscheduled, workedShift)
			continue
		}

		claimed[bestIdx] = true
		outcome.Pairs = append(outcome.Pairs, MatchedPair{
			Scheduled:    scheduled[bestIdx],
			Worked:       workedShift,
			StartDiffMin: bestDiff,
		})
	}

	for i, scheduledShift := range scheduled {
		if !claimed[i] {
			outcome.NoShows = append(outcome.NoShows, scheduledShift)
		}
	}
}
