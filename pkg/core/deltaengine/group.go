package deltaengine

import (
	"fmt"
	"sort"
	"strings"
)

// buildShifts converts raw rows from one side of the comparison into parsed
// shifts: times are resolved, zero-duration clock-error rows are filtered
// and tallied, survivors are sorted by date, employee id, then start time,
// and assigned 1-based sequence numbers within their employee/day group.
// Sequence numbers exist only for traceability in the match key; matching
// itself is time-proximity based.
func buildShifts(rows []rawShiftRow) ([]*ParsedShift, int, error) {
	var shifts []*ParsedShift
	filtered := 0

	for _, row := range rows {
		inTime, err := parseShiftTime(row.InTimeRaw, row.Date)
		if err != nil {
			return nil, 0, fmt.Errorf("employee %s on %s: %w", row.EmployeeID, row.Date, err)
		}
		outTime, err := parseShiftTime(row.OutTimeRaw, row.Date)
		if err != nil {
			return nil, 0, fmt.Errorf("employee %s on %s: %w", row.EmployeeID, row.Date, err)
		}

		duration := minutesBetween(inTime, outTime)
		if duration <= 0 {
			// Clock-error artifact, e.g. in-time equal to out-time;
			// must never reach matching or be miscounted as a
			// no-show or unscheduled shift
			filtered++
			continue
		}

		shifts = append(shifts, &ParsedShift{
			EmployeeID:   row.EmployeeID,
			EmployeeName: strings.TrimSpace(row.FirstName + " " + row.LastName),
			Date:         row.Date,
			Location:     row.Location,
			Role:         row.Role,
			InTime:       inTime,
			OutTime:      outTime,
			DurationMin:  duration,
		})
	}

	sort.SliceStable(shifts, func(i, j int) bool {
		if shifts[i].Date != shifts[j].Date {
			return shifts[i].Date < shifts[j].Date
		}
		if shifts[i].EmployeeID != shifts[j].EmployeeID {
			return shifts[i].EmployeeID < shifts[j].EmployeeID
		}
		return shifts[i].InTime.Before(shifts[j].InTime)
	})

	sequences := make(map[string]int)
	for _, shift := range shifts {
		key := groupKey(shift.EmployeeID, shift.Date)
		sequences[key]++
		shift.Sequence = sequences[key]
		shift.MatchKey = fmt.Sprintf("%s-%s-%d", shift.EmployeeID, shift.Date, shift.Sequence)
	}

	return shifts, filtered, nil
}

// groupKey joins employee id and date. The "-" delimiter cannot collide:
// dates are YYYY-MM-DD and the date always terminates the key.
func groupKey(employeeID, date string) string {
	return employeeID + "-" + date
}

// groupByEmployeeDay partitions shifts into per-employee per-day groups,
// preserving the sorted order within each group
func groupByEmployeeDay(shifts []*ParsedShift) map[string][]*ParsedShift {
	groups := make(map[string][]*ParsedShift)
	for _, shift := range shifts {
		key := groupKey(shift.EmployeeID, shift.Date)
		groups[key] = append(groups[key], shift)
	}
	return groups
}
