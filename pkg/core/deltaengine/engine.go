// Package deltaengine reconciles two independently exported attendance
// datasets: scheduled shifts from the scheduling vendor and worked shifts
// from the time clock. It pairs the two sides per employee per day by start
// time proximity and classifies the resulting deltas (tardiness, early
// departures, no-shows, unscheduled work) against configurable thresholds.
//
// The engine is a pure synchronous computation over in-memory strings: no
// I/O, no shared state between invocations, safe to call concurrently with
// different inputs.
package deltaengine

import (
	"fmt"
	"sort"
	"time"
)

// NewInput builds an engine invocation over two CSV exports with the
// documented default thresholds, point values, and tracking rules. Callers
// adjust fields before passing the Input to Analyze.
func NewInput(scheduledCSV, workedCSV string) Input {
	return Input{
		ScheduledCSV: scheduledCSV,
		WorkedCSV:    workedCSV,
		Thresholds:   DefaultThresholds(),
		Points:       DefaultPointValues(),
		Tracking:     DefaultTrackingRules(),
	}
}

// Analyze runs the full reconciliation: parse both exports, filter
// clock-error rows, apply the optional date-range filter and the tracking
// rules, pair worked to scheduled shifts, and classify every delta.
//
// Structural CSV problems (missing required header column, empty file) are
// collected into Report.Errors and returned with an all-zero report and a
// nil error; callers must check Errors before trusting the result. A
// malformed time string in a data row is returned as a non-nil error and
// aborts the run, since it signals corrupted input rather than an
// expected-absent field.
func Analyze(input Input) (*Report, error) {
	report := &Report{}

	scheduledRows, err := parseShiftCSV(input.ScheduledCSV)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("scheduled: %v", err))
	}
	workedRows, err := parseShiftCSV(input.WorkedCSV)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("worked: %v", err))
	}
	if len(report.Errors) > 0 {
		return report, nil
	}

	scheduled, scheduledFiltered, err := buildShifts(scheduledRows)
	if err != nil {
		return nil, fmt.Errorf("scheduled: %w", err)
	}
	worked, workedFiltered, err := buildShifts(workedRows)
	if err != nil {
		return nil, fmt.Errorf("worked: %w", err)
	}
	report.FilteredCount = scheduledFiltered + workedFiltered

	// Overall range covers the original exports, before any filtering
	report.DateRange = overallDateRange(scheduled, worked)

	if input.Filter != nil {
		scheduled = filterDateRange(scheduled, input.Filter)
		worked = filterDateRange(worked, input.Filter)
	}

	exemptions := newExemptionFilter(input)
	scheduled, scheduledExempt := exemptions.filterTracked(scheduled)
	worked, workedExempt := exemptions.filterTracked(worked)
	report.ExemptCount = scheduledExempt + workedExempt

	report.ScheduledCount = len(scheduled)
	report.WorkedCount = len(worked)

	outcome := matchShifts(scheduled, worked, input.Thresholds.MatchWindowMin)

	for _, pair := range outcome.Pairs {
		report.Deltas = append(report.Deltas, matchedDelta(pair, input))
	}
	report.MatchedCount = len(outcome.Pairs)

	for _, shift := range outcome.NoShows {
		report.Deltas = append(report.Deltas, noShowDelta(shift, input))
	}
	report.NoShowCount = len(outcome.NoShows)

	for _, shift := range outcome.Unscheduled {
		if exemptions.isUnscheduledExempt(shift.EmployeeID) {
			report.ExemptCount++
			continue
		}
		report.Deltas = append(report.Deltas, unscheduledDelta(shift, input))
		report.UnscheduledCount++
	}

	sort.SliceStable(report.Deltas, func(i, j int) bool {
		if report.Deltas[i].Date != report.Deltas[j].Date {
			return report.Deltas[i].Date < report.Deltas[j].Date
		}
		return report.Deltas[i].EmployeeName < report.Deltas[j].EmployeeName
	})

	return report, nil
}

func matchedDelta(pair MatchedPair, input Input) ShiftDelta {
	startVariance := minutesBetween(pair.Scheduled.InTime, pair.Worked.InTime)
	endVariance := minutesBetween(pair.Scheduled.OutTime, pair.Worked.OutTime)

	return ShiftDelta{
		EmployeeID:       pair.Scheduled.EmployeeID,
		EmployeeName:     pair.Scheduled.EmployeeName,
		Date:             pair.Scheduled.Date,
		Status:           StatusMatched,
		ScheduledIn:      timePtr(pair.Scheduled.InTime),
		ScheduledOut:     timePtr(pair.Scheduled.OutTime),
		WorkedIn:         timePtr(pair.Worked.InTime),
		WorkedOut:        timePtr(pair.Worked.OutTime),
		StartVarianceMin: intPtr(startVariance),
		EndVarianceMin:   intPtr(endVariance),
		Events:           detectEvents(startVariance, endVariance, input.Thresholds, input.Points),
	}
}

func noShowDelta(shift *ParsedShift, input Input) ShiftDelta {
	return ShiftDelta{
		EmployeeID:   shift.EmployeeID,
		EmployeeName: shift.EmployeeName,
		Date:         shift.Date,
		Status:       StatusNoShow,
		ScheduledIn:  timePtr(shift.InTime),
		ScheduledOut: timePtr(shift.OutTime),
		Events:       []DetectedEvent{noShowEvent(input.Points)},
	}
}

func unscheduledDelta(shift *ParsedShift, input Input) ShiftDelta {
	return ShiftDelta{
		EmployeeID:   shift.EmployeeID,
		EmployeeName: shift.EmployeeName,
		Date:         shift.Date,
		Status:       StatusUnscheduled,
		WorkedIn:     timePtr(shift.InTime),
		WorkedOut:    timePtr(shift.OutTime),
		Events:       []DetectedEvent{unscheduledEvent(input.Points)},
	}
}

// overallDateRange finds the min/max date across both exports
func overallDateRange(scheduled, worked []*ParsedShift) DateRange {
	var dateRange DateRange
	for _, shift := range append(append([]*ParsedShift{}, scheduled...), worked...) {
		if dateRange.Start == "" || shift.Date < dateRange.Start {
			dateRange.Start = shift.Date
		}
		if dateRange.End == "" || shift.Date > dateRange.End {
			dateRange.End = shift.Date
		}
	}
	return dateRange
}

// filterDateRange keeps shifts within the inclusive range. YYYY-MM-DD
// strings compare correctly lexically.
func filterDateRange(shifts []*ParsedShift, filter *DateRange) []*ParsedShift {
	var kept []*ParsedShift
	for _, shift := range shifts {
		if filter.Start != "" && shift.Date < filter.Start {
			continue
		}
		if filter.End != "" && shift.Date > filter.End {
			continue
		}
		kept = append(kept, shift)
	}
	return kept
}

func timePtr(t time.Time) *time.Time { return &t }

func intPtr(v int) *int { return &v }
