package deltaengine

// exemptionFilter applies the tracking rules before matching: shifts
// belonging to employees at an exempt security level, and scheduled shifts
// on excluded dates, are removed from matching and tallied as exempt. An
// employee id absent from the security map is tracked; unknown employees
// are never silently exempted.
type exemptionFilter struct {
	rules          TrackingRules
	securityLevels map[string]int
	excludedDates  map[string]bool
}

func newExemptionFilter(input Input) *exemptionFilter {
	return &exemptionFilter{
		rules:          input.Tracking,
		securityLevels: input.SecurityLevels,
		excludedDates:  input.ExcludedDates,
	}
}

// filterTracked splits shifts into tracked and exempt. Excluded dates
// (holidays, closed days) remove shifts from both sides so a closed day
// produces neither no-shows nor unscheduled-work flags.
func (f *exemptionFilter) filterTracked(shifts []*ParsedShift) (tracked []*ParsedShift, exempt int) {
	for _, shift := range shifts {
		if f.isTrackingExempt(shift.EmployeeID) {
			exempt++
			continue
		}
		if f.excludedDates[shift.Date] {
			exempt++
			continue
		}
		tracked = append(tracked, shift)
	}
	return tracked, exempt
}

// isTrackingExempt reports whether the employee is excluded from all
// attendance tracking
func (f *exemptionFilter) isTrackingExempt(employeeID string) bool {
	level, ok := f.securityLevels[employeeID]
	if !ok {
		return false
	}
	return containsLevel(f.rules.ExemptSecurityLevels, level)
}

// isUnscheduledExempt reports whether unscheduled work by the employee is
// excluded from the report. Applies after matching; exempted results are
// accounted for in the exempt tally, not silently lost.
func (f *exemptionFilter) isUnscheduledExempt(employeeID string) bool {
	if !f.rules.TrackUnscheduledShifts {
		return true
	}
	level, ok := f.securityLevels[employeeID]
	if !ok {
		return false
	}
	return containsLevel(f.rules.UnscheduledExemptLevels, level)
}

func containsLevel(levels []int, level int) bool {
	for _, l := range levels {
		if l == level {
			return true
		}
	}
	return false
}
