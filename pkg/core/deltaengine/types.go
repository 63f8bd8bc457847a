package deltaengine

import "time"

// ShiftStatus classifies the outcome of one scheduled or worked shift
type ShiftStatus string

const (
	StatusMatched     ShiftStatus = "matched"
	StatusNoShow      ShiftStatus = "no_show"
	StatusUnscheduled ShiftStatus = "unscheduled"
)

// EventType identifies one kind of detected attendance event
type EventType string

const (
	EventNoCallNoShow      EventType = "no_call_no_show"
	EventTardinessMajor    EventType = "tardiness_major"
	EventTardinessMinor    EventType = "tardiness_minor"
	EventEarlyDeparture    EventType = "early_departure"
	EventStayedLate        EventType = "stayed_late"
	EventArrivedEarly      EventType = "arrived_early"
	EventUnscheduledWorked EventType = "unscheduled_worked"
)

// rawShiftRow is one data line of a vendor export, straight out of the CSV
// parser. Values are trimmed strings; it is consumed immediately by the
// grouper and never leaves the package.
type rawShiftRow struct {
	EmployeeID   string
	Date         string
	FirstName    string
	LastName     string
	Location     string
	InTimeRaw    string
	OutTimeRaw   string
	Role         string
	RegularHours float64
	OTHours      float64
}

// ParsedShift is a shift with resolved absolute timestamps. Two disjoint
// collections exist per run (scheduled and worked); they are structurally
// identical but come from different exports.
type ParsedShift struct {
	EmployeeID   string
	EmployeeName string
	Date         string
	Location     string
	Role         string
	InTime       time.Time
	OutTime      time.Time
	// DurationMin is OutTime - InTime in minutes
	DurationMin int
	// Sequence is the 1-based position of this shift within its
	// employee/day group, used only for traceability in MatchKey
	Sequence int
	// MatchKey is employeeID-date-sequence
	MatchKey string
}

// MatchedPair associates exactly one scheduled shift with exactly one worked
// shift. Each side appears in at most one pair per run.
type MatchedPair struct {
	Scheduled *ParsedShift
	Worked    *ParsedShift
	// StartDiffMin is |workedStart - scheduledStart| in minutes
	StartDiffMin int
}

// DetectedEvent is one classified attendance event on a shift delta.
// SuggestedPoints follows the convention positive = penalty, negative =
// reduction/credit.
type DetectedEvent struct {
	Type            EventType
	Description     string
	SuggestedPoints float64
	// AutoDetected is always true for engine-produced events; reserved
	// for manual events added downstream
	AutoDetected bool
}

// ShiftDelta is one row of the report: a matched pair, a no-show, or an
// unscheduled worked shift. Timestamp and variance fields are nil when the
// corresponding side is absent, never zero-filled.
type ShiftDelta struct {
	EmployeeID   string
	EmployeeName string
	Date         string
	Status       ShiftStatus
	ScheduledIn  *time.Time
	ScheduledOut *time.Time
	WorkedIn     *time.Time
	WorkedOut    *time.Time
	// StartVarianceMin is workedIn - scheduledIn in minutes, positive = late
	StartVarianceMin *int
	// EndVarianceMin is workedOut - scheduledOut in minutes, positive =
	// left later than scheduled
	EndVarianceMin *int
	Events         []DetectedEvent
}

// Thresholds holds the event-detection thresholds in minutes
type Thresholds struct {
	TardinessMinorMin  int
	TardinessMajorMin  int
	EarlyDepartureMin  int
	StayedLateMin      int
	ArrivedEarlyMin    int
	// MatchWindowMin bounds the proximity matcher: a worked shift only
	// pairs with a scheduled shift when their start times are within
	// this many minutes
	MatchWindowMin int
}

// DefaultThresholds returns the documented default thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		TardinessMinorMin: 5,
		TardinessMajorMin: 15,
		EarlyDepartureMin: 30,
		StayedLateMin:     60,
		ArrivedEarlyMin:   30,
		MatchWindowMin:    240,
	}
}

// PointValues holds the suggested points attached to each detected event
type PointValues struct {
	NoShow          float64
	TardinessMajor  float64
	TardinessMinor  float64
	EarlyDeparture  float64
	StayedLate      float64
	ArrivedEarly    float64
	Unscheduled     float64
}

// DefaultPointValues returns the documented default point values.
// Stayed-late and arrived-early are reductions, hence negative.
func DefaultPointValues() PointValues {
	return PointValues{
		NoShow:         6,
		TardinessMajor: 3,
		TardinessMinor: 1,
		EarlyDeparture: 2,
		StayedLate:     -1,
		ArrivedEarly:   -1,
		Unscheduled:    0,
	}
}

// TrackingRules controls which employees are in scope for tracking
type TrackingRules struct {
	// ExemptSecurityLevels removes an employee's shifts from matching
	// and all counts except the exempt tally
	ExemptSecurityLevels []int
	// TrackUnscheduledShifts disables unscheduled-work flagging entirely
	// when false
	TrackUnscheduledShifts bool
	// UnscheduledExemptLevels exempts employees from unscheduled-work
	// flagging only
	UnscheduledExemptLevels []int
}

// DefaultTrackingRules returns the documented default tracking rules
func DefaultTrackingRules() TrackingRules {
	return TrackingRules{
		ExemptSecurityLevels:    []int{0, 1},
		TrackUnscheduledShifts:  true,
		UnscheduledExemptLevels: []int{0, 1, 2},
	}
}

// DateRange is an inclusive date range with YYYY-MM-DD bounds
type DateRange struct {
	Start string
	End   string
}

// Input is one engine invocation: two CSV exports plus configuration.
// SecurityLevels maps employee id to an integer access level; an employee
// absent from the map is tracked.
type Input struct {
	ScheduledCSV string
	WorkedCSV    string
	Thresholds   Thresholds
	Points       PointValues
	Tracking     TrackingRules
	// Filter restricts both sides to an inclusive date range before
	// matching; nil means no filtering
	Filter *DateRange
	// SecurityLevels maps employee id -> access level; nil means no
	// employee is exempt
	SecurityLevels map[string]int
	// ExcludedDates removes shifts on the listed YYYY-MM-DD dates from
	// tracking on both sides (holidays, closed days); they count as
	// exempt
	ExcludedDates map[string]bool
}

// Report is the engine output: counts, the overall pre-filter date range,
// structural parse errors, and the sorted delta list
type Report struct {
	ScheduledCount   int
	WorkedCount      int
	MatchedCount     int
	NoShowCount      int
	UnscheduledCount int
	ExemptCount      int
	// FilteredCount tallies zero-duration clock-error rows removed
	// before matching
	FilteredCount int
	DateRange     DateRange
	// Errors holds structural CSV errors; when non-empty all counts are
	// zero and Deltas is empty
	Errors []string
	Deltas []ShiftDelta
}
