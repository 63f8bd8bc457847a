package db

// StagedEvent is one detected attendance event persisted for manager
// review. Events stay in "pending" until a manager approves or dismisses
// them in the dashboard.
type StagedEvent struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	// Date of the shift the event was detected on, YYYY-MM-DD
	Date        string
	EventType   string
	Description string
	// SuggestedPoints follows the engine convention: positive = penalty,
	// negative = reduction
	SuggestedPoints float64
	Status          string
	AutoDetected    bool
	// CreatedAt is RFC3339 UTC, set on insert
	CreatedAt string
}

// StagedEventStatus values
const (
	StagedEventPending   = "pending"
	StagedEventApproved  = "approved"
	StagedEventDismissed = "dismissed"
)

// DedupKey identifies an event for duplicate detection: the same event type
// for the same employee on the same date is staged at most once.
func (e StagedEvent) DedupKey() string {
	return e.EmployeeID + "|" + e.Date + "|" + e.EventType
}
