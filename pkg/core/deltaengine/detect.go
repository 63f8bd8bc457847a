package deltaengine

import "fmt"

// detectEvents classifies a matched pair's variances against the configured
// thresholds. Rules are evaluated independently, so one shift can trigger
// several events (late arrival and early departure, say). Major and minor
// tardiness are mutually exclusive, major checked first. No-show and
// unscheduled shifts never reach this detector.
func detectEvents(startVariance, endVariance int, thresholds Thresholds, points PointValues) []DetectedEvent {
	var events []DetectedEvent

	if startVariance >= thresholds.TardinessMajorMin {
		events = append(events, DetectedEvent{
			Type:            EventTardinessMajor,
			Description:     fmt.Sprintf("Arrived %d min late", startVariance),
			SuggestedPoints: points.TardinessMajor,
			AutoDetected:    true,
		})
	} else if startVariance >= thresholds.TardinessMinorMin {
		events = append(events, DetectedEvent{
			Type:            EventTardinessMinor,
			Description:     fmt.Sprintf("Arrived %d min late", startVariance),
			SuggestedPoints: points.TardinessMinor,
			AutoDetected:    true,
		})
	}

	if endVariance <= -thresholds.EarlyDepartureMin {
		events = append(events, DetectedEvent{
			Type:            EventEarlyDeparture,
			Description:     fmt.Sprintf("Left %d min early", -endVariance),
			SuggestedPoints: points.EarlyDeparture,
			AutoDetected:    true,
		})
	}

	if startVariance <= -thresholds.ArrivedEarlyMin {
		events = append(events, DetectedEvent{
			Type:            EventArrivedEarly,
			Description:     fmt.Sprintf("Arrived %d min early", -startVariance),
			SuggestedPoints: points.ArrivedEarly,
			AutoDetected:    true,
		})
	}

	if endVariance >= thresholds.StayedLateMin {
		events = append(events, DetectedEvent{
			Type:            EventStayedLate,
			Description:     fmt.Sprintf("Stayed %d min late", endVariance),
			SuggestedPoints: points.StayedLate,
			AutoDetected:    true,
		})
	}

	return events
}

// noShowEvent is the single fixed event attached to a no-show delta
func noShowEvent(points PointValues) DetectedEvent {
	return DetectedEvent{
		Type:            EventNoCallNoShow,
		Description:     "Scheduled shift with no matching worked shift",
		SuggestedPoints: points.NoShow,
		AutoDetected:    true,
	}
}

// unscheduledEvent is the single fixed event attached to an unscheduled
// delta. Informational by default (zero points).
func unscheduledEvent(points PointValues) DetectedEvent {
	return DetectedEvent{
		Type:            EventUnscheduledWorked,
		Description:     "Worked without a scheduled shift",
		SuggestedPoints: points.Unscheduled,
		AutoDetected:    true,
	}
}
