package deltaengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShiftTime_MorningTime(t *testing.T) {
	parsed, err := parseShiftTime("9:05 AM", "2025-01-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 5, 9, 5, 0, 0, time.UTC), parsed)
}

func TestParseShiftTime_AfternoonAddsTwelve(t *testing.T) {
	parsed, err := parseShiftTime("2:30 PM", "2025-01-05")
	require.NoError(t, err)
	assert.Equal(t, 14, parsed.Hour())
	assert.Equal(t, 30, parsed.Minute())
}

func TestParseShiftTime_MidnightIsHourZero(t *testing.T) {
	parsed, err := parseShiftTime("12:00 AM", "2025-01-05")
	require.NoError(t, err)
	assert.Equal(t, 0, parsed.Hour())
}

func TestParseShiftTime_NoonStaysTwelve(t *testing.T) {
	parsed, err := parseShiftTime("12:00 PM", "2025-01-05")
	require.NoError(t, err)
	assert.Equal(t, 12, parsed.Hour())
}

func TestParseShiftTime_ToleratesWhitespaceAndCase(t *testing.T) {
	parsed, err := parseShiftTime("  9:00am ", "2025-01-05")
	require.NoError(t, err)
	assert.Equal(t, 9, parsed.Hour())

	parsed, err = parseShiftTime("11:45   pm", "2025-01-05")
	require.NoError(t, err)
	assert.Equal(t, 23, parsed.Hour())
}

func TestParseShiftTime_MalformedTimeFails(t *testing.T) {
	_, err := parseShiftTime("25:00XM", "2025-01-05")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid time format")
}

func TestParseShiftTime_MissingMeridiemFails(t *testing.T) {
	_, err := parseShiftTime("9:00", "2025-01-05")
	assert.Error(t, err)
}

func TestParseShiftTime_HourOutOfRangeFails(t *testing.T) {
	_, err := parseShiftTime("13:00 PM", "2025-01-05")
	assert.Error(t, err)

	_, err = parseShiftTime("0:30 AM", "2025-01-05")
	assert.Error(t, err)
}

func TestParseShiftTime_BadDateFails(t *testing.T) {
	_, err := parseShiftTime("9:00 AM", "01/05/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}
