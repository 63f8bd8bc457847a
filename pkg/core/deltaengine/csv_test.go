package deltaengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShiftCSV_BasicRows(t *testing.T) {
	csv := "Employee ID,Date,First,Last,In Time,Out Time,Role\n" +
		"E1,2025-01-05,Ana,Reyes,9:00 AM,5:00 PM,Line Cook\n" +
		"E2,2025-01-05,Ben,Okafor,10:00 AM,6:00 PM,Prep\n"

	rows, err := parseShiftCSV(csv)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "E1", rows[0].EmployeeID)
	assert.Equal(t, "Ana", rows[0].FirstName)
	assert.Equal(t, "Line Cook", rows[0].Role)
	assert.Equal(t, "9:00 AM", rows[0].InTimeRaw)
}

func TestParseShiftCSV_HeaderIsCaseInsensitive(t *testing.T) {
	csv := "EMPLOYEE ID, DATE ,first,Last,In Time,OUT TIME\n" +
		"E1,2025-01-05,Ana,Reyes,9:00 AM,5:00 PM\n"

	rows, err := parseShiftCSV(csv)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2025-01-05", rows[0].Date)
}

func TestParseShiftCSV_QuotedFieldWithComma(t *testing.T) {
	csv := "Employee ID,Date,First,Last,In Time,Out Time,Location\n" +
		"E1,2025-01-05,Ana,Reyes,9:00 AM,5:00 PM,\"Memphis, Main St\"\n"

	rows, err := parseShiftCSV(csv)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Memphis, Main St", rows[0].Location)
}

func TestParseShiftCSV_SkipsIncompleteRows(t *testing.T) {
	csv := "Employee ID,Date,First,Last,In Time,Out Time\n" +
		"E1,2025-01-05,Ana,Reyes,9:00 AM,5:00 PM\n" +
		",2025-01-05,Blank,Id,9:00 AM,5:00 PM\n" +
		"E2,,Blank,Date,9:00 AM,5:00 PM\n" +
		"E3,2025-01-05,Blank,Times,,\n" +
		",,,,,\n"

	rows, err := parseShiftCSV(csv)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "E1", rows[0].EmployeeID)
}

func TestParseShiftCSV_MissingRequiredColumnFails(t *testing.T) {
	csv := "Employee ID,Date,First,Last,In Time\n" +
		"E1,2025-01-05,Ana,Reyes,9:00 AM\n"

	_, err := parseShiftCSV(csv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required column "out time"`)
}

func TestParseShiftCSV_EmptyFileFails(t *testing.T) {
	_, err := parseShiftCSV("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty file")
}

func TestParseShiftCSV_NumericColumnsDefaultToZero(t *testing.T) {
	csv := "Employee ID,Date,First,Last,In Time,Out Time,Regular Hours,OT Hours\n" +
		"E1,2025-01-05,Ana,Reyes,9:00 AM,5:00 PM,7.5,0.5\n" +
		"E2,2025-01-05,Ben,Okafor,10:00 AM,6:00 PM,not-a-number,\n"

	rows, err := parseShiftCSV(csv)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 7.5, rows[0].RegularHours)
	assert.Equal(t, 0.5, rows[0].OTHours)
	assert.Equal(t, 0.0, rows[1].RegularHours)
	assert.Equal(t, 0.0, rows[1].OTHours)
}

func TestSplitCSVLine_QuoteToggling(t *testing.T) {
	fields := splitCSVLine(`a,"b,c",d`)
	assert.Equal(t, []string{"a", "b,c", "d"}, fields)
}

func TestSplitCSVLine_TrimsValues(t *testing.T) {
	fields := splitCSVLine(` a , b ,c `)
	assert.Equal(t, []string{"a", "b", "c"}, fields)
}
