package deltaengine

import (
	"fmt"
	"strconv"
	"strings"
)

// Required header columns, matched case-insensitively after trimming
var requiredColumns = []string{"employee id", "date", "first", "last", "in time", "out time"}

// parseShiftCSV tokenizes one vendor export. The first line is the header;
// each header cell is lower-cased and trimmed to build a name -> column
// index map. Rows missing employee id, date, in-time, or out-time are
// skipped silently (vendor exports routinely contain blank trailer rows).
// A missing required header column or an empty file is an error.
func parseShiftCSV(text string) ([]rawShiftRow, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty file: no header row found")
	}

	header := splitCSVLine(lines[0])
	columns := make(map[string]int, len(header))
	for i, cell := range header {
		columns[strings.ToLower(strings.TrimSpace(cell))] = i
	}

	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column %q in header", required)
		}
	}

	var rows []rawShiftRow
	for _, line := range lines[1:] {
		fields := splitCSVLine(line)

		row := rawShiftRow{
			EmployeeID:   fieldAt(fields, columns, "employee id"),
			Date:         fieldAt(fields, columns, "date"),
			FirstName:    fieldAt(fields, columns, "first"),
			LastName:     fieldAt(fields, columns, "last"),
			Location:     fieldAt(fields, columns, "location"),
			InTimeRaw:    fieldAt(fields, columns, "in time"),
			OutTimeRaw:   fieldAt(fields, columns, "out time"),
			Role:         fieldAt(fields, columns, "role"),
			RegularHours: numericAt(fields, columns, "regular hours"),
			OTHours:      numericAt(fields, columns, "ot hours"),
		}

		// Incomplete rows are expected in real exports, not an error
		if row.EmployeeID == "" || row.Date == "" || row.InTimeRaw == "" || row.OutTimeRaw == "" {
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// splitCSVLine splits one CSV line on commas, respecting double-quoted
// fields: a quote toggles in-quotes mode and commas inside quotes do not
// split. Wrapping quotes are stripped and each value is trimmed.
func splitCSVLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// splitLines breaks raw CSV text into non-empty lines, tolerating CRLF
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func fieldAt(fields []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(fields) {
		return ""
	}
	return fields[idx]
}

// numericAt reads an optional numeric column, defaulting to 0 on a missing
// column or a parse failure
func numericAt(fields []string, columns map[string]int, name string) float64 {
	raw := fieldAt(fields, columns, name)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}
