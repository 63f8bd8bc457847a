package sheetsclient

import (
	"fmt"
	"strings"
)

// FetchExportCSV reads an export tab and renders it as CSV text for the
// delta engine. Cell values are stringified; values containing commas or
// quotes are wrapped in double quotes the way the vendor exports quote them.
func (c *Client) FetchExportCSV(spreadsheetID, tab string) (string, error) {
	values, err := c.GetValues(spreadsheetID, tab)
	if err != nil {
		return "", fmt.Errorf("failed to fetch export tab %q: %w", tab, err)
	}

	if len(values) == 0 {
		return "", fmt.Errorf("export tab %q is empty", tab)
	}

	return RenderCSV(values), nil
}

// RenderCSV turns raw sheet values into CSV text
func RenderCSV(values [][]interface{}) string {
	var sb strings.Builder
	for _, row := range values {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = csvEscape(fmt.Sprintf("%v", cell))
		}
		sb.WriteString(strings.Join(cells, ","))
		sb.WriteString("\n")
	}

	return sb.String()
}

func csvEscape(value string) string {
	if !strings.ContainsAny(value, ",\"\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
