package app

import "strings"

const maxTracedQueryLength = 512

// formatDBQueryForTrace flattens whitespace and caps the length of SQL
// recorded on spans so multi-line queries stay readable in trace views.
func formatDBQueryForTrace(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}

	flat := strings.Join(fields, " ")
	if len(flat) > maxTracedQueryLength {
		return flat[:maxTracedQueryLength] + "..."
	}
	return flat
}
