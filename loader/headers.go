package loader

import (
	"strconv"
	"strings"
)

// excelColumnName converts a 0-based index to a spreadsheet column name:
// 0 -> A, 25 -> Z, 26 -> AA.
func excelColumnName(index int) string {
	result := ""
	index++

	for index > 0 {
		index--
		result = string(rune('A'+index%26)) + result
		index /= 26
	}

	return result
}

// NormalizeHeaders trims column names, names blank ones Unnamed_A,
// Unnamed_B, ... and suffixes repeats with _2, _3, ... so every column has
// a distinct, non-empty name. A blank name would otherwise occur in every
// question.
func NormalizeHeaders(header []string) []string {
	normalized := make([]string, len(header))
	used := make(map[string]bool, len(header))
	emptyCount := 0

	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Unnamed_" + excelColumnName(emptyCount)
			emptyCount++
		}

		if used[name] {
			base := name
			for n := 2; used[name]; n++ {
				name = base + "_" + strconv.Itoa(n)
			}
		}
		used[name] = true
		normalized[i] = name
	}

	return normalized
}
