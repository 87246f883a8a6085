package utils

import "strings"

// DeduplicateStrings removes duplicate values from a slice while preserving order.
// Blank values are dropped and the first occurrence of each value is kept.
func DeduplicateStrings(values []string) []string {
	encountered := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == EmptyString {
			continue
		}
		if _, exists := encountered[trimmed]; !exists {
			encountered[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}
	return result
}
