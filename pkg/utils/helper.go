package utils

import (
	"strconv"
)

// ParseInt converts string to int, falling back to defaultValue when the value
// is empty, malformed or below min.
func ParseInt(value string, defaultValue, min int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < min {
		return defaultValue
	}

	return result
}
