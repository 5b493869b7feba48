package params

import (
	"fmt"
	"strings"
)

// ParseKeyValuePairs converts a slice of "key=value" strings into a map.
//
// Example:
//
//	vars, err := ParseKeyValuePairs([]string{"EDITOR=nano", "LANG=en_US"})
//	// Returns: map[string]string{"EDITOR": "nano", "LANG": "en_US"}
func ParseKeyValuePairs(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("variable %q is not in KEY=VALUE format (example: --env EDITOR=nano)", pair)
		}

		if key == "" {
			return nil, fmt.Errorf("variable has empty key: %q", pair)
		}

		result[key] = value
	}

	return result, nil
}
