package server

import (
	"fmt"
	"time"
)

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		// Handle numeric values that clients may send unquoted
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// msParam reads a millisecond count as a duration.
func msParam(params map[string]interface{}, key string, defaultVal time.Duration) time.Duration {
	if _, ok := params[key]; !ok {
		return defaultVal
	}
	return time.Duration(intParam(params, key, 0)) * time.Millisecond
}
