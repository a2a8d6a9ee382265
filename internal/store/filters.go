package store

import "strings"

func normalizePlatform(p string) string {
	return strings.ToLower(strings.TrimSpace(p))
}

func lowerAll(values []string) []string {
	lowered := make([]string, 0, len(values))
	for _, v := range values {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(v)))
	}
	return lowered
}
