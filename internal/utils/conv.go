package utils

import (
	"strconv"
	"strings"
)

// StringToUint converts a route parameter to a uint, returns 0 on error.
func StringToUint(s string) uint {
	i, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(i)
}

// SplitSkills turns a comma-separated skills string into a trimmed ordered
// list. "a, b,c" becomes ["a" "b" "c"]; empty segments are dropped.
func SplitSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
