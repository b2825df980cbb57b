package main

import "strings"

// isExcluded reports whether any non-empty filter is a substring of name.
// Matching is case-sensitive and literal: a filter of "test" excludes
// "testing-repo" and "mytest123" alike. An empty filter set excludes nothing.
func isExcluded(name string, filters []string) bool {
	for _, filter := range filters {
		if filter != "" && strings.Contains(name, filter) {
			return true
		}
	}
	return false
}
