// Package matchers provides the hand-off predicate between the impacted set
// and a host test runner's collected item locations.
package matchers

import "strings"

// MatchesImpactedTests reports whether itemPath matches any impacted test
// path. Suffix semantics tolerate the prefix differences between
// runner-reported locations and absolute discovery paths.
func MatchesImpactedTests(itemPath string, impactedTests []string) bool {
	if itemPath == "" {
		return false
	}
	for _, test := range impactedTests {
		if strings.HasSuffix(test, itemPath) {
			return true
		}
	}
	return false
}
