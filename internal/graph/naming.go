package graph

import "strings"

// IsTestModule classifies a module by naming convention alone. The final
// dotted segment marks a test module when it is "test", "tests", starts with
// "test_" or ends with "_test"; any earlier segment marks one only when it is
// exactly "test" or "tests".
func IsTestModule(name string) bool {
	if name == "" {
		return false
	}
	segments := strings.Split(name, ".")
	last := segments[len(segments)-1]
	if last == "test" || last == "tests" ||
		strings.HasPrefix(last, "test_") || strings.HasSuffix(last, "_test") {
		return true
	}
	for _, seg := range segments[:len(segments)-1] {
		if seg == "test" || seg == "tests" {
			return true
		}
	}
	return false
}
