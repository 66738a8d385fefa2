package matchers

import "testing"

func TestMatchesImpactedTests(t *testing.T) {
	impacted := []string{
		"/home/user/project/mypkg/tests/test_core.py",
		"/home/user/project/mypkg/tests/test_api.py",
	}

	cases := []struct {
		itemPath string
		want     bool
	}{
		{"mypkg/tests/test_core.py", true},
		{"tests/test_api.py", true},
		{"/home/user/project/mypkg/tests/test_core.py", true},
		{"mypkg/tests/test_other.py", false},
		{"test_core.py", true},
		{"", false},
	}

	for _, tc := range cases {
		if got := MatchesImpactedTests(tc.itemPath, impacted); got != tc.want {
			t.Errorf("MatchesImpactedTests(%q) = %v, expected %v", tc.itemPath, got, tc.want)
		}
	}
}

func TestMatchesImpactedTestsEmptySet(t *testing.T) {
	if MatchesImpactedTests("tests/test_core.py", nil) {
		t.Error("Empty impacted set matches nothing")
	}
}
