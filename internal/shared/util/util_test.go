package util

import (
	"reflect"
	"testing"
)

func TestSortedStringKeys(t *testing.T) {
	m := map[string]int{"c": 3, "a": 1, "b": 2}
	if got := SortedStringKeys(m); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Expected sorted keys, got %v", got)
	}
	if got := SortedStringKeys(map[string]int{}); len(got) != 0 {
		t.Errorf("Expected empty result, got %v", got)
	}
}

func TestSortedUnique(t *testing.T) {
	cases := []struct {
		input []string
		want  []string
	}{
		{nil, []string{}},
		{[]string{"b", "a", "b", "c", "a"}, []string{"a", "b", "c"}},
		{[]string{"x"}, []string{"x"}},
	}
	for _, tc := range cases {
		if got := SortedUnique(tc.input); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SortedUnique(%v) = %v, expected %v", tc.input, got, tc.want)
		}
	}
}

func TestLimiterBurst(t *testing.T) {
	l := NewLimiter(1, 2)

	if !l.Allow(1) || !l.Allow(1) {
		t.Error("Burst of 2 should permit two immediate events")
	}
	if l.Allow(1) {
		t.Error("Third immediate event should be rejected")
	}
}
