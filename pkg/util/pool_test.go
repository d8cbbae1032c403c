package util

import "testing"

func TestGetOptimalPoolSizeWithOverrideUsesOverrideWhenPositive(t *testing.T) {
	if got := GetOptimalPoolSizeWithOverride(7); got != 7 {
		t.Errorf("got %d, want 7", got)
	}
}

func TestGetOptimalPoolSizeWithOverrideFallsBackWhenNonPositive(t *testing.T) {
	want := GetOptimalPoolSize()
	for _, override := range []int{0, -1} {
		if got := GetOptimalPoolSizeWithOverride(override); got != want {
			t.Errorf("override %d: got %d, want %d", override, got, want)
		}
	}
}
