package checker

import (
	"testing"
)

func TestEvaluateHighBad(t *testing.T) {
	th := Thresholds{Warning: 60, Critical: 95}

	cases := []struct {
		value float64
		want  Severity
	}{
		{0, OK},
		{59.9, OK},
		{60, Warning},
		{94.9, Warning},
		{95, Critical},
		{200, Critical},
	}
	for _, c := range cases {
		if got := th.Evaluate(c.value, HighBad); got != c.want {
			t.Errorf(`evaluate(%f) = %s, want %s`, c.value, got, c.want)
		}
	}
}

func TestEvaluateLowBad(t *testing.T) {
	th := Thresholds{Warning: 20, Critical: 5}

	cases := []struct {
		value float64
		want  Severity
	}{
		{100, OK},
		{21, OK},
		{20, Warning},
		{6, Warning},
		{5, Critical},
		{0, Critical},
	}
	for _, c := range cases {
		if got := th.Evaluate(c.value, LowBad); got != c.want {
			t.Errorf(`evaluate(%f) = %s, want %s`, c.value, got, c.want)
		}
	}
}

func TestDisabledSentinel(t *testing.T) {
	if !(Thresholds{Warning: -1, Critical: -1}).Disabled() {
		t.Error(`-1/-1 should be disabled`)
	}
	if (Thresholds{Warning: -1, Critical: 5}).Disabled() {
		t.Error(`only both -1 disables`)
	}
	if (Thresholds{Warning: 60, Critical: 95}).Disabled() {
		t.Error(`normal thresholds should not be disabled`)
	}
}
