package checker

// Which side of the thresholds is unhealthy
type Direction int

const (
	// HighBad alerts when the value meets or exceeds a threshold (usage %, lag)
	HighBad Direction = iota
	// LowBad alerts when the value meets or falls below a threshold (counts)
	LowBad
)

// A Warning/Critical threshold pair for one check. Both set to -1 means the
// check is disabled and must be skipped before evaluation.
type Thresholds struct {
	Warning  float64 `yaml:"warning"`
	Critical float64 `yaml:"critical"`
}

// Disabled thresholds short-circuit the whole check: no query, no message,
// no perf datum.
func (t Thresholds) Disabled() bool {
	return t.Warning == -1 && t.Critical == -1
}

// Evaluate a measured value against the thresholds. Callers must check
// Disabled() first; a disabled pair is never meaningful to evaluate.
func (t Thresholds) Evaluate(value float64, dir Direction) Severity {
	switch dir {
	case LowBad:
		if value <= t.Critical {
			return Critical
		}
		if value <= t.Warning {
			return Warning
		}
	default: // HighBad
		if value >= t.Critical {
			return Critical
		}
		if value >= t.Warning {
			return Warning
		}
	}
	return OK
}
