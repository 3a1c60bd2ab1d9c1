package checker

import (
	"fmt"
	"strconv"
)

// A single performance-data token: label=value;warning;critical. Value is
// pre-formatted by the check (it may carry a unit suffix like `%` or `s`).
type PerfDatum struct {
	Label      string
	Value      string
	Thresholds Thresholds
}

func (p PerfDatum) String() string {
	return fmt.Sprintf("%s=%s;%s;%s", p.Label, p.Value,
		FormatNum(p.Thresholds.Warning), FormatNum(p.Thresholds.Critical))
}

// FormatNum renders a threshold or count without trailing zeros
func FormatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// The outcome of one check (or one signal of a composite check)
type Result struct {
	Severity Severity
	Message  string
	Perf     []PerfDatum
}

// Report accumulates check Results into one overall severity plus the
// categorized messages and perfdata needed for plugin output.
type Report struct {
	overall Severity

	// message buckets, in check-invocation order
	ok       []string
	warning  []string
	critical []string

	perf []PerfDatum
}

func NewReport() *Report {
	return &Report{}
}

// Record merges a Result: message into the bucket matching its own severity,
// perfdata appended in call order, overall severity ratcheted up (never down).
func (r *Report) Record(res Result) {
	if res.Severity > r.overall {
		r.overall = res.Severity
	}

	if res.Message != "" {
		switch res.Severity {
		case OK:
			r.ok = append(r.ok, res.Message)
		case Warning:
			r.warning = append(r.warning, res.Message)
		case Critical:
			r.critical = append(r.critical, res.Message)
		}
	}

	r.perf = append(r.perf, res.Perf...)
}

// Overall severity seen so far
func (r *Report) Overall() Severity {
	return r.overall
}

// The finalized state of a Report, ready for the formatter
type Final struct {
	Severity  Severity
	Primary   string
	Secondary []string
	Perf      []PerfDatum
}

const allHealthy = `all checks passed`

// Finalize selects the message bucket matching the overall severity. For OK
// the primary line is always the canonical healthy message and every ok
// message becomes a secondary line; for Warning/Critical the first bucket
// message is promoted to the primary line.
func (r *Report) Finalize() Final {
	f := Final{Severity: r.overall, Perf: r.perf}

	var bucket []string
	switch r.overall {
	case Warning:
		bucket = r.warning
	case Critical:
		bucket = r.critical
	default:
		// OK gets the fixed literal, the ok details all become secondary
		f.Primary = allHealthy
		f.Secondary = r.ok
		return f
	}

	if len(bucket) == 0 {
		f.Primary = allHealthy
		return f
	}
	f.Primary = bucket[0]
	f.Secondary = bucket[1:]
	return f
}
