package checker

import (
	"fmt"
)

// Connection usage as a percentage of max_connections
type ConnectionsCheck struct {
	cfg ConnectionsConfig
}

func (c ConnectionsCheck) Name() string { return `connections` }

func (c ConnectionsCheck) Run(env *Env, r *Report) {
	if c.cfg.Disabled() {
		return
	}

	max, err := env.Snapshot.Variables.GetFloat(`max_connections`)
	if err != nil {
		r.Record(Result{
			Severity: Critical,
			Message:  fmt.Sprintf("Connection usage unavailable: %v", err),
		})
		return
	}
	if max == 0 {
		r.Record(Result{
			Severity: Critical,
			Message:  "Connection usage unavailable: max_connections is 0",
		})
		return
	}

	connected, err := env.Snapshot.Status.GetFloat(`Threads_connected`)
	if err != nil {
		connected = 0
	}

	usage := connected / max * 100

	r.Record(Result{
		Severity: c.cfg.Evaluate(usage, HighBad),
		Message: fmt.Sprintf("Connections used %.1f%% Threads connected %s Max connections %s",
			usage, FormatNum(connected), FormatNum(max)),
		Perf: []PerfDatum{{
			Label:      `connection_usage`,
			Value:      fmt.Sprintf(`%.1f%%`, usage),
			Thresholds: c.cfg.Thresholds,
		}},
	})
}
