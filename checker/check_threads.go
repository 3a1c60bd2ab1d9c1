package checker

import (
	"fmt"
)

// Thread usage as a percentage of innodb_thread_concurrency
type ThreadsCheck struct {
	cfg ThreadsConfig
}

func (c ThreadsCheck) Name() string { return `threads` }

func (c ThreadsCheck) Run(env *Env, r *Report) {
	if c.cfg.Disabled() {
		return
	}

	concurrency, err := env.Snapshot.Variables.GetFloat(`innodb_thread_concurrency`)
	if err != nil {
		r.Record(Result{
			Severity: Critical,
			Message:  fmt.Sprintf("Thread usage unavailable: %v", err),
		})
		return
	}

	// 0 means unlimited concurrency, there is no usage to measure
	if concurrency == 0 {
		return
	}

	running, err := env.Snapshot.Status.GetFloat(`Threads_running`)
	if err != nil {
		running = 0
	}

	usage := running / concurrency * 100

	r.Record(Result{
		Severity: c.cfg.Evaluate(usage, HighBad),
		Message: fmt.Sprintf("Thread usage %.1f%% Threads running %s Thread concurrency %s",
			usage, FormatNum(running), FormatNum(concurrency)),
		Perf: []PerfDatum{{
			Label:      `thread_usage`,
			Value:      fmt.Sprintf(`%.1f%%`, usage),
			Thresholds: c.cfg.Thresholds,
		}},
	})
}
