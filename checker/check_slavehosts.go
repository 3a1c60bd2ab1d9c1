package checker

import (
	"fmt"
	"strconv"
)

// Count of replica hosts registered with this server. Too few means a
// replica dropped off, so the direction is low-bad.
type SlaveHostsCheck struct {
	cfg SlaveHostsConfig
}

func (c SlaveHostsCheck) Name() string { return `slavehosts` }

func (c SlaveHostsCheck) Run(env *Env, r *Report) {
	if c.cfg.Disabled() {
		return
	}

	rows, err := env.Session.QueryAll(`SHOW SLAVE HOSTS`)
	if err != nil {
		r.Record(queryFailure(c.Name(), err))
		return
	}

	count := float64(len(rows))

	r.Record(Result{
		Severity: c.cfg.Evaluate(count, LowBad),
		Message:  fmt.Sprintf("Slave hosts connected %d", len(rows)),
		Perf: []PerfDatum{{
			Label:      `slave_hosts`,
			Value:      strconv.Itoa(len(rows)),
			Thresholds: c.cfg.Thresholds,
		}},
	})
}
