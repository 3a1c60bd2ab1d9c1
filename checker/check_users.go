package checker

import (
	"fmt"
	"strconv"
)

// Count of connected sessions, optionally narrowed to one username. An
// application losing its connections shows up as too few, so the direction
// is low-bad. Critical escalation is opt-in via alert-level.
type UsersCheck struct {
	cfg UsersConfig
}

func (c UsersCheck) Name() string { return `users` }

func (c UsersCheck) Run(env *Env, r *Report) {
	if c.cfg.Disabled() {
		return
	}

	query := `SELECT COUNT(*) AS sessions FROM information_schema.processlist` +
		` WHERE user <> 'system user'`
	if c.cfg.Username != "" {
		query += fmt.Sprintf(` AND user = %s`, quoteValue(c.cfg.Username))
	}

	row, err := env.Session.QueryOne(query)
	if err != nil {
		r.Record(queryFailure(c.Name(), err))
		return
	}

	count, err := strconv.ParseFloat(row[`sessions`], 64)
	if err != nil {
		r.Record(queryFailure(c.Name(), err))
		return
	}

	sev := c.cfg.Evaluate(count, LowBad)
	// a critical breach only escalates when explicitly requested
	if sev == Critical && c.cfg.AlertLevel != `critical` {
		sev = Warning
	}

	msg := fmt.Sprintf("Connected users %s", FormatNum(count))
	label := `connected_users`
	if c.cfg.Username != "" {
		msg = fmt.Sprintf("Connected users for %s %s", c.cfg.Username, FormatNum(count))
		label = fmt.Sprintf(`connected_users_%s`, c.cfg.Username)
	}

	r.Record(Result{
		Severity: sev,
		Message:  msg,
		Perf: []PerfDatum{{
			Label:      label,
			Value:      FormatNum(count),
			Thresholds: c.cfg.Thresholds,
		}},
	})
}
