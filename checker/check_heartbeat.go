package checker

import (
	"fmt"
)

// Heartbeat write: replace the single heartbeat row with the current server
// time. The one side-effecting check; success proves the server accepts
// writes end to end.
type HeartbeatCheck struct {
	cfg HeartbeatConfig
}

func (c HeartbeatCheck) Name() string { return `heartbeat` }

func (c HeartbeatCheck) Run(env *Env, r *Report) {
	table := fmt.Sprintf("%s.%s", quoteIdent(c.cfg.Schema), quoteIdent(c.cfg.Table))

	query := fmt.Sprintf(`REPLACE INTO %s (%s, %s) VALUES (1, NOW())`,
		table, quoteIdent(c.cfg.IDColumn), quoteIdent(c.cfg.TSColumn))

	if err := env.Session.Exec(query); err != nil {
		r.Record(Result{
			Severity: Critical,
			Message:  fmt.Sprintf("Heartbeat write to %s.%s failed: %v", c.cfg.Schema, c.cfg.Table, err),
		})
		return
	}

	r.Record(Result{
		Severity: OK,
		Message:  fmt.Sprintf("Heartbeat written to %s.%s", c.cfg.Schema, c.cfg.Table),
	})
}
