package checker

import (
	"fmt"
	"strconv"
	"strings"
)

var systemSchemas = []string{`mysql`, `information_schema`, `performance_schema`, `sys`}

// Change-management lock audit: find the well-known lock table in every
// non-system schema and alert on locks held too long. A schema that should
// have the table but doesn't is itself worth a warning, never silence.
type LockCheck struct {
	cfg LockConfig
}

func (c LockCheck) Name() string { return `lock` }

func (c LockCheck) Run(env *Env, r *Report) {
	if c.cfg.Disabled() {
		return
	}

	query := `SELECT table_schema FROM information_schema.tables` +
		` WHERE table_name = ` + quoteValue(c.cfg.Table) +
		` AND table_schema NOT IN ('` + strings.Join(systemSchemas, `','`) + `')`
	if c.cfg.Schema != "" {
		query += ` AND table_schema = ` + quoteValue(c.cfg.Schema)
	}
	query += ` ORDER BY table_schema`

	rows, err := env.Session.QueryAll(query)
	if err != nil {
		r.Record(queryFailure(c.Name(), err))
		return
	}

	if len(rows) == 0 {
		where := `any schema`
		if c.cfg.Schema != "" {
			where = fmt.Sprintf("schema %s", c.cfg.Schema)
		}
		r.Record(Result{
			Severity: Warning,
			Message:  fmt.Sprintf("Lock table %s not found in %s", c.cfg.Table, where),
		})
		return
	}

	held := 0
	for _, row := range rows {
		schema := row[`table_schema`]
		held += c.auditSchema(env, r, schema)
	}

	if held == 0 {
		r.Record(Result{
			Severity: OK,
			Message:  fmt.Sprintf("No %s locks held", c.cfg.Table),
		})
	}
}

// Audit one schema's lock table, returns how many held locks were found
func (c LockCheck) auditSchema(env *Env, r *Report, schema string) int {
	query := fmt.Sprintf(
		`SELECT TIMESTAMPDIFF(SECOND, LOCKGRANTED, NOW()) AS held_seconds, LOCKEDBY`+
			` FROM %s.%s WHERE LOCKED = 1`,
		quoteIdent(schema), quoteIdent(c.cfg.Table))

	rows, err := env.Session.QueryAll(query)
	if err != nil {
		r.Record(queryFailure(c.Name(), err))
		return 0
	}

	for _, row := range rows {
		heldSeconds, err := strconv.ParseFloat(row[`held_seconds`], 64)
		if err != nil {
			// a held lock with no grant timestamp can't be aged
			heldSeconds = 0
		}

		r.Record(Result{
			Severity: c.cfg.Evaluate(heldSeconds, HighBad),
			Message: fmt.Sprintf("Change lock on %s.%s held for %ss by %s",
				schema, c.cfg.Table, FormatNum(heldSeconds), row[`LOCKEDBY`]),
			Perf: []PerfDatum{{
				Label:      fmt.Sprintf(`lock_seconds_%s`, schema),
				Value:      fmt.Sprintf(`%ss`, FormatNum(heldSeconds)),
				Thresholds: c.cfg.Thresholds,
			}},
		})
	}
	return len(rows)
}
