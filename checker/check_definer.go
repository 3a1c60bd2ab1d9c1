package checker

import (
	"fmt"
	"sort"
	"strings"
)

// information_schema source per auditable object kind
var definerQueries = map[string]string{
	`views`:    `SELECT definer FROM information_schema.views`,
	`routines`: `SELECT definer FROM information_schema.routines`,
	`triggers`: `SELECT definer FROM information_schema.triggers`,
	`events`:   `SELECT definer FROM information_schema.events`,
}

// Orphaned-definer audit: DEFINER clauses referencing accounts that no
// longer exist. Such objects break (or worse, get hijacked if the account is
// recreated), but this is an operational smell, never Critical.
type DefinerCheck struct {
	cfg DefinerConfig
}

func (c DefinerCheck) Name() string { return `definer` }

func (c DefinerCheck) Run(env *Env, r *Report) {
	accounts, err := env.Session.QueryAll(`SELECT user, host FROM mysql.user`)
	if err != nil {
		r.Record(queryFailure(c.Name(), err))
		return
	}

	known := make(map[string]bool, len(accounts))
	for _, row := range accounts {
		known[fmt.Sprintf("%s@%s", row[`user`], row[`host`])] = true
	}

	orphans := make(map[string]bool)
	for _, kind := range c.cfg.Objects {
		query, ok := definerQueries[kind]
		if !ok {
			r.Record(Result{
				Severity: Warning,
				Message:  fmt.Sprintf("Unknown definer object kind: %s", kind),
			})
			continue
		}

		rows, err := env.Session.QueryAll(query)
		if err != nil {
			r.Record(queryFailure(c.Name(), err))
			continue
		}

		for _, row := range rows {
			definer := row[`definer`]
			if definer != "" && !known[definer] {
				orphans[definer] = true
			}
		}
	}

	if len(orphans) == 0 {
		r.Record(Result{Severity: OK, Message: `No orphaned definers`})
		return
	}

	list := make([]string, 0, len(orphans))
	for definer := range orphans {
		list = append(list, definer)
	}
	sort.Strings(list)

	r.Record(Result{
		Severity: Warning,
		Message:  fmt.Sprintf("Orphaned definers found: %s", strings.Join(list, `, `)),
	})
}
