package checker

import (
	"fmt"
	"strings"

	"github.com/gookit/slog"

	"github.com/jayjanssen/myq-health/loader"
)

// Session is the database access the checks consume. Checks read the
// Snapshot for anything it already holds; only genuinely live values come
// back through here.
type Session interface {
	QueryAll(query string) ([]loader.Row, error)
	QueryOne(query string) (loader.Row, error)
	Exec(query string) error
}

// SourceSession is the scoped second connection the lag estimator opens to
// the replication source
type SourceSession interface {
	QueryAll(query string) ([]loader.Row, error)
	Close() error
}

// Env bundles everything a check can touch during one run
type Env struct {
	Snapshot *loader.Snapshot
	Session  Session

	// Opens an independent connection to the replication source, reusing the
	// replica credentials with a substituted host/port. A connect error here
	// is not a failure: the lag estimator silently degrades to its fallback.
	// nil forces the fallback (used when no dialer is available).
	ConnectSource func(host string, port int) (SourceSession, error)
}

// A Check produces zero or more Results into the Report. Checks never abort
// the run: a failed query is recorded as that check's own failure and
// execution continues.
type Check interface {
	Name() string
	Run(env *Env, r *Report)
}

// Suite builds the enabled checks in the fixed execution order
func Suite(p *Profile) []Check {
	var checks []Check
	if p.Threads.Enabled {
		checks = append(checks, ThreadsCheck{p.Threads})
	}
	if p.Connections.Enabled {
		checks = append(checks, ConnectionsCheck{p.Connections})
	}
	if p.SlaveHosts.Enabled {
		checks = append(checks, SlaveHostsCheck{p.SlaveHosts})
	}
	if p.Users.Enabled {
		checks = append(checks, UsersCheck{p.Users})
	}
	if p.Replication.Enabled {
		checks = append(checks, ReplicationCheck{p.Replication})
	}
	if p.Lock.Enabled {
		checks = append(checks, LockCheck{p.Lock})
	}
	if p.Heartbeat.Enabled {
		checks = append(checks, HeartbeatCheck{p.Heartbeat})
	}
	if p.Definer.Enabled {
		checks = append(checks, DefinerCheck{p.Definer})
	}
	return checks
}

// RunChecks executes the checks strictly in order, each recording into the
// shared Report
func RunChecks(env *Env, checks []Check, r *Report) {
	for _, c := range checks {
		slog.Debugf("running check %s", c.Name())
		c.Run(env, r)
	}
}

// backtick-quote an identifier; identifiers can't be bound as placeholders
func quoteIdent(name string) string {
	return fmt.Sprintf("`%s`", strings.ReplaceAll(name, "`", ""))
}

func quoteValue(val string) string {
	return fmt.Sprintf(`'%s'`, strings.ReplaceAll(val, `'`, `''`))
}

// queryFailure is the shared failure path for live queries inside a check:
// missing privileges degrade to Warning, anything else is Critical.
func queryFailure(name string, err error) Result {
	if isAccessDenied(err) {
		return Result{
			Severity: Warning,
			Message:  fmt.Sprintf("Check %s needs missing privileges: %v", name, err),
		}
	}
	return Result{
		Severity: Critical,
		Message:  fmt.Sprintf("Check %s query failed: %v", name, err),
	}
}
