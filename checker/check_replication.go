package checker

import (
	"fmt"
)

// Replication health: thread liveness, read-only mode, and lag in both
// seconds and bytes. Only runs when the snapshot shows the server is a
// replica; the individual signals fold together through the Report's
// max-severity ratchet.
type ReplicationCheck struct {
	cfg ReplicationConfig
}

func (c ReplicationCheck) Name() string { return `replication` }

func (c ReplicationCheck) Run(env *Env, r *Report) {
	// replica status missing from the snapshot is this check's failure, not
	// the run's (missing replication grants degrade to a Warning)
	if err := env.Snapshot.ReplicaError; err != nil {
		r.Record(queryFailure(c.Name(), err))
		return
	}
	if !env.Snapshot.IsReplica() {
		return
	}
	rs := env.Snapshot.Replica

	if !rs.SQLRunning {
		r.Record(Result{Severity: Critical, Message: `Replication SQL Thread is down`})
		if rs.LastErrno != 0 || rs.LastError != "" {
			r.Record(Result{
				Severity: Critical,
				Message:  fmt.Sprintf("Last Error: %d %s", rs.LastErrno, rs.LastError),
			})
		}
	}

	if !rs.IORunning {
		r.Record(Result{Severity: Critical, Message: `Replication IO Thread is down`})
	}

	if !c.cfg.AllowWritable {
		readOnly, err := env.Snapshot.Variables.GetBool(`read_only`)
		if err != nil || !readOnly {
			r.Record(Result{
				Severity: Warning,
				Message:  `Slave is not operating in read only mode`,
			})
		}
	}

	// Lag in seconds: NULL displays as -1 in perfdata but must never reach
	// the evaluator, where a negative sentinel would trip a low threshold.
	lagSeconds := int64(-1)
	secondsKnown := rs.SecondsBehind != nil
	if secondsKnown {
		lagSeconds = *rs.SecondsBehind
	}

	lagSev := OK
	if secondsKnown && !c.cfg.Seconds.Disabled() {
		lagSev = c.cfg.Seconds.Evaluate(float64(lagSeconds), HighBad)
	}

	// disabled thresholds emit no perf datum at all
	var perf []PerfDatum
	if !c.cfg.Seconds.Disabled() {
		perf = append(perf, PerfDatum{
			Label:      `replication_seconds`,
			Value:      fmt.Sprintf(`%ds`, lagSeconds),
			Thresholds: c.cfg.Seconds,
		})
	}

	// Lag in bytes from the estimator
	est, err := EstimateLag(env, rs, env.Snapshot.Variables)
	if err != nil {
		r.Record(Result{
			Severity: Critical,
			Message:  fmt.Sprintf("Replication lag estimate failed: %v", err),
			Perf:     perf,
		})
		return
	}

	if !c.cfg.Bytes.Disabled() {
		perf = append(perf, PerfDatum{
			Label:      `replication_bytes`,
			Value:      fmt.Sprintf(`%d`, est.Bytes),
			Thresholds: c.cfg.Bytes,
		})
		if byteSev := c.cfg.Bytes.Evaluate(float64(est.Bytes), HighBad); byteSev > lagSev {
			lagSev = byteSev
		}
	}

	// One summary line, into whichever single bucket lag triggered
	r.Record(Result{
		Severity: lagSev,
		Message: fmt.Sprintf("Replication Master %s:%d Slave lag %ds/%s",
			rs.MasterHost, rs.MasterPort, lagSeconds, ByteSize(float64(est.Bytes))),
		Perf: perf,
	})
}
