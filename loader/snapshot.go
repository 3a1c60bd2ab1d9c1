package loader

import (
	"github.com/hashicorp/go-multierror"
)

// Queryer is the read side of the database session the loader consumes
type Queryer interface {
	QueryAll(query string) ([]Row, error)
	QueryOne(query string) (Row, error)
}

// Snapshot is the immutable capture of server state taken once at session
// start. Checks read from here instead of re-querying; only genuinely live
// values (processlist counts etc.) go back to the session.
type Snapshot struct {
	Status    Sample
	Variables Sample

	// Present iff the server reports itself as a replica
	Replica *ReplicaStatus

	// Set when replica status could not be read (missing replication
	// grants, unparseable row). Not fatal to the capture: the replication
	// check surfaces it, every other check still runs.
	ReplicaError error
}

// IsReplica is true when the server reported a replica status
func (s *Snapshot) IsReplica() bool {
	return s.Replica != nil
}

// Turn SHOW GLOBAL STATUS/VARIABLES rows into a Sample
func sampleFromRows(rows []Row) Sample {
	sample := make(Sample, len(rows))
	for _, row := range rows {
		sample[row[`Variable_name`]] = row[`Value`]
	}
	return sample
}

// Load captures the Snapshot from the given session. Status and variables
// are both required; replica status is optional (an empty result means the
// server is not a replica, a query failure lands in ReplicaError).
func Load(q Queryer) (*Snapshot, error) {
	var errs *multierror.Error
	snap := &Snapshot{}

	statusRows, err := q.QueryAll(`SHOW GLOBAL STATUS`)
	if err != nil {
		errs = multierror.Append(errs, err)
	} else {
		snap.Status = sampleFromRows(statusRows)
	}

	varRows, err := q.QueryAll(`SHOW GLOBAL VARIABLES`)
	if err != nil {
		errs = multierror.Append(errs, err)
	} else {
		snap.Variables = sampleFromRows(varRows)
	}

	// SHOW REPLICA STATUS on 8.0.22+, SHOW SLAVE STATUS before that
	replicaRows, err := q.QueryAll(`SHOW REPLICA STATUS`)
	if err != nil {
		replicaRows, err = q.QueryAll(`SHOW SLAVE STATUS`)
	}
	if err != nil {
		snap.ReplicaError = err
	} else if len(replicaRows) > 0 {
		rs, err := NewReplicaStatus(replicaRows[0])
		if err != nil {
			snap.ReplicaError = err
		} else {
			snap.Replica = rs
		}
	}

	return snap, errs.ErrorOrNil()
}
