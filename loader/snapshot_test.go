package loader

import (
	"fmt"
	"testing"
)

// fakeQueryer serves canned rows per query
type fakeQueryer struct {
	rows map[string][]Row
}

func (f *fakeQueryer) QueryAll(query string) ([]Row, error) {
	rows, ok := f.rows[query]
	if !ok {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	return rows, nil
}

func (f *fakeQueryer) QueryOne(query string) (Row, error) {
	rows, err := f.QueryAll(query)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func getTestQueryer(replica bool) *fakeQueryer {
	f := &fakeQueryer{rows: map[string][]Row{
		`SHOW GLOBAL STATUS`: {
			{`Variable_name`: `Threads_running`, `Value`: `10`},
			{`Variable_name`: `Threads_connected`, `Value`: `96`},
		},
		`SHOW GLOBAL VARIABLES`: {
			{`Variable_name`: `max_connections`, `Value`: `100`},
			{`Variable_name`: `read_only`, `Value`: `ON`},
		},
		`SHOW REPLICA STATUS`: {},
	}}
	if replica {
		f.rows[`SHOW REPLICA STATUS`] = []Row{getTestReplicaRow()}
	}
	return f
}

func TestLoad(t *testing.T) {
	snap, err := Load(getTestQueryer(false))
	if err != nil {
		t.Fatal(err)
	}

	if val, _ := snap.Status.GetString(`Threads_running`); val != `10` {
		t.Errorf(`unexpected status value: '%s'`, val)
	}
	if val, _ := snap.Variables.GetString(`max_connections`); val != `100` {
		t.Errorf(`unexpected variable value: '%s'`, val)
	}
	if snap.IsReplica() {
		t.Error(`expected no replica status`)
	}
}

func TestLoadReplica(t *testing.T) {
	snap, err := Load(getTestQueryer(true))
	if err != nil {
		t.Fatal(err)
	}

	if !snap.IsReplica() {
		t.Fatal(`expected replica status`)
	}
	if snap.Replica.MasterHost != `db1.example.com` {
		t.Errorf(`unexpected master host: '%s'`, snap.Replica.MasterHost)
	}
}

// Old servers reject SHOW REPLICA STATUS, the loader falls back
func TestLoadSlaveStatusFallback(t *testing.T) {
	f := getTestQueryer(false)
	delete(f.rows, `SHOW REPLICA STATUS`)
	f.rows[`SHOW SLAVE STATUS`] = []Row{getTestReplicaRow()}

	snap, err := Load(f)
	if err != nil {
		t.Fatal(err)
	}
	if !snap.IsReplica() {
		t.Error(`expected replica status via SHOW SLAVE STATUS`)
	}
}

// A replica-status failure (missing replication grants) is not fatal to the
// capture: status and variables survive and the error is carried separately
func TestLoadReplicaStatusDenied(t *testing.T) {
	f := getTestQueryer(false)
	delete(f.rows, `SHOW REPLICA STATUS`)

	snap, err := Load(f)
	if err != nil {
		t.Fatalf(`replica status failure must not fail the load: %v`, err)
	}

	if snap.ReplicaError == nil {
		t.Error(`expected the replica status error to be carried`)
	}
	if snap.IsReplica() {
		t.Error(`expected no replica status`)
	}
	if val, _ := snap.Status.GetString(`Threads_running`); val != `10` {
		t.Errorf(`status must still be captured, got '%s'`, val)
	}
}

func TestLoadErrors(t *testing.T) {
	f := &fakeQueryer{rows: map[string][]Row{}}
	_, err := Load(f)
	if err == nil {
		t.Error(`expected load errors`)
	}
}
