package checker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jayjanssen/myq-health/loader"
)

// a fake source connection serving SHOW BINARY LOGS
type fakeSource struct {
	logs   []loader.Row
	closed bool
}

func (s *fakeSource) QueryAll(query string) ([]loader.Row, error) {
	if !strings.Contains(query, `BINARY LOGS`) {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	return s.logs, nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

func getTestLagReplica() *loader.ReplicaStatus {
	rs, err := loader.NewReplicaStatus(loader.Row{
		`Master_Host`:           `db1.example.com`,
		`Master_Port`:           `3306`,
		`Master_Log_File`:       `mysql-bin.000010`,
		`Relay_Master_Log_File`: `mysql-bin.000009`,
		`Read_Master_Log_Pos`:   `900000`,
		`Exec_Master_Log_Pos`:   `500000`,
		`Slave_SQL_Running`:     `Yes`,
		`Slave_IO_Running`:      `Yes`,
	})
	if err != nil {
		panic(err)
	}
	return rs
}

// files from the matched boundary onward count, the already-applied bytes of
// the boundary file do not
func TestPrimaryLag(t *testing.T) {
	src := &fakeSource{logs: []loader.Row{
		{`Log_name`: `mysql-bin.000008`, `File_size`: `999999`},
		{`Log_name`: `mysql-bin.000009`, `File_size`: `500000`},
		{`Log_name`: `mysql-bin.000010`, `File_size`: `1048576`},
	}}

	est, err := primaryLag(src, getTestLagReplica())
	if err != nil {
		t.Fatal(err)
	}
	if est.Bytes != 1048576 {
		t.Errorf(`unexpected lag bytes: %d`, est.Bytes)
	}
	if est.Approximate {
		t.Error(`primary estimate is exact`)
	}
}

func TestPrimaryLagMissingFile(t *testing.T) {
	src := &fakeSource{logs: []loader.Row{
		{`Log_name`: `mysql-bin.000011`, `File_size`: `12345`},
	}}

	_, err := primaryLag(src, getTestLagReplica())
	if err == nil {
		t.Error(`expected error for relay file missing from source logs`)
	}
}

func TestFallbackLag(t *testing.T) {
	vars := loader.Sample{`max_binlog_size`: `1048576`}

	est, err := fallbackLag(getTestLagReplica(), vars)
	if err != nil {
		t.Fatal(err)
	}
	// one file of difference at the configured rotation size, minus what is
	// already executed
	if est.Bytes != 1048576-500000 {
		t.Errorf(`unexpected lag bytes: %d`, est.Bytes)
	}
	if !est.Approximate {
		t.Error(`fallback estimate is approximate`)
	}
}

// a fresh replica on the same file never reports negative lag
func TestFallbackLagClamped(t *testing.T) {
	rs, _ := loader.NewReplicaStatus(loader.Row{
		`Master_Host`:           `db1`,
		`Master_Log_File`:       `mysql-bin.000009`,
		`Relay_Master_Log_File`: `mysql-bin.000009`,
		`Read_Master_Log_Pos`:   `500000`,
		`Exec_Master_Log_Pos`:   `500000`,
		`Slave_SQL_Running`:     `Yes`,
		`Slave_IO_Running`:      `Yes`,
	})

	est, err := fallbackLag(rs, loader.Sample{`max_binlog_size`: `1048576`})
	if err != nil {
		t.Fatal(err)
	}
	if est.Bytes != 0 {
		t.Errorf(`unexpected lag bytes: %d`, est.Bytes)
	}
}

func TestFallbackLagMalformedName(t *testing.T) {
	rs, _ := loader.NewReplicaStatus(loader.Row{
		`Master_Host`:           `db1`,
		`Master_Log_File`:       `garbage`,
		`Relay_Master_Log_File`: `mysql-bin.000009`,
		`Read_Master_Log_Pos`:   `0`,
		`Exec_Master_Log_Pos`:   `0`,
		`Slave_SQL_Running`:     `Yes`,
		`Slave_IO_Running`:      `Yes`,
	})

	_, err := fallbackLag(rs, loader.Sample{`max_binlog_size`: `1048576`})
	if err == nil {
		t.Error(`expected malformed filename error`)
	}
}

// primary and fallback agree within one binlog-file-size unit on the same
// fixture
func TestLagAlgorithmsAgree(t *testing.T) {
	rs := getTestLagReplica()
	vars := loader.Sample{`max_binlog_size`: `1048576`}

	src := &fakeSource{logs: []loader.Row{
		{`Log_name`: `mysql-bin.000009`, `File_size`: `500000`},
		{`Log_name`: `mysql-bin.000010`, `File_size`: `1048576`},
	}}

	primary, err := primaryLag(src, rs)
	if err != nil {
		t.Fatal(err)
	}
	fallback, err := fallbackLag(rs, vars)
	if err != nil {
		t.Fatal(err)
	}

	diff := primary.Bytes - fallback.Bytes
	if diff < 0 {
		diff = -diff
	}
	if diff > 1048576 {
		t.Errorf(`estimates too far apart: primary %d fallback %d`, primary.Bytes, fallback.Bytes)
	}
}

// a source connect failure is not an error, just the fallback path
func TestEstimateLagSourceUnavailable(t *testing.T) {
	env := getTestEnv(nil, map[string]string{`max_binlog_size`: `1048576`}, nil)
	env.ConnectSource = func(host string, port int) (SourceSession, error) {
		return nil, fmt.Errorf("connection refused")
	}

	est, err := EstimateLag(env, getTestLagReplica(), env.Snapshot.Variables)
	if err != nil {
		t.Fatal(err)
	}
	if !est.Approximate {
		t.Error(`expected fallback estimate`)
	}
}

func TestEstimateLagPrimaryClosesSource(t *testing.T) {
	src := &fakeSource{logs: []loader.Row{
		{`Log_name`: `mysql-bin.000009`, `File_size`: `500000`},
		{`Log_name`: `mysql-bin.000010`, `File_size`: `1048576`},
	}}

	env := getTestEnv(nil, nil, nil)
	env.ConnectSource = func(host string, port int) (SourceSession, error) {
		return src, nil
	}

	est, err := EstimateLag(env, getTestLagReplica(), env.Snapshot.Variables)
	if err != nil {
		t.Fatal(err)
	}
	if est.Bytes != 1048576 {
		t.Errorf(`unexpected lag bytes: %d`, est.Bytes)
	}
	if !src.closed {
		t.Error(`source connection must be closed after the estimate`)
	}
}
