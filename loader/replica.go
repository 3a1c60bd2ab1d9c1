package loader

import (
	"fmt"
	"strconv"
)

// ReplicaStatus is the typed subset of SHOW REPLICA STATUS the checks need.
// Field names follow the classic (pre-8.0.22) terminology since that is what
// the perfdata consumers expect.
type ReplicaStatus struct {
	// Source log file the SQL thread is currently applying
	RelayMasterLogFile string
	// Source log file the IO thread is currently reading
	MasterLogFile string

	ReadMasterLogPos int64
	ExecMasterLogPos int64

	// nil when the server reports NULL (IO thread stopped, or not yet known)
	SecondsBehind *int64

	SQLRunning bool
	IORunning  bool

	LastErrno int64
	LastError string

	MasterHost string
	MasterPort int

	raw Row
}

// Raw returns the underlying status row for fields not broken out above
func (rs *ReplicaStatus) Raw() Row {
	return rs.raw
}

// The 8.0.22+ SHOW REPLICA STATUS output renames every column; pick reads
// whichever naming generation the server produced.
func pick(row Row, names ...string) (string, bool) {
	for _, n := range names {
		if v, ok := row[n]; ok {
			return v, true
		}
	}
	return "", false
}

func pickInt(row Row, names ...string) (int64, error) {
	v, ok := pick(row, names...)
	if !ok {
		return 0, fmt.Errorf("replica status missing %s", names[0])
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("replica status %s not an integer: %v", names[0], err)
	}
	return i, nil
}

// NewReplicaStatus builds a typed record from one SHOW REPLICA STATUS row
func NewReplicaStatus(row Row) (*ReplicaStatus, error) {
	rs := &ReplicaStatus{raw: row}

	var ok bool
	rs.RelayMasterLogFile, ok = pick(row, `Relay_Master_Log_File`, `Relay_Source_Log_File`)
	if !ok {
		return nil, fmt.Errorf("replica status missing Relay_Master_Log_File")
	}
	rs.MasterLogFile, _ = pick(row, `Master_Log_File`, `Source_Log_File`)
	rs.MasterHost, _ = pick(row, `Master_Host`, `Source_Host`)
	rs.LastError, _ = pick(row, `Last_Error`)

	var err error
	if rs.ReadMasterLogPos, err = pickInt(row, `Read_Master_Log_Pos`, `Read_Source_Log_Pos`); err != nil {
		return nil, err
	}
	if rs.ExecMasterLogPos, err = pickInt(row, `Exec_Master_Log_Pos`, `Exec_Source_Log_Pos`); err != nil {
		return nil, err
	}

	if port, err := pickInt(row, `Master_Port`, `Source_Port`); err == nil {
		rs.MasterPort = int(port)
	}
	rs.LastErrno, _ = pickInt(row, `Last_Errno`)

	// NULL arrives as an absent key
	if sb, err := pickInt(row, `Seconds_Behind_Master`, `Seconds_Behind_Source`); err == nil {
		rs.SecondsBehind = &sb
	}

	sqlRunning, _ := pick(row, `Slave_SQL_Running`, `Replica_SQL_Running`)
	rs.SQLRunning = sqlRunning == `Yes`
	ioRunning, _ := pick(row, `Slave_IO_Running`, `Replica_IO_Running`)
	rs.IORunning = ioRunning == `Yes`

	return rs, nil
}
