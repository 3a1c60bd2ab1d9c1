package checker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gookit/slog"

	"github.com/jayjanssen/myq-health/loader"
)

// LagEstimate is the unconsumed replication byte lag. Approximate is set
// when the fallback algorithm produced it.
type LagEstimate struct {
	Bytes       int64
	Approximate bool
}

// EstimateLag computes the byte lag between a replica and its source.
//
// The primary algorithm opens an independent connection to the reported
// source and does exact binary-log file accounting. If that connection can't
// be established (auth failure, host unreachable, source offline) this is
// not an error: the estimator silently degrades to the fallback, which
// extrapolates from log file numbering and the replica's max_binlog_size.
// Any other failure (malformed filename, missing fields) is returned for the
// replication check to surface.
func EstimateLag(env *Env, rs *loader.ReplicaStatus, vars loader.Sample) (LagEstimate, error) {
	if env.ConnectSource != nil && rs.MasterHost != "" {
		src, err := env.ConnectSource(rs.MasterHost, rs.MasterPort)
		if err == nil {
			defer src.Close()
			return primaryLag(src, rs)
		}
		slog.Debugf("source %s:%d unavailable, using fallback lag estimate: %v",
			rs.MasterHost, rs.MasterPort, err)
	}
	return fallbackLag(rs, vars)
}

// Exact accounting against the source's own binary log list: sum the sizes
// of every log from the relay-applied file onward, then subtract what the
// replica has already executed of it.
func primaryLag(src SourceSession, rs *loader.ReplicaStatus) (LagEstimate, error) {
	logs, err := src.QueryAll(`SHOW BINARY LOGS`)
	if err != nil {
		return LagEstimate{}, fmt.Errorf("source binary logs: %v", err)
	}

	var total int64
	seen := false
	for _, row := range logs {
		if row[`Log_name`] == rs.RelayMasterLogFile {
			seen = true
		}
		if !seen {
			continue
		}
		size, err := strconv.ParseInt(row[`File_size`], 10, 64)
		if err != nil {
			return LagEstimate{}, fmt.Errorf("binary log %s size: %v", row[`Log_name`], err)
		}
		total += size
	}

	if !seen {
		return LagEstimate{}, fmt.Errorf("relay log file %s not found in source binary logs",
			rs.RelayMasterLogFile)
	}

	return LagEstimate{Bytes: total - rs.ExecMasterLogPos}, nil
}

// Extrapolate from the log file numbering the replica itself reports. This
// assumes uniform binlog rotation at the replica's max_binlog_size, which
// may not match the source's actual rotation size: an approximation.
func fallbackLag(rs *loader.ReplicaStatus, vars loader.Sample) (LagEstimate, error) {
	readNum, err := logFileNumber(rs.MasterLogFile)
	if err != nil {
		return LagEstimate{}, err
	}
	applyNum, err := logFileNumber(rs.RelayMasterLogFile)
	if err != nil {
		return LagEstimate{}, err
	}

	maxSize, err := vars.GetInt(`max_binlog_size`)
	if err != nil {
		return LagEstimate{}, err
	}

	lag := (readNum-applyNum)*maxSize - rs.ExecMasterLogPos
	if lag < 0 {
		lag = 0
	}
	return LagEstimate{Bytes: lag, Approximate: true}, nil
}

// Binary logs are named <basename>.<number>; extract the number
func logFileNumber(name string) (int64, error) {
	dot := strings.LastIndex(name, `.`)
	if dot < 0 || dot == len(name)-1 {
		return 0, fmt.Errorf("malformed log file name: %s", name)
	}
	num, err := strconv.ParseInt(name[dot+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed log file name: %s", name)
	}
	return num, nil
}
