package checker

import (
	"errors"
	"net"

	"github.com/go-sql-driver/mysql"
)

// mysql error numbers for the access-denied family
const (
	erDBAccessDenied    = 1044
	erAccessDenied      = 1045
	erTableAccessDenied = 1142
	erSpecificAccess    = 1227
	erAccessDeniedNoPw  = 1698
)

func isAccessDenied(err error) bool {
	var myerr *mysql.MySQLError
	if !errors.As(err, &myerr) {
		return false
	}
	switch myerr.Number {
	case erDBAccessDenied, erAccessDenied, erTableAccessDenied,
		erSpecificAccess, erAccessDeniedNoPw:
		return true
	}
	return false
}

// ConnectSeverity maps an initial connect failure to the exit severity:
// denied access means the check account is misconfigured (Warning), an
// unresolvable host means we can't even say which server we failed to reach
// (Unknown), anything else is Critical.
func ConnectSeverity(err error) Severity {
	if isAccessDenied(err) {
		return Warning
	}

	var dnserr *net.DNSError
	if errors.As(err, &dnserr) {
		return Unknown
	}

	return Critical
}
