package checker

// Severity of a check result, ordered worst-last. The values double as the
// nagios plugin exit codes.
type Severity int

const (
	OK Severity = iota
	Warning
	Critical
	Unknown
)

func (s Severity) String() string {
	switch s {
	case OK:
		return `ok`
	case Warning:
		return `warning`
	case Critical:
		return `critical`
	default:
		return `unknown`
	}
}

// Level is the capitalized form used on output lines (`Ok`, `Warning`, ...)
func (s Severity) Level() string {
	switch s {
	case OK:
		return `Ok`
	case Warning:
		return `Warning`
	case Critical:
		return `Critical`
	default:
		return `Unknown`
	}
}

// ExitCode for the monitoring supervisor
func (s Severity) ExitCode() int {
	return int(s)
}
