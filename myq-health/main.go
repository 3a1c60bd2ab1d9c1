package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gookit/slog"

	"github.com/jayjanssen/myq-health/checker"
	"github.com/jayjanssen/myq-health/clientconf"
	"github.com/jayjanssen/myq-health/dbconn"
	"github.com/jayjanssen/myq-health/loader"
)

// Current Version (passed in on build)
var build_version string
var build_timestamp string

func main() {
	// the report severity is the exit code, and deferred session cleanup
	// still has to run on every path
	os.Exit(run())
}

func run() int {
	// Parse arguments
	version := flag.Bool("version", false, "print the version")
	verbose := flag.Bool("verbose", false, "debug logging to stderr")
	profilePath := flag.String("profile", "", "yaml check profile overriding the built-in defaults")
	clientconf.SetMySQLFlags()

	// Define standard usage output
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "myq-health %s (%s)\n\n", build_version, build_timestamp)

		fmt.Fprintln(os.Stderr, "Usage:\n  myq-health [flags]")
		fmt.Fprintln(os.Stderr, "Description:\n  nagios/icinga health check for MySQL servers")

		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("myq-health %s (%s)\n", build_version, build_timestamp)
		return checker.OK.ExitCode()
	}

	// All diagnostics go to stderr, stdout is only the plugin report
	slog.SetLogLevel(slog.WarnLevel)
	if *verbose {
		slog.SetLogLevel(slog.DebugLevel)
	}
	slog.Configure(func(l *slog.SugaredLogger) {
		l.Output = os.Stderr
	})

	// Load the check profile
	var profile *checker.Profile
	var err error
	if *profilePath != "" {
		profile, err = checker.LoadProfile(*profilePath)
	} else {
		profile, err = checker.DefaultProfile()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading check profile: %s\n", err)
		return checker.Unknown.ExitCode()
	}

	// Resolve connection settings from .my.cnf files and flags
	connConfig, err := clientconf.GenerateConfig()
	if err != nil {
		// cnf parse problems are worth mentioning but connecting may still work
		slog.Warnf("client config: %v", err)
	}

	// The primary connection lives for the whole run
	sess, err := dbconn.Connect(connConfig)
	if err != nil {
		return report(checker.Final{
			Severity: checker.ConnectSeverity(err),
			Primary:  fmt.Sprintf("Database Connection failed: %v", err),
		})
	}
	defer sess.Close()

	// Capture the snapshot once; checks read from it instead of re-querying
	snap, err := loader.Load(sess)
	if err != nil {
		return report(checker.Final{
			Severity: checker.Critical,
			Primary:  fmt.Sprintf("Status collection failed: %v", err),
		})
	}

	env := &checker.Env{
		Snapshot: snap,
		Session:  sess,
		ConnectSource: func(host string, port int) (checker.SourceSession, error) {
			// same credentials, substituted endpoint
			sourceConfig := connConfig.Clone()
			sourceConfig.Net = `tcp`
			sourceConfig.Addr = fmt.Sprintf("%s:%d", host, port)
			return dbconn.Connect(sourceConfig)
		},
	}

	r := checker.NewReport()
	checker.RunChecks(env, checker.Suite(profile), r)

	return report(r.Finalize())
}

// report prints the plugin output and returns the exit code
func report(f checker.Final) int {
	for _, line := range checker.Render(f) {
		fmt.Println(line)
	}
	return f.Severity.ExitCode()
}
