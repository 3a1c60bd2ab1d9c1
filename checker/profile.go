package checker

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed checks_defaults.yaml
var defaultProfileYaml string

// One typed config record per check, assembled before the engine runs.
// Comparison directions are baked into the checks, not configurable here.

type ThreadsConfig struct {
	Enabled    bool `yaml:"enabled"`
	Thresholds `yaml:",inline"`
}

type ConnectionsConfig struct {
	Enabled    bool `yaml:"enabled"`
	Thresholds `yaml:",inline"`
}

type SlaveHostsConfig struct {
	Enabled    bool `yaml:"enabled"`
	Thresholds `yaml:",inline"`
}

type UsersConfig struct {
	Enabled    bool `yaml:"enabled"`
	Thresholds `yaml:",inline"`

	// Count only this user's sessions (the `system user` pseudo-account is
	// always excluded)
	Username string `yaml:"username"`

	// Critical escalation is opt-in: unless this is `critical`, a critical
	// breach only reports Warning
	AlertLevel string `yaml:"alert-level"`
}

type ReplicationConfig struct {
	Enabled bool       `yaml:"enabled"`
	Seconds Thresholds `yaml:"seconds"`
	Bytes   Thresholds `yaml:"bytes"`

	// Suppress the read-only warning for intentionally writable replicas
	AllowWritable bool `yaml:"allow-writable"`
}

type LockConfig struct {
	Enabled    bool `yaml:"enabled"`
	Thresholds `yaml:",inline"`

	// Narrow the audit to one schema; empty scans all non-system schemas
	Schema string `yaml:"schema"`
	Table  string `yaml:"table"`
}

type HeartbeatConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schema   string `yaml:"schema"`
	Table    string `yaml:"table"`
	IDColumn string `yaml:"id-column"`
	TSColumn string `yaml:"ts-column"`
}

type DefinerConfig struct {
	Enabled bool `yaml:"enabled"`

	// Which object kinds to audit: views, routines, triggers, events
	Objects []string `yaml:"objects"`
}

// Profile holds the full engine configuration
type Profile struct {
	Threads     ThreadsConfig     `yaml:"threads"`
	Connections ConnectionsConfig `yaml:"connections"`
	SlaveHosts  SlaveHostsConfig  `yaml:"slavehosts"`
	Users       UsersConfig       `yaml:"users"`
	Replication ReplicationConfig `yaml:"replication"`
	Lock        LockConfig        `yaml:"lock"`
	Heartbeat   HeartbeatConfig   `yaml:"heartbeat"`
	Definer     DefinerConfig     `yaml:"definer"`
}

// DefaultProfile parses the embedded defaults
func DefaultProfile() (*Profile, error) {
	p := &Profile{}
	if err := yaml.Unmarshal([]byte(defaultProfileYaml), p); err != nil {
		return nil, fmt.Errorf("default profile: %v", err)
	}
	return p, nil
}

// LoadProfile overlays a profile file onto the defaults
func LoadProfile(path string) (*Profile, error) {
	p, err := DefaultProfile()
	if err != nil {
		return nil, err
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(contents, p); err != nil {
		return nil, fmt.Errorf("profile %s: %v", path, err)
	}
	return p, nil
}
