package provisioning

// State is the instance state record owned by the calling orchestrator. It is
// persisted by the caller between process runs and passed back in on every
// invocation; the driver only ever reads and mutates it in place.
//
// A non-zero InstanceID is the sole idempotency signal: once it is written, a
// repeated create must not provision a second instance.
type State struct {
	InstanceID    int    `mapstructure:"instance_id" yaml:"instance_id,omitempty"`
	InstanceLabel string `mapstructure:"instance_label" yaml:"instance_label,omitempty"`
	// Hostname is the address the orchestrator's transport connects to (the
	// instance's first public IPv4 address).
	Hostname   string `mapstructure:"hostname" yaml:"hostname,omitempty"`
	SSHKeyPath string `mapstructure:"ssh_key_path" yaml:"ssh_key_path,omitempty"`
}

// Provisioned reports whether the record points at a provisioned instance.
func (s *State) Provisioned() bool {
	return s.InstanceID != 0
}

// Clear removes all four instance fields. Called after a successful or
// already-gone destroy.
func (s *State) Clear() {
	s.InstanceID = 0
	s.InstanceLabel = ""
	s.Hostname = ""
	s.SSHKeyPath = ""
}
