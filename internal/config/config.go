// Package config defines the driver configuration and its normalization.
package config

import "time"

// Config holds the driver configuration. The orchestrator-facing fields
// (instance name, platform, shell) describe the test instance being driven;
// everything else maps directly to provider and transport settings.
//
// A Config is treated as immutable once Normalize has run.
type Config struct {
	// Token is the Linode API token. Defaults from the LINODE_TOKEN
	// environment variable.
	Token string `mapstructure:"token" yaml:"token"`

	Username string `mapstructure:"username" yaml:"username"`

	// Password is the instance root password. Generated when unset.
	Password string `mapstructure:"password" yaml:"password"`

	// Label is an optional label part; the full instance label is always
	// derived (kitchen-{label|job}-{instance}-{timestamp}).
	Label string `mapstructure:"label" yaml:"label"`

	Hostname string `mapstructure:"hostname" yaml:"hostname"`

	// Image defaults to the platform name when unset.
	Image  string `mapstructure:"image" yaml:"image"`
	Region string `mapstructure:"region" yaml:"region"`
	Type   string `mapstructure:"type" yaml:"type"`
	Kernel string `mapstructure:"kernel" yaml:"kernel"`

	PrivateKeyPath string `mapstructure:"private_key_path" yaml:"private_key_path"`
	PublicKeyPath  string `mapstructure:"public_key_path" yaml:"public_key_path"`

	Sudo *bool `mapstructure:"sudo" yaml:"sudo"`

	// SSHTimeoutSeconds bounds each SSH connection attempt.
	SSHTimeoutSeconds int `mapstructure:"ssh_timeout" yaml:"ssh_timeout"`

	// APIRetries is the attempt budget for the provisioning loop.
	APIRetries int `mapstructure:"api_retries" yaml:"api_retries"`

	// InstanceName is the orchestrator's name for the test instance.
	InstanceName string `mapstructure:"instance_name" yaml:"instance_name"`

	// PlatformName is the orchestrator's target platform (e.g.
	// linode/ubuntu22.04); it doubles as the default image.
	PlatformName string `mapstructure:"platform_name" yaml:"platform_name"`

	// Shell is the target shell family. SSH bootstrap only runs for
	// POSIX-style shells.
	Shell string `mapstructure:"shell" yaml:"shell"`
}

// Defaults for the recognized options.
const (
	DefaultUsername   = "root"
	DefaultRegion     = "us-east"
	DefaultType       = "g6-nanode-1"
	DefaultKernel     = "linode/grub2"
	DefaultAPIRetries = 5
	DefaultSSHTimeout = 600
	DefaultShell      = "bourne"
)

// ApplyDefaults fills unset fields with their documented defaults.
func (c *Config) ApplyDefaults() {
	if c.Username == "" {
		c.Username = DefaultUsername
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.Type == "" {
		c.Type = DefaultType
	}
	if c.Kernel == "" {
		c.Kernel = DefaultKernel
	}
	if c.APIRetries == 0 {
		c.APIRetries = DefaultAPIRetries
	}
	if c.SSHTimeoutSeconds == 0 {
		c.SSHTimeoutSeconds = DefaultSSHTimeout
	}
	if c.Sudo == nil {
		sudo := true
		c.Sudo = &sudo
	}
	if c.InstanceName == "" {
		c.InstanceName = "default"
	}
	if c.Shell == "" {
		c.Shell = DefaultShell
	}
}

// SSHTimeout returns the SSH timeout as a duration.
func (c *Config) SSHTimeout() time.Duration {
	return time.Duration(c.SSHTimeoutSeconds) * time.Second
}

// PosixShell reports whether the target shell is POSIX-style and therefore
// eligible for the SSH bootstrap sequence.
func (c *Config) PosixShell() bool {
	switch c.Shell {
	case "bourne", "sh", "bash", "posix":
		return true
	}
	return false
}
