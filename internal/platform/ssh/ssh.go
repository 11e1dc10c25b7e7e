// Package ssh bootstraps SSH trust on freshly provisioned instances.
//
// The driver connects with the root password set at creation, installs the
// orchestrator's public key and then locks password logins, leaving only
// key-based access for the converge and verify phases that follow.
//
// Host key verification is disabled: instances are ephemeral and their host
// keys are generated moments before the first connection.
package ssh

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/ssh"
)

const (
	defaultPort    = 22
	defaultTimeout = 600 * time.Second
	maxAttempts    = 10
	maxRetryDelay  = 60 * time.Second
)

// Config holds the connection parameters for the bootstrap session.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string

	// Timeout bounds the TCP/handshake phase of each connection attempt.
	// If zero, defaultTimeout is used.
	Timeout time.Duration
}

// runner executes commands over an established connection.
type runner interface {
	Run(command string) error
	Close() error
}

// Bootstrapper connects to a new instance and runs the bootstrap command
// sequence, reconnecting with capped exponential backoff on any failure.
type Bootstrapper struct {
	config *Config

	// connect and sleep are replaced in tests.
	connect func() (runner, error)
	sleep   func(d time.Duration)
	logf    func(format string, args ...any)
}

// NewBootstrapper creates a Bootstrapper for the given connection parameters.
func NewBootstrapper(cfg *Config, logf func(format string, args ...any)) (*Bootstrapper, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("config host cannot be empty")
	}
	if cfg.User == "" {
		return nil, fmt.Errorf("config user cannot be empty")
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("config password cannot be empty")
	}

	configCopy := *cfg
	if configCopy.Port == 0 {
		configCopy.Port = defaultPort
	}
	if configCopy.Timeout == 0 {
		configCopy.Timeout = defaultTimeout
	}

	b := &Bootstrapper{
		config: &configCopy,
		sleep:  time.Sleep,
		logf:   logf,
	}
	b.connect = b.dial
	return b, nil
}

// Bootstrap runs the command sequence, retrying the whole connect-and-run
// cycle up to 10 times with capped exponential backoff. A failed command does
// not resume mid-sequence: every command is idempotent, so the retry replays
// the sequence from the start over a fresh connection.
func (b *Bootstrapper) Bootstrap(ctx context.Context, commands []string) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := b.runOnce(commands)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == maxAttempts {
			break
		}
		if ctx.Err() != nil {
			return fmt.Errorf("bootstrap aborted: %w", ctx.Err())
		}

		delay := retryDelay(attempt)
		if b.logf != nil {
			b.logf("[SSH] Bootstrap attempt %d failed: %v. Retrying in %s...", attempt, err, delay)
		}
		b.sleep(delay)
	}
	return fmt.Errorf("SSH bootstrap of %s failed after %d attempts: %w", b.config.Host, maxAttempts, lastErr)
}

// retryDelay is min(2^(attempt-1), 60) seconds.
func retryDelay(attempt int) time.Duration {
	d := time.Duration(1<<uint(attempt-1)) * time.Second
	if d > maxRetryDelay {
		d = maxRetryDelay
	}
	return d
}

func (b *Bootstrapper) runOnce(commands []string) error {
	conn, err := b.connect()
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", b.config.Host, err)
	}
	defer func() { _ = conn.Close() }()

	for _, cmd := range commands {
		if err := conn.Run(cmd); err != nil {
			return err
		}
	}
	return nil
}

// dial establishes the SSH connection using password authentication.
func (b *Bootstrapper) dial() (runner, error) {
	config := &ssh.ClientConfig{
		User: b.config.User,
		Auth: []ssh.AuthMethod{
			ssh.Password(b.config.Password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // Ephemeral test instances
		Timeout:         b.config.Timeout,
	}

	addr := fmt.Sprintf("%s:%d", b.config.Host, b.config.Port)
	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, err
	}
	return &sshRunner{client: client, host: b.config.Host}, nil
}

// sshRunner runs each command in its own session on a shared connection.
type sshRunner struct {
	client *ssh.Client
	host   string
}

func (r *sshRunner) Run(command string) error {
	session, err := r.client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create SSH session on %s: %w", r.host, err)
	}
	defer func() { _ = session.Close() }()

	output, err := session.CombinedOutput(command)
	if err != nil {
		return fmt.Errorf("command failed on %s: %w\nCommand: %s\nOutput: %s",
			r.host, err, command, string(output))
	}
	return nil
}

func (r *sshRunner) Close() error {
	return r.client.Close()
}
