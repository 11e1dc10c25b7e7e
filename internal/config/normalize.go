package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/testkitchen/kitchen-linode/internal/util/keygen"
	"github.com/testkitchen/kitchen-linode/internal/util/naming"
)

// timeNow is swapped out in tests.
var timeNow = time.Now

// conventionalKeyNames are tried in order when no private key is configured.
var conventionalKeyNames = []string{"id_rsa", "id_dsa", "id_ecdsa", "id_ed25519"}

const generatedPasswordLength = 15

// Normalize derives the label, hostname, password and key paths from the
// partial user configuration. It fails before any provider call can be made
// when the token is missing or no key path is derivable. After a successful
// Normalize the config is complete and must not be mutated again.
func (c *Config) Normalize() error {
	if c.Token == "" {
		return fmt.Errorf("no Linode API token: set token in the driver config or the LINODE_TOKEN environment variable")
	}

	if c.Image == "" {
		c.Image = c.PlatformName
	}

	unix := timeNow().Unix()
	if c.Label != "" {
		c.Label = naming.Label(c.Label, c.InstanceName, unix)
	} else {
		c.Label = naming.Label(jobName(), c.InstanceName, unix)
	}

	if c.Hostname == "" {
		if c.Label != "" {
			c.Hostname = c.Label
		} else {
			c.Hostname = c.InstanceName
		}
	}

	if c.Password == "" {
		password, err := keygen.RandomPassword(generatedPasswordLength)
		if err != nil {
			return err
		}
		c.Password = password
	}

	if err := c.normalizeKeyPaths(); err != nil {
		return err
	}

	return nil
}

func (c *Config) normalizeKeyPaths() error {
	if c.PrivateKeyPath == "" {
		c.PrivateKeyPath = firstConventionalKey()
		if c.PrivateKeyPath == "" {
			return fmt.Errorf("no SSH private key: set private_key_path or create one of %s under ~/.ssh",
				strings.Join(conventionalKeyNames, ", "))
		}
	}

	private, err := expandPath(c.PrivateKeyPath)
	if err != nil {
		return fmt.Errorf("invalid private_key_path: %w", err)
	}
	c.PrivateKeyPath = private

	if c.PublicKeyPath == "" {
		c.PublicKeyPath = c.PrivateKeyPath + ".pub"
	} else {
		public, err := expandPath(c.PublicKeyPath)
		if err != nil {
			return fmt.Errorf("invalid public_key_path: %w", err)
		}
		c.PublicKeyPath = public
	}

	return nil
}

// jobName identifies the CI job driving this instance: the CI job name, then
// the workspace, then a literal fallback.
func jobName() string {
	if job := os.Getenv("JOB_NAME"); job != "" {
		return job
	}
	if ws := os.Getenv("WORKSPACE"); ws != "" {
		return filepath.Base(ws)
	}
	return "job"
}

// firstConventionalKey returns the first existing conventional private key,
// or empty when none exists.
func firstConventionalKey() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	for _, name := range conventionalKeyNames {
		path := filepath.Join(home, ".ssh", name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// expandPath resolves a leading ~ and makes the path absolute.
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
