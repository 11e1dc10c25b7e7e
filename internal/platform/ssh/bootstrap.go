package ssh

import (
	"fmt"
	"strings"
)

// BootstrapCommands returns the fixed command sequence run on a new instance.
// Order matters; each command is safe to re-run if a later one fails and the
// whole sequence is replayed.
func BootstrapCommands(hostname, user, publicKey string) []string {
	short := shortHostname(hostname)
	key := strings.TrimSpace(publicKey)

	return []string{
		fmt.Sprintf("echo '127.0.0.1 %s %s localhost' >> /etc/hosts", hostname, short),
		fmt.Sprintf("echo '::1 %s %s localhost' >> /etc/hosts", hostname, short),
		fmt.Sprintf("hostname %s", hostname),
		"mkdir -p ~/.ssh",
		fmt.Sprintf("echo '%s' >> ~/.ssh/authorized_keys", key),
		fmt.Sprintf("passwd -l %s", user),
	}
}

// shortHostname is the first label of a fully qualified name.
func shortHostname(hostname string) string {
	if i := strings.IndexByte(hostname, '.'); i > 0 {
		return hostname[:i]
	}
	return hostname
}
