// Package naming derives Linode labels for kitchen-managed instances.
//
// Labels follow the pattern kitchen-{job}-{instance}-{timestamp}, truncated
// to 30 characters. Linode caps labels at 32; the two reserved characters
// leave room for the collision-avoidance suffix appended at create time.
package naming

import (
	"strconv"
	"strings"
)

// MaxBaseLength is the longest base label the driver generates. Two
// characters of the provider's 32-character limit are reserved for the
// two-digit uniqueness suffix.
const MaxBaseLength = 30

// SuffixSpace is the number of two-digit uniqueness suffixes (00-99).
const SuffixSpace = 100

// Sanitize replaces characters Linode rejects in labels. Job names from CI
// systems routinely contain spaces and slashes.
func Sanitize(s string) string {
	r := strings.NewReplacer(" ", "_", "/", "_")
	return r.Replace(s)
}

// Label composes the base instance label from a job identifier, the
// orchestrator's instance name and a unix timestamp, truncated to
// MaxBaseLength.
func Label(job, instance string, unix int64) string {
	label := "kitchen-" + Sanitize(job) + "-" + Sanitize(instance) + "-" + strconv.FormatInt(unix, 10)
	if len(label) > MaxBaseLength {
		label = label[:MaxBaseLength]
	}
	return label
}
