package compute

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/linode/linodego"

	"github.com/testkitchen/kitchen-linode/internal/platform/linode"
	"github.com/testkitchen/kitchen-linode/internal/provisioning"
	"github.com/testkitchen/kitchen-linode/internal/util/naming"
	"github.com/testkitchen/kitchen-linode/internal/util/retry"
)

// ErrLabelSpaceExhausted indicates every uniqueness suffix for the label
// prefix is occupied by an existing instance. Terminal: retrying cannot free
// a suffix, the operator has to clean up stale instances.
var ErrLabelSpaceExhausted = errors.New("label space exhausted")

// uniqueLabel returns prefix plus a two-digit suffix no existing instance
// carries. Suffixes are tried in random order so concurrent lifecycles do not
// chase the same candidate; the existence check is best-effort, the create
// call remains the authority on uniqueness.
func uniqueLabel(ctx *provisioning.Context, prefix string) (string, error) {
	for _, n := range rand.Perm(naming.SuffixSpace) {
		candidate := fmt.Sprintf("%s%02d", prefix, n)

		existing, err := retry.DoValue(ctx, linode.TransientPolicy(ctx.Config.APIRetries, ctx.Log.Printf),
			func() ([]linodego.Instance, error) {
				return ctx.Cloud.ListInstancesByLabel(ctx, candidate)
			})
		if err != nil {
			return "", fmt.Errorf("failed to check label %q: %w", candidate, err)
		}
		if len(existing) == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: all %d suffixes for prefix %q are taken, clean up stale instances",
		ErrLabelSpaceExhausted, naming.SuffixSpace, prefix)
}
