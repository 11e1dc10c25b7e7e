// Package keygen generates credentials for freshly provisioned instances.
//
// The root password set at instance creation only lives until the SSH
// bootstrap locks password logins, but it still has to survive transit
// through the provider API, so it is drawn from crypto/rand.
package keygen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomPassword returns an n-character password drawn uniformly from the
// 62-character alphanumeric alphabet.
func RandomPassword(n int) (string, error) {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		buf[i] = passwordAlphabet[idx.Int64()]
	}
	return string(buf), nil
}
