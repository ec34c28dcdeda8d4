package repack

import "github.com/opencontainers/go-digest"

// Fingerprint returns the hex SHA-256 digest of b. It is pure and
// deterministic, and defined for empty input.
func Fingerprint(b []byte) string {
	return digest.SHA256.FromBytes(b).Encoded()
}
