package sitedata

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// fingerprintContext keys the hash, so a site fingerprint can never collide
// with a checksum of some other content.
const fingerprintContext = "impractical.co/miniconf site fingerprint v1"

// Fingerprint returns a hex-encoded BLAKE3 digest of the site's JSON
// encoding. Two loads of the same data directory always produce the same
// fingerprint; any change to the data changes it.
func (s *Site) Fingerprint() (string, error) {
	hasher := blake3.NewDeriveKey(fingerprintContext)
	// encoding/json sorts map keys, so the encoding is canonical
	if err := json.NewEncoder(hasher).Encode(s); err != nil {
		return "", fmt.Errorf("encoding site: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
