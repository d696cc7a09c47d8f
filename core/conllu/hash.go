package conllu

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the BLAKE3 hash of the serialised sentence. Source
// position does not contribute, so a sentence moved within a file keeps its
// fingerprint.
func (s *Sentence) Fingerprint() string {
	sum := blake3.Sum256([]byte(s.String()))
	return hex.EncodeToString(sum[:])
}

// HashDocument computes the SHA-256 hash of the serialised document.
func HashDocument(d *Document) string {
	sum := sha256.Sum256([]byte(d.String()))
	return hex.EncodeToString(sum[:])
}
