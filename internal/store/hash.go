package store

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// DomainDocument prefixes document content hashes.
const DomainDocument = "spanfilter/document/v1"

// contentHash computes SHA256(domain + 0x00 + data) as hex.
// The null byte separator prevents domain/data boundary ambiguity.
func contentHash(data []byte) string {
	h := sha256.New()
	h.Write([]byte(DomainDocument))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// NewID returns a fresh UUIDv7 document id. UUIDv7 ids sort by creation
// time, so id order roughly follows import order.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
