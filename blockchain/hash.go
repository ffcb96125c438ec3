package blockchain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// DigestBlock creates a SHA-256 hash of a block's canonical serialization.
//
// The block is serialized as a JSON object keyed by field name; encoding/json
// emits map keys in sorted order, so two semantically identical blocks always
// hash identically no matter how they were constructed. The same field names
// are used on the wire, so the hash input and the external representation
// cannot drift apart.
func DigestBlock(block Block) string {
	canonical := map[string]interface{}{
		"index":         block.Index,
		"timestamp":     block.Timestamp,
		"transactions":  block.Transactions,
		"proof":         block.Proof,
		"previous_hash": block.PreviousHash,
	}

	// Marshaling a map of JSON-encodable values cannot fail.
	data, _ := json.Marshal(canonical)

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
