package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the hex SHA-256 digest of data. Molecule inputs and structures
// are addressed by it, and FileCache derives entry paths from it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a "kind:digest" key. The digest covers the JSON encoding of
// parts, so reordering or retyping a part changes every key of that kind.
func hashKey(kind string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		data = []byte(fmt.Sprint(parts...))
	}
	return kind + ":" + Hash(data)
}
