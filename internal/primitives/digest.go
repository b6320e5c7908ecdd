package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// Digest returns a short deterministic fingerprint of the multiplication
// table. Two definitions with the same table share a digest regardless of
// their names, which lets stores detect duplicate files.
func Digest(d *Definition) string {
	data, err := json.Marshal(d.MultTable)
	if err != nil {
		return "invalid"
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}
