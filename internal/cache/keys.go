package cache

import (
	"crypto/sha256"
	"fmt"
)

// ExtractionKey caches feature records extracted from a job description,
// keyed by provider and the description's content hash.
func ExtractionKey(provider, description string) string {
	hash := sha256.Sum256([]byte(description))
	return fmt.Sprintf("extract:%s:%x", provider, hash)
}

func RateLimitKey(keyPrefix string) string {
	return fmt.Sprintf("ratelimit:%s", keyPrefix)
}
