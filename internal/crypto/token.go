package crypto

import "github.com/google/uuid"

// NewSessionToken returns an opaque random bearer token. The token carries
// no claims; it is only meaningful as a key in the session store.
func NewSessionToken() string {
	return uuid.NewString()
}
