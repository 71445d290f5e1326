package model

// Receiver pushes twoots to one connected client.
//
// Deliver must not block: the core calls it while holding the publish lock.
// A non-nil error means the twoot was not accepted and the caller must not
// treat it as seen.
type Receiver interface {
	Deliver(twoot Twoot) error
}

// CredentialVerifier derives comparable password hashes.
type CredentialVerifier interface {
	NewSalt() ([]byte, error)
	Hash(password string, salt []byte) []byte
}
