package core

// Frame is a raw JSON payload headed to a client.
type Frame []byte

// SessionID identifies one live connection. An identity may hold several
// sessions at once (multi-device); sessions are never resumed after a close.
type SessionID string

// SignalConnection abstracts the messaging transport of one session.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// PasswordHasher is the credential collaborator. The hub never sees plain
// hashing internals, only opaque encoded hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}
