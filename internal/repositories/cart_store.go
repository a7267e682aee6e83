package repositories

// CartStore defines the interface for the durable per-key cart snapshot
// storage. Keys follow the "cart_<userID>" format; values are JSON-encoded
// arrays of cart items. No two users ever share a key.
type CartStore interface {
	// Load returns the stored value for key. The second return value is
	// false when no snapshot exists for that key.
	Load(key string) ([]byte, bool, error)
	Save(key string, value []byte) error
	// Delete removes the snapshot for key; deleting a missing key is a no-op.
	Delete(key string) error
}
