package repository

// KVStore synchronous key-value substrate behind the persisted state slices
type KVStore interface {
	// Read returns the raw value for key; found is false when the key was never written.
	Read(key string) (value []byte, found bool, err error)
	Write(key string, value []byte) error
	// Dump returns every stored key, used by export tooling.
	Dump() (map[string][]byte, error)
}
