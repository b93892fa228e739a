package core

// BlobStore persists attachment payloads outside the message store.
// Implementations should be thread-safe. Blob failures are best-effort by
// contract: callers log them and never roll back message-store mutations.
type BlobStore interface {
	Put(key string, data []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
	ClearAll() error
}

// BlobKey derives the storage key for a file message's attachment.
func BlobKey(messageID string) string { return "file_" + messageID }
