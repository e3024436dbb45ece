package redis

const (
	// KeyPrefixFavorites is the prefix for favorites blob keys
	KeyPrefixFavorites = "favtube:favorites:"
	// KeySuffixUpdatedAt marks the companion key holding the last save time
	KeySuffixUpdatedAt = ":updated_at"
)

// BlobKey returns the Redis key holding the serialized collection
func BlobKey(storageKey string) string {
	return KeyPrefixFavorites + storageKey
}

// UpdatedAtKey returns the Redis key holding the last save time (unix ms)
func UpdatedAtKey(storageKey string) string {
	return BlobKey(storageKey) + KeySuffixUpdatedAt
}
