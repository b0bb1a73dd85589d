package domain

import "context"

// FileStore abstracts raw file byte storage for uploaded avatars.
// Keys are opaque names chosen by the caller.
type FileStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
