package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/matchbook/matchbook/internal/domain"
)

// fileStore keeps avatar bytes as BLOBs next to the rest of the data.
type fileStore struct {
	db *sql.DB
}

func (s *fileStore) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO file_blobs (storage_key, data, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (storage_key) DO UPDATE SET data = excluded.data`,
		key, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save file blob: %w", err)
	}
	return nil
}

func (s *fileStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM file_blobs WHERE storage_key = ?", key,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get file blob: %w", err)
	}
	return data, nil
}

// Delete is a no-op for unknown keys.
func (s *fileStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM file_blobs WHERE storage_key = ?", key); err != nil {
		return fmt.Errorf("delete file blob: %w", err)
	}
	return nil
}
