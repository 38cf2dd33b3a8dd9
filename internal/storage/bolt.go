package storage

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	boltBucket = "ledger"
	boltKey    = "document"
)

// BoltBackend keeps the document under a single key in a bbolt database.
// Each write is one bbolt transaction, so replacement is atomic.
type BoltBackend struct {
	db   *bolt.DB
	path string
}

// OpenBolt opens (or creates) the database at path and its bucket.
func OpenBolt(path string) (*BoltBackend, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, &PersistenceError{Op: "open", Location: path, Err: err}
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(boltBucket)); err != nil {
			return fmt.Errorf("creating bucket %s: %w", boltBucket, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, &PersistenceError{Op: "open", Location: path, Err: err}
	}
	return &BoltBackend{db: db, path: path}, nil
}

// Location returns the database path.
func (b *BoltBackend) Location() string { return b.path }

// Read returns a copy of the stored document, or ErrNoDocument.
func (b *BoltBackend) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(boltBucket)).Get([]byte(boltKey))
		if v == nil {
			return ErrNoDocument
		}
		// Values are only valid for the life of the transaction.
		data = append([]byte(nil), v...)
		return nil
	})
	return data, err
}

// Write stores data as the current document.
func (b *BoltBackend) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Put([]byte(boltKey), data)
	})
}

// Close closes the database.
func (b *BoltBackend) Close() error {
	return b.db.Close()
}
