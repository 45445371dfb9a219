package storage

import (
	"os"
	"path/filepath"
	"time"

	"github.com/draftdesk/internal/models"
	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"
)

// Logical buckets. Actual bucket names carry the configured key prefix.
const (
	BucketArticles = "articles"
	BucketDraft    = "draft"
)

// Store is the bbolt-backed key-value store holding the article
// collection and the draft slot. One process owns the file at a time.
type Store struct {
	db     *bolt.DB
	prefix string
	log    zerolog.Logger
}

// Open opens (or creates) the store file and ensures all buckets exist
func Open(path, prefix string, log zerolog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &models.StorageError{Op: "open", Err: err}
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, &models.StorageError{Op: "open", Err: err}
	}

	s := &Store{
		db:     db,
		prefix: prefix,
		log:    log.With().Str("component", "storage").Logger(),
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{BucketArticles, BucketDraft} {
			if _, err := tx.CreateBucketIfNotExists(s.bucketName(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, &models.StorageError{Op: "init", Err: err}
	}

	s.log.Debug().Str("path", path).Str("prefix", prefix).Msg("Store opened")
	return s, nil
}

// Close closes the underlying store file
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) bucketName(bucket string) []byte {
	return []byte(s.prefix + bucket)
}

// Get returns the value for key, or nil when the key is absent
func (s *Store) Get(bucket, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		// values are only valid inside the transaction, copy out
		if v := tx.Bucket(s.bucketName(bucket)).Get([]byte(key)); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, &models.StorageError{Op: "get", Err: err}
	}
	return out, nil
}

// Put writes the value under key
func (s *Store) Put(bucket, key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucketName(bucket)).Put([]byte(key), value)
	})
	if err != nil {
		return &models.StorageError{Op: "put", Err: err}
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(bucket, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucketName(bucket)).Delete([]byte(key))
	})
	if err != nil {
		return &models.StorageError{Op: "delete", Err: err}
	}
	return nil
}

// ForEach visits every key/value pair in the bucket
func (s *Store) ForEach(bucket string, fn func(key, value []byte) error) error {
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucketName(bucket)).ForEach(fn)
	})
	if err != nil {
		return &models.StorageError{Op: "scan", Err: err}
	}
	return nil
}

// Count returns the number of keys in the bucket
func (s *Store) Count(bucket string) (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(s.bucketName(bucket)).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, &models.StorageError{Op: "count", Err: err}
	}
	return n, nil
}

// ReplaceAll atomically swaps the entire bucket contents for items.
// Either every item lands or the previous contents survive untouched.
func (s *Store) ReplaceAll(bucket string, items map[string][]byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		name := s.bucketName(bucket)
		if err := tx.DeleteBucket(name); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		b, err := tx.CreateBucket(name)
		if err != nil {
			return err
		}
		for k, v := range items {
			if err := b.Put([]byte(k), v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &models.StorageError{Op: "replace", Err: err}
	}
	return nil
}
