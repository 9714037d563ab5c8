// Package storage is the durable client-side state of the application
// (the Go stand-in for the browser's localStorage): one Bolt file, one
// bucket, a handful of well-known keys.
package storage

import (
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

const bucketName = "ClientState"

// Keys the rest of the client persists under.
const (
	KeyToken = "token"
	KeyUser  = "user"
	KeyCart  = "cart"
)

type Store struct {
	db *bolt.DB
}

// Open creates or opens the state file and makes sure the bucket exists.
// The Timeout option keeps a second process from hanging forever on the
// file lock.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open state file %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create state bucket: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the stored value and whether the key was present at all.
// An absent key is not an error.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketName)).Get([]byte(key))
		if v == nil {
			return nil
		}
		// Bolt values are only valid inside the transaction.
		value = make([]byte, len(v))
		copy(value, v)
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, value != nil, nil
}

func (s *Store) Put(key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Delete removes the entry entirely. Deleting an absent key succeeds.
func (s *Store) Delete(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}
