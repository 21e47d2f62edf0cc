// Package boltdb implements the task and user gateways on an embedded bbolt
// file. Each entity gets its own bucket keyed by the big-endian id; ids come
// from the bucket sequence, so a deleted id is never handed out again.
package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	tasksBucket = []byte("tasks")
	usersBucket = []byte("users")
)

// DB wraps the bbolt handle shared by both repositories.
type DB struct {
	db *bolt.DB
}

// Open initializes the bbolt file and ensures the entity buckets exist.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{tasksBucket, usersBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db: db}, nil
}

// Ping reports whether the file is still open and readable.
func (d *DB) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d == nil || d.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return d.db.View(func(tx *bolt.Tx) error { return nil })
}

// Close closes the bbolt file.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Path returns the backing file location.
func (d *DB) Path() string {
	if d == nil || d.db == nil {
		return ""
	}
	return d.db.Path()
}

func itob(id int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

// load decodes the value stored under id into dst; found is false when the
// key is absent.
func load(b *bolt.Bucket, id int64, dst interface{}) (bool, error) {
	raw := b.Get(itob(id))
	if raw == nil {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func store(b *bolt.Bucket, id int64, src interface{}) error {
	payload, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return b.Put(itob(id), payload)
}

// nextID reserves the next id of the bucket sequence.
func nextID(b *bolt.Bucket) (int64, error) {
	seq, err := b.NextSequence()
	if err != nil {
		return 0, err
	}
	return int64(seq), nil
}
