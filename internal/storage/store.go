package storage

import (
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/zeebo/blake3"
)

var (
	// ErrNotFound is returned by Read when the key has no value.
	ErrNotFound = errors.New("key not found")
	// ErrStorageRead covers query and decode failures.
	ErrStorageRead = errors.New("storage read failure")
	// ErrStorageWrite covers encode and write failures.
	ErrStorageWrite = errors.New("storage write failure")
	// ErrConcurrentModification is returned by Write when the stored
	// document no longer matches the ETag the caller read.
	ErrConcurrentModification = errors.New("concurrent modification")
)

// ETag identifies one stored version of a document.
type ETag string

const (
	// NoETag is the ETag of an absent key. Writing with NoETag only
	// succeeds if the key still does not exist.
	NoETag ETag = ""
	// AnyETag writes unconditionally.
	AnyETag ETag = "*"
)

// Options configures a Store.
type Options struct {
	Prefix      string
	Codec       string
	Compression string
	Debug       bool
}

// Store is a namespaced key-value store over the kv table. Values are
// whole documents; there are no partial updates.
type Store struct {
	db       *sql.DB
	prefix   string
	codec    Codec
	compress bool
	debug    bool
	now      func() time.Time
}

// New creates a store over an opened database.
func New(db *sql.DB, opts Options) (*Store, error) {
	if opts.Prefix == "" {
		return nil, fmt.Errorf("storage prefix cannot be empty")
	}
	codec, err := NewCodec(opts.Codec)
	if err != nil {
		return nil, err
	}
	return &Store{
		db:       db,
		prefix:   opts.Prefix,
		codec:    codec,
		compress: opts.Compression == "zstd",
		debug:    opts.Debug,
		now:      time.Now,
	}, nil
}

// Prefix returns the namespace prefix applied to every key.
func (s *Store) Prefix() string { return s.prefix }

func (s *Store) key(k string) string { return s.prefix + k }

func etagOf(stored []byte) ETag {
	sum := blake3.Sum256(stored)
	return ETag(hex.EncodeToString(sum[:16]))
}

// Read decodes the value stored under key into out and returns its ETag.
func (s *Store) Read(key string, out any) (ETag, error) {
	var stored []byte
	var etag string
	err := s.db.QueryRow("SELECT value, etag FROM kv WHERE key = ?", s.key(key)).Scan(&stored, &etag)
	if errors.Is(err, sql.ErrNoRows) {
		return NoETag, ErrNotFound
	}
	if err != nil {
		return NoETag, fmt.Errorf("%w: read %s: %v", ErrStorageRead, key, err)
	}

	data, err := unframe(stored)
	if err != nil {
		return NoETag, fmt.Errorf("%w: read %s: %v", ErrStorageRead, key, err)
	}
	if err := s.codec.Unmarshal(data, out); err != nil {
		return NoETag, fmt.Errorf("%w: decode %s: %v", ErrStorageRead, key, err)
	}

	if s.debug {
		log.Printf("storage: read %s (%d bytes, etag %s)", key, len(stored), etag)
	}
	return ETag(etag), nil
}

// Write stores value under key if the current ETag matches expect and
// returns the new ETag.
func (s *Store) Write(key string, value any, expect ETag) (ETag, error) {
	data, err := s.codec.Marshal(value)
	if err != nil {
		return NoETag, fmt.Errorf("%w: encode %s: %v", ErrStorageWrite, key, err)
	}
	stored := frame(data, s.compress)
	etag := etagOf(stored)
	now := s.now().UTC()

	var res sql.Result
	switch expect {
	case AnyETag:
		res, err = s.db.Exec(`
			INSERT INTO kv (key, value, etag, updated_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, etag = excluded.etag, updated_at = excluded.updated_at
		`, s.key(key), stored, string(etag), now)
	case NoETag:
		res, err = s.db.Exec(`
			INSERT INTO kv (key, value, etag, updated_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(key) DO NOTHING
		`, s.key(key), stored, string(etag), now)
	default:
		res, err = s.db.Exec(`
			UPDATE kv SET value = ?, etag = ?, updated_at = ? WHERE key = ? AND etag = ?
		`, stored, string(etag), now, s.key(key), string(expect))
	}
	if err != nil {
		return NoETag, fmt.Errorf("%w: write %s: %v", ErrStorageWrite, key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return NoETag, fmt.Errorf("%w: write %s: %v", ErrStorageWrite, key, err)
	}
	if n == 0 {
		return NoETag, fmt.Errorf("write %s: %w", key, ErrConcurrentModification)
	}

	if s.debug {
		log.Printf("storage: wrote %s (%d bytes, etag %s)", key, len(stored), etag)
	}
	return etag, nil
}

// Delete removes key if its ETag matches expect. Deleting an absent key
// is not an error.
func (s *Store) Delete(key string, expect ETag) error {
	var (
		res sql.Result
		err error
	)
	if expect == AnyETag || expect == NoETag {
		res, err = s.db.Exec("DELETE FROM kv WHERE key = ?", s.key(key))
	} else {
		res, err = s.db.Exec("DELETE FROM kv WHERE key = ? AND etag = ?", s.key(key), string(expect))
	}
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrStorageWrite, key, err)
	}
	if expect != AnyETag && expect != NoETag {
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("delete %s: %w", key, ErrConcurrentModification)
		}
	}
	return nil
}

// Set writes value unconditionally. Failures are logged and reported as false.
func (s *Store) Set(key string, value any) bool {
	if _, err := s.Write(key, value, AnyETag); err != nil {
		log.Printf("storage: set %s: %v", key, err)
		return false
	}
	return true
}

// Get decodes the value under key into out. It reports false when the key
// is missing or cannot be read; out is left untouched in that case.
func (s *Store) Get(key string, out any) bool {
	_, err := s.Read(key, out)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("storage: get %s: %v", key, err)
		}
		return false
	}
	return true
}

// Remove deletes key. Removing an absent key succeeds.
func (s *Store) Remove(key string) bool {
	if err := s.Delete(key, AnyETag); err != nil {
		log.Printf("storage: remove %s: %v", key, err)
		return false
	}
	return true
}

// Clear removes every key carrying the store prefix and nothing else.
func (s *Store) Clear() bool {
	_, err := s.db.Exec("DELETE FROM kv WHERE substr(key, 1, ?) = ?", len(s.prefix), s.prefix)
	if err != nil {
		log.Printf("storage: clear %s*: %v", s.prefix, err)
		return false
	}
	if s.debug {
		log.Printf("storage: cleared %s*", s.prefix)
	}
	return true
}

// KeyInfo describes one stored key.
type KeyInfo struct {
	Key       string
	Size      int
	ETag      ETag
	UpdatedAt time.Time
}

// Keys lists the keys under the store prefix, ordered by key, with the
// prefix stripped.
func (s *Store) Keys() ([]KeyInfo, error) {
	rows, err := s.db.Query(`
		SELECT key, length(value), etag, updated_at FROM kv
		WHERE substr(key, 1, ?) = ?
		ORDER BY key
	`, len(s.prefix), s.prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: list keys: %v", ErrStorageRead, err)
	}
	defer rows.Close()

	var keys []KeyInfo
	for rows.Next() {
		var k KeyInfo
		var etag string
		var updated sql.NullTime
		if err := rows.Scan(&k.Key, &k.Size, &etag, &updated); err != nil {
			return nil, fmt.Errorf("%w: list keys: %v", ErrStorageRead, err)
		}
		k.Key = strings.TrimPrefix(k.Key, s.prefix)
		k.ETag = ETag(etag)
		if updated.Valid {
			k.UpdatedAt = updated.Time
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
