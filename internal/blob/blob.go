// Package blob provides a content-addressed, in-memory blob store for
// snapshotted file content.
//
// Blobs are keyed by the BLAKE3-256 hash of their uncompressed bytes
// and held zstd-compressed. Identical snapshot bodies across files and
// versions therefore share a single stored blob.
package blob

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"lukechampine.com/blake3"
)

// Hash is a BLAKE3-256 hash of uncompressed blob content.
type Hash [32]byte

// String returns the hexadecimal representation of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns an abbreviated hex form suitable for display.
func (h Hash) Short() string {
	return hex.EncodeToString(h[:4])
}

// Sum computes the BLAKE3 hash of the given data.
func Sum(data []byte) Hash {
	return blake3.Sum256(data)
}

// Store is an in-memory content-addressed blob store. Stored payloads
// are zstd-compressed; Put and Get operate on uncompressed bytes.
type Store struct {
	mu    sync.RWMutex
	blobs map[Hash][]byte // hash of plain content -> zstd-compressed payload
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{blobs: make(map[Hash][]byte)}
}

// Put stores data and returns the hash of its uncompressed form.
// Storing the same content twice is a cheap no-op.
func (s *Store) Put(data []byte) (Hash, error) {
	h := Sum(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blobs[h]; ok {
		return h, nil
	}

	compressed, err := compress(data)
	if err != nil {
		return Hash{}, err
	}
	s.blobs[h] = compressed
	return h, nil
}

// Get retrieves the uncompressed content for a hash.
func (s *Store) Get(h Hash) ([]byte, error) {
	s.mu.RLock()
	compressed, ok := s.blobs[h]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("blob %s not found", h)
	}
	return decompress(compressed)
}

// Has reports whether content with the given hash is stored.
func (s *Store) Has(h Hash) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blobs[h]
	return ok
}

// Len returns the number of distinct blobs stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("zstd write: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("zstd close: %w", err)
	}
	return buf.Bytes(), nil
}

func decompress(payload []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	plain, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("read zstd payload: %w", err)
	}
	return plain, nil
}
