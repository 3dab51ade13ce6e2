package state

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryRepository keeps buckets in process memory. It encodes values the
// same way SQLiteRepository does, so callers observe identical semantics.
type MemoryRepository struct {
	mu      sync.Mutex
	buckets map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{buckets: make(map[string][]byte)}
}

func (r *MemoryRepository) Load(_ context.Context, bucket string, dst any) (bool, error) {
	r.mu.Lock()
	payload, ok := r.buckets[bucket]
	r.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := decodeInto(bucket, payload, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *MemoryRepository) Save(_ context.Context, bucket string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.buckets[bucket] = payload
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, bucket string) error {
	r.mu.Lock()
	delete(r.buckets, bucket)
	r.mu.Unlock()
	return nil
}

// Put stores a raw payload, bypassing encoding. Used to simulate corrupt data.
func (r *MemoryRepository) Put(bucket string, payload []byte) {
	r.mu.Lock()
	r.buckets[bucket] = append([]byte(nil), payload...)
	r.mu.Unlock()
}
