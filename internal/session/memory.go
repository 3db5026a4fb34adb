package session

import (
	"context"
	"sync"
)

// MemoryStore はテストと開発用のインメモリ実装。
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string][]byte{}}
}

func memKey(sessionID, key string) string {
	return sessionID + "/" + key
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[memKey(sessionID, key)]
	if !ok {
		return nil, false, nil
	}

	//呼び出し側の書き換えから守るためコピーを返す
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (s *MemoryStore) Put(ctx context.Context, sessionID string, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	s.values[memKey(sessionID, key)] = cp
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, memKey(sessionID, key))
	return nil
}
