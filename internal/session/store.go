// Package session holds one upload's derived artifacts under an opaque
// token. Everything lives in process memory; a restart wipes it.
package session

import (
	"sync"
	"time"

	"cortex-backend/internal/helper"
)

// Kind discriminates what a session holds.
type Kind string

const (
	KindDocument Kind = "document"
	KindImage    Kind = "image"
)

// Record is one upload's artifacts. For document sessions Chunks and
// Embeddings are parallel: same length, same order, never reordered.
// Image sessions carry only OCRText.
type Record struct {
	Kind       Kind
	Filename   string
	Chunks     []string
	Embeddings [][]float32
	OCRText    string
	CreatedAt  time.Time
}

// Store is a mutex-guarded session map. There is no TTL and no size
// bound; sessions disappear only via Delete or process restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Record
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]Record)}
}

// NewID returns a fresh unguessable session token.
func NewID() (string, error) {
	return helper.GenerateUUID()
}

func (s *Store) Put(id string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = rec
}

// Get reports absence through the second return value, never an error.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sessions[id]
	return rec, ok
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
