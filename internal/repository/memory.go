package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/Ahsankhan2345/shopping-hify/internal/domain"
)

// MemoryUserStore is an in-process UserStore, used when no DynamoDB table is
// configured and as a test double.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byEmail map[string]domain.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{byEmail: make(map[string]domain.User)}
}

func (s *MemoryUserStore) PutUser(ctx context.Context, u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[u.Email]; exists {
		return domain.ErrConflict
	}
	s.byEmail[u.Email] = u
	return nil
}

func (s *MemoryUserStore) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byEmail[email]
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	return u, nil
}

func (s *MemoryUserStore) GetUserByName(ctx context.Context, name string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.byEmail {
		if u.Name == name {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("user %s: %w", name, domain.ErrNotFound)
}

// MemorySessionStore is the ephemeral session store: sessions live for the
// process lifetime only, the server-side analogue of a non-remembered login.
type MemorySessionStore struct {
	mu      sync.RWMutex
	byToken map[string]domain.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{byToken: make(map[string]domain.Session)}
}

func (s *MemorySessionStore) PutSession(ctx context.Context, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byToken[sess.AuthToken] = sess
	return nil
}

func (s *MemorySessionStore) GetSession(ctx context.Context, token string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.byToken[token]
	if !ok {
		return domain.Session{}, fmt.Errorf("session: %w", domain.ErrNotFound)
	}
	return sess, nil
}

func (s *MemorySessionStore) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byToken, token)
	return nil
}
