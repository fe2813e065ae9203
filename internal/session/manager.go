package session

import (
	"context"
	"sync"
)

// Manager owns one Session per chat, restoring each on first use.
type Manager struct {
	auth   AuthClient
	tokens TokenStores

	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewManager(auth AuthClient, tokens TokenStores) *Manager {
	return &Manager{
		auth:     auth,
		tokens:   tokens,
		sessions: make(map[int64]*Session),
	}
}

func (m *Manager) Get(ctx context.Context, chatID int64) *Session {
	m.mu.Lock()
	s, ok := m.sessions[chatID]
	if !ok {
		s = New(m.auth, m.tokens, TokenKey(chatID))
		m.sessions[chatID] = s
	}
	m.mu.Unlock()

	if s.State() == StateLoading {
		s.Restore(ctx)
	}
	return s
}
