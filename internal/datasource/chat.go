package datasource

import (
	"context"
	"time"

	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/set-night/travelhub/internal/store"
)

// LocalChat keeps the conversation log. The backend has no chat log endpoint,
// so this is the only implementation in both modes.
type LocalChat struct {
	t *table[domain.ChatMessage]
}

func NewLocalChat(st store.Store) *LocalChat {
	return &LocalChat{t: &table[domain.ChatMessage]{
		store: st,
		key:   config.StoreKeyChat,
		id:    func(m *domain.ChatMessage) *string { return &m.ID },
		onCreate: func(m *domain.ChatMessage) {
			if m.CreatedDate.IsZero() {
				m.CreatedDate = time.Now().UTC()
			}
		},
	}}
}

// List returns the messages of one conversation in creation order; an empty
// sessionID returns every message.
func (s *LocalChat) List(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	list, err := s.t.all(ctx)
	if err != nil {
		return nil, err
	}
	if sessionID == "" {
		return list, nil
	}
	out := list[:0]
	for _, m := range list {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *LocalChat) Get(ctx context.Context, id string) (*domain.ChatMessage, error) {
	m, err := s.t.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMessageNotFound
	}
	return m, nil
}

func (s *LocalChat) Create(ctx context.Context, m domain.ChatMessage) (*domain.ChatMessage, error) {
	return s.t.create(ctx, m)
}

func (s *LocalChat) Update(ctx context.Context, id string, patch Patch) (*domain.ChatMessage, error) {
	m, err := s.t.update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMessageNotFound
	}
	return m, nil
}

func (s *LocalChat) Delete(ctx context.Context, id string) error {
	return s.t.delete(ctx, id)
}
