package memory

import (
	"context"
	"sort"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"
)

type MessageRepository struct {
	s *Store
}

var _ interfaces.IMessageRepository = (*MessageRepository)(nil)

func (r *MessageRepository) Create(ctx context.Context, m entities.Message) (entities.Message, error) {
	if err := alive(ctx); err != nil {
		return entities.Message{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.messages[m.ID]; ok {
		return entities.Message{}, interfaces.ErrAlreadyExists
	}
	r.s.messages[m.ID] = cloneMessage(m)
	return cloneMessage(m), nil
}

// ListByChatID returns messages oldest first, like the chat_id-index query.
func (r *MessageRepository) ListByChatID(ctx context.Context, chatID string) ([]entities.Message, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entities.Message, 0)
	for _, m := range r.s.messages {
		if m.ChatID == chatID {
			out = append(out, cloneMessage(m))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, chatID, readerID string) ([]string, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]string, 0)
	for id, m := range r.s.messages {
		if m.ChatID != chatID || m.UserID == readerID || m.Lida {
			continue
		}
		m.Lida = true
		r.s.messages[id] = m
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
