package memory

import (
	"context"
	"time"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"
)

type ChatRepository struct {
	s *Store
}

var _ interfaces.IChatRepository = (*ChatRepository)(nil)

func (r *ChatRepository) Create(ctx context.Context, c entities.Chat) (entities.Chat, error) {
	if err := alive(ctx); err != nil {
		return entities.Chat{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.chats[c.ID]; ok {
		return entities.Chat{}, interfaces.ErrAlreadyExists
	}
	r.s.chats[c.ID] = cloneChat(c)
	return cloneChat(c), nil
}

func (r *ChatRepository) GetByID(ctx context.Context, id string) (entities.Chat, error) {
	if err := alive(ctx); err != nil {
		return entities.Chat{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.chats[id]
	if !ok {
		return entities.Chat{}, nil
	}
	return cloneChat(c), nil
}

func (r *ChatRepository) ListByParticipant(ctx context.Context, userID string) ([]entities.Chat, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entities.Chat, 0)
	for _, c := range r.s.chats {
		if c.HasParticipant(userID) {
			out = append(out, cloneChat(c))
		}
	}
	return out, nil
}

func (r *ChatRepository) MarkAutoClosed(ctx context.Context, id string, now time.Time) (entities.Chat, error) {
	if err := alive(ctx); err != nil {
		return entities.Chat{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.chats[id]
	if !ok {
		return entities.Chat{}, nil
	}
	if c.StatusChat == entities.ChatStatusAberto && c.Expired(now) {
		c.StatusChat = entities.ChatStatusFechadoAutomatico
		c.UpdatedAt = now
		r.s.chats[id] = c
	}
	return cloneChat(c), nil
}

func (r *ChatRepository) UpdateLastMessage(ctx context.Context, id, preview string, at time.Time) error {
	if err := alive(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.chats[id]
	if !ok {
		return nil
	}
	c.UltimaMensagem = preview
	c.UltimaMensagemData = at
	c.UpdatedAt = at
	r.s.chats[id] = c
	return nil
}
