package interfaces

import (
	"context"
	"time"

	"cotafrete/internal/domain/entities"
)

// IChatRepository abstracts persistence for Chat.
type IChatRepository interface {
	Create(ctx context.Context, c entities.Chat) (entities.Chat, error)
	GetByID(ctx context.Context, id string) (entities.Chat, error)
	ListByParticipant(ctx context.Context, userID string) ([]entities.Chat, error)
	// MarkAutoClosed flips an open chat whose deadline passed; no-op otherwise.
	MarkAutoClosed(ctx context.Context, id string, now time.Time) (entities.Chat, error)
	UpdateLastMessage(ctx context.Context, id, preview string, at time.Time) error
}

// IMessageRepository abstracts persistence for Message.
type IMessageRepository interface {
	Create(ctx context.Context, m entities.Message) (entities.Message, error)
	ListByChatID(ctx context.Context, chatID string) ([]entities.Message, error)
	// MarkRead flags unread messages not authored by readerID and returns their ids.
	MarkRead(ctx context.Context, chatID, readerID string) ([]string, error)
}
