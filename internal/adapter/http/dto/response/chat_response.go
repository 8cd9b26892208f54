package response

import (
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase"
)

type ChatDetailResponse struct {
	entities.Chat
	Mensagens []entities.Message `json:"mensagens"`
}

func FromChatDetail(d usecase.ChatDetail) ChatDetailResponse {
	msgs := d.Mensagens
	if msgs == nil {
		msgs = []entities.Message{}
	}
	return ChatDetailResponse{Chat: d.Chat, Mensagens: msgs}
}

type MarkReadResponse struct {
	ChatID      string   `json:"chatId"`
	MensagemIDs []string `json:"mensagemIds"`
	Total       int      `json:"total"`
}

func FromMarkRead(chatID string, ids []string) MarkReadResponse {
	if ids == nil {
		ids = []string{}
	}
	return MarkReadResponse{ChatID: chatID, MensagemIDs: ids, Total: len(ids)}
}
