package request

import (
	"strings"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase"
)

type CreateChatRequest struct {
	CotacaoID     string   `json:"cotacaoId"`
	Participantes []string `json:"participantes"`
}

// SendMessageRequest accepts text, a file reference or both.
type SendMessageRequest struct {
	Conteudo    string `json:"conteudo"`
	ArquivoURL  string `json:"arquivoUrl"`
	ArquivoNome string `json:"arquivoNome"`
	ArquivoTipo string `json:"arquivoTipo"`
}

func (r SendMessageRequest) ToInput() usecase.MessageInput {
	in := usecase.MessageInput{Conteudo: r.Conteudo}
	if url := strings.TrimSpace(r.ArquivoURL); url != "" {
		in.Arquivo = &entities.Attachment{
			URL:  url,
			Nome: strings.TrimSpace(r.ArquivoNome),
			Tipo: strings.TrimSpace(r.ArquivoTipo),
		}
	}
	return in
}
