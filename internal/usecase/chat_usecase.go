package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"cotafrete/internal/domain/clock"
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// MessageInput is the body of a chat message: text, a file, or both.
type MessageInput struct {
	Conteudo string
	Arquivo  *entities.Attachment
}

// ChatDetail is a chat with its messages in chronological order.
type ChatDetail struct {
	Chat      entities.Chat
	Mensagens []entities.Message
}

// IChatUseCase is the gated conversation channel shared by REST and the live transport.
type IChatUseCase interface {
	List(ctx context.Context, actor entities.User, search string, limit int) ([]entities.Chat, error)
	Get(ctx context.Context, actor entities.User, chatID string) (ChatDetail, error)
	Create(ctx context.Context, actor entities.User, quoteID string, participants []string) (entities.Chat, error)
	SendMessage(ctx context.Context, actor entities.User, chatID string, in MessageInput) (entities.Message, error)
	MarkRead(ctx context.Context, actor entities.User, chatID string) ([]string, error)
	AuthorizeRoom(ctx context.Context, actor entities.User, quoteID string) (entities.Quote, error)
	SendToQuoteRoom(ctx context.Context, actor entities.User, quoteID, content string) (entities.Message, error)
}

type ChatUseCase struct {
	runtime
	chats     interfaces.IChatRepository
	messages  interfaces.IMessageRepository
	quotes    interfaces.IQuoteRepository
	directory interfaces.IUserDirectory
	notifier  interfaces.IRoomNotifier
}

var _ IChatUseCase = (*ChatUseCase)(nil)

func NewChatUseCase(
	chats interfaces.IChatRepository,
	messages interfaces.IMessageRepository,
	quotes interfaces.IQuoteRepository,
	directory interfaces.IUserDirectory,
	notifier interfaces.IRoomNotifier,
	clk clock.Clock,
) *ChatUseCase {
	return &ChatUseCase{
		runtime:   newRuntime(clk, nil),
		chats:     chats,
		messages:  messages,
		quotes:    quotes,
		directory: directory,
		notifier:  notifier,
	}
}

func (u *ChatUseCase) Create(ctx context.Context, actor entities.User, quoteID string, participants []string) (entities.Chat, error) {
	quoteID = strings.TrimSpace(quoteID)
	ids := uniqueIDs(participants)
	if len(ids) < 2 {
		return entities.Chat{}, ErrChatParticipantsInvalid
	}
	if quoteID == "" {
		return entities.Chat{}, ErrChatQuoteRequired
	}
	if !actor.IsShipper() {
		return entities.Chat{}, ErrChatShipperOnly
	}
	now := u.now()
	if w := clock.EvaluateChatWindow(now); !w.Allowed {
		log.Printf("[chat][usecase] create outside window quote_id=%s user_id=%s hour=%d", quoteID, actor.ID, w.Hour)
		return entities.Chat{}, forbidden(w.Message)
	}

	ctx, cancel := u.bounded(ctx)
	defer cancel()

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Chat{}, u.failed("chat", "load quote", err)
	}
	if q.ID == "" || q.UserID != actor.ID {
		return entities.Chat{}, ErrChatQuoteNotOwned
	}
	if err := paymentGate(q); err != nil {
		return entities.Chat{}, err
	}

	carrierID, err := u.soleCarrier(ctx, actor.ID, ids)
	if err != nil {
		return entities.Chat{}, err
	}

	members := []string{actor.ID, carrierID}
	id := entities.ChatID(q.ID, members)
	existing, err := u.chats.GetByID(ctx, id)
	if err != nil {
		return entities.Chat{}, u.failed("chat", "load chat", err)
	}
	if existing.ID != "" {
		return existing, nil
	}

	c := entities.Chat{
		ID:               id,
		CotacaoID:        q.ID,
		Participantes:    members,
		ClienteID:        actor.ID,
		TransportadoraID: carrierID,
		HoraAbertura:     now,
		HoraFechamento:   clock.EndOfCivilDay(now).UTC(),
		StatusChat:       entities.ChatStatusAberto,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	created, err := u.chats.Create(ctx, c)
	if errors.Is(err, interfaces.ErrAlreadyExists) {
		return u.chats.GetByID(ctx, id)
	}
	if err != nil {
		return entities.Chat{}, u.failed("chat", "create", err)
	}
	log.Printf("[chat][usecase] created chat_id=%s quote_id=%s cliente_id=%s transportadora_id=%s closes_at=%s",
		created.ID, q.ID, actor.ID, carrierID, created.HoraFechamento.Format(time.RFC3339))
	return created, nil
}

// soleCarrier requires the set to be the actor plus exactly one carrier.
func (u *ChatUseCase) soleCarrier(ctx context.Context, actorID string, ids []string) (string, error) {
	others := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != actorID {
			others = append(others, id)
		}
	}
	if len(others) != 1 || len(ids) != 2 {
		return "", ErrChatCarrierRequired
	}
	other, err := u.directory.GetUser(ctx, others[0])
	if err != nil {
		return "", u.failed("chat", "load participant", err)
	}
	if !other.IsCarrier() {
		return "", ErrChatCarrierRequired
	}
	return other.ID, nil
}

func paymentGate(q entities.Quote) error {
	if q.ConversationAllowed() {
		return nil
	}
	if q.MotivoBloqueioColeta != "" {
		return forbidden(q.MotivoBloqueioColeta)
	}
	return ErrChatPaymentBlocked
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (u *ChatUseCase) SendMessage(ctx context.Context, actor entities.User, chatID string, in MessageInput) (entities.Message, error) {
	chatID = strings.TrimSpace(chatID)
	if chatID == "" {
		return entities.Message{}, ErrInvalidChatID
	}
	content := entities.SanitizeContent(in.Conteudo)
	file := normalizeAttachment(in.Arquivo)
	if content == "" && file == nil {
		return entities.Message{}, ErrMessageEmpty
	}

	ctx, cancel := u.bounded(ctx)
	defer cancel()

	c, err := u.openChatFor(ctx, actor, chatID)
	if err != nil {
		return entities.Message{}, err
	}
	q, err := u.quotes.GetByID(ctx, c.CotacaoID)
	if err != nil {
		return entities.Message{}, u.failed("chat", "load quote", err)
	}
	if q.ID == "" {
		return entities.Message{}, ErrQuoteNotFound
	}
	if err := paymentGate(q); err != nil {
		return entities.Message{}, err
	}

	now := u.now()
	m := entities.Message{
		ID:           uuid.NewString(),
		ChatID:       c.ID,
		UserID:       actor.ID,
		Conteudo:     content,
		TipoMensagem: entities.MessageKindTexto,
		Arquivo:      file,
		CreatedAt:    now,
	}
	if file != nil {
		m.TipoMensagem = entities.MessageKindArquivo
	}
	created, err := u.messages.Create(ctx, m)
	if err != nil {
		return entities.Message{}, u.failed("chat", "create message", err)
	}
	if err := u.chats.UpdateLastMessage(ctx, c.ID, created.Preview(), now); err != nil {
		log.Printf("[chat][usecase] last message update failed chat_id=%s err=%v", c.ID, err)
	}
	if u.notifier != nil {
		u.notifier.NotifyNewMessage(c.CotacaoID, created)
	}
	return created, nil
}

func normalizeAttachment(a *entities.Attachment) *entities.Attachment {
	if a == nil || strings.TrimSpace(a.URL) == "" {
		return nil
	}
	return &entities.Attachment{
		URL:  strings.TrimSpace(a.URL),
		Nome: strings.TrimSpace(a.Nome),
		Tipo: strings.TrimSpace(a.Tipo),
	}
}

// openChatFor loads the chat for a participant and applies the lazy close:
// a chat past its deadline is flipped in storage and rejected.
func (u *ChatUseCase) openChatFor(ctx context.Context, actor entities.User, chatID string) (entities.Chat, error) {
	c, err := u.chats.GetByID(ctx, chatID)
	if err != nil {
		return entities.Chat{}, u.failed("chat", "load chat", err)
	}
	if c.ID == "" {
		return entities.Chat{}, ErrChatNotFound
	}
	if !c.HasParticipant(actor.ID) {
		return entities.Chat{}, ErrChatAccessDenied
	}
	now := u.now()
	if c.StatusChat == entities.ChatStatusAberto && c.Expired(now) {
		u.closeExpired(ctx, c, now)
		return entities.Chat{}, ErrChatAutoClosed
	}
	if !c.IsOpen(now) {
		return entities.Chat{}, ErrChatNotOpen
	}
	return c, nil
}

// closeExpired flips the stored status of a chat past its deadline. Storage
// makes the flip conditional, so concurrent readers race harmlessly.
func (u *ChatUseCase) closeExpired(ctx context.Context, c entities.Chat, now time.Time) entities.Chat {
	closed, err := u.chats.MarkAutoClosed(ctx, c.ID, now)
	if err != nil {
		log.Printf("[chat][usecase] auto close failed chat_id=%s err=%v", c.ID, err)
	} else if closed.ID != "" {
		log.Printf("[chat][usecase] auto closed chat_id=%s closed_at=%s", c.ID, c.HoraFechamento.Format(time.RFC3339))
		return closed
	}
	c.StatusChat = entities.ChatStatusFechadoAutomatico
	return c
}

// correctStatus never trusts the cached status of an expired chat.
func (u *ChatUseCase) correctStatus(ctx context.Context, c entities.Chat, now time.Time) entities.Chat {
	if c.StatusChat == entities.ChatStatusAberto && c.Expired(now) {
		return u.closeExpired(ctx, c, now)
	}
	return c
}

func lastActivity(c entities.Chat) time.Time {
	if c.UltimaMensagemData.After(c.UpdatedAt) {
		return c.UltimaMensagemData
	}
	return c.UpdatedAt
}

func (u *ChatUseCase) MarkRead(ctx context.Context, actor entities.User, chatID string) ([]string, error) {
	chatID = strings.TrimSpace(chatID)
	if chatID == "" {
		return nil, ErrInvalidChatID
	}
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	c, err := u.chats.GetByID(ctx, chatID)
	if err != nil {
		return nil, u.failed("chat", "load chat", err)
	}
	if c.ID == "" {
		return nil, ErrChatNotFound
	}
	if !c.HasParticipant(actor.ID) {
		return nil, ErrChatAccessDenied
	}
	ids, err := u.messages.MarkRead(ctx, c.ID, actor.ID)
	if err != nil {
		return nil, u.failed("chat", "mark read", err)
	}
	if len(ids) > 0 && u.notifier != nil {
		u.notifier.NotifyMessagesRead(c.CotacaoID, c.ID, ids)
	}
	return ids, nil
}

func (u *ChatUseCase) List(ctx context.Context, actor entities.User, search string, limit int) ([]entities.Chat, error) {
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	items, err := u.chats.ListByParticipant(ctx, actor.ID)
	if err != nil {
		return nil, u.failed("chat", "list", err)
	}
	now := u.now()
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]entities.Chat, 0, len(items))
	for _, c := range items {
		if search != "" && !strings.Contains(strings.ToLower(c.UltimaMensagem), search) && !strings.Contains(strings.ToLower(c.CotacaoID), search) {
			continue
		}
		out = append(out, u.correctStatus(ctx, c, now))
	}
	sort.Slice(out, func(i, j int) bool { return lastActivity(out[i]).After(lastActivity(out[j])) })
	return paginate(out, 1, limit), nil
}

func (u *ChatUseCase) Get(ctx context.Context, actor entities.User, chatID string) (ChatDetail, error) {
	chatID = strings.TrimSpace(chatID)
	if chatID == "" {
		return ChatDetail{}, ErrInvalidChatID
	}
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	c, err := u.chats.GetByID(ctx, chatID)
	if err != nil {
		return ChatDetail{}, u.failed("chat", "load chat", err)
	}
	if c.ID == "" {
		return ChatDetail{}, ErrChatNotFound
	}
	if !c.HasParticipant(actor.ID) {
		return ChatDetail{}, ErrChatAccessDenied
	}
	c = u.correctStatus(ctx, c, u.now())

	msgs, err := u.messages.ListByChatID(ctx, c.ID)
	if err != nil {
		return ChatDetail{}, u.failed("chat", "list messages", err)
	}
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].CreatedAt.Before(msgs[j].CreatedAt) })
	return ChatDetail{Chat: c, Mensagens: msgs}, nil
}

// AuthorizeRoom admits the quote owner and the carrier of the accepted offer.
func (u *ChatUseCase) AuthorizeRoom(ctx context.Context, actor entities.User, quoteID string) (entities.Quote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, u.failed("chat", "load quote", err)
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if q.UserID != actor.ID && (q.TransportadorID == "" || q.TransportadorID != actor.ID) {
		return entities.Quote{}, ErrRoomForbidden
	}
	return q, nil
}

// SendToQuoteRoom writes through the quote's chat between the owner and the
// selected carrier, with the same admission rules as SendMessage.
func (u *ChatUseCase) SendToQuoteRoom(ctx context.Context, actor entities.User, quoteID, content string) (entities.Message, error) {
	q, err := u.AuthorizeRoom(ctx, actor, quoteID)
	if err != nil {
		return entities.Message{}, err
	}
	if q.TransportadorID == "" {
		return entities.Message{}, ErrQuoteChatNotFound
	}
	chatID := entities.ChatID(q.ID, []string{q.UserID, q.TransportadorID})
	return u.SendMessage(ctx, actor, chatID, MessageInput{Conteudo: content})
}
