package interfaces

import (
	"context"

	"cotafrete/internal/domain/entities"
)

// IUserDirectory exposes the facts owned by the user/profile service.
//
// GetUser returns a zero User when the id is unknown.
type IUserDirectory interface {
	GetUser(ctx context.Context, id string) (entities.User, error)
	GetShipperCreditAuthorization(ctx context.Context, shipperID string) (bool, error)
	GetCarrierTaxRegistration(ctx context.Context, carrierID string) (entities.TaxRegistration, error)
}

// ICredentialVerifier validates a bearer credential and returns the subject user id.
type ICredentialVerifier interface {
	Verify(token string) (string, error)
}

// IEventPublisher publishes domain events to the message bus.
type IEventPublisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// IRoomNotifier pushes persisted chat activity to live connections of a quote room.
type IRoomNotifier interface {
	NotifyNewMessage(quoteID string, m entities.Message)
	NotifyMessagesRead(quoteID, chatID string, messageIDs []string)
}
