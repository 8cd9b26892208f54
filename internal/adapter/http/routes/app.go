package routes

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"cotafrete/internal/adapter/http/handlers"
	"cotafrete/internal/adapter/persistence/memory"
	"cotafrete/internal/adapter/persistence/repository"
	"cotafrete/internal/adapter/realtime"
	"cotafrete/internal/domain/clock"
	"cotafrete/internal/infrastructure/auth"
	"cotafrete/internal/infrastructure/database"
	"cotafrete/internal/infrastructure/directory"
	"cotafrete/internal/infrastructure/events"
	"cotafrete/internal/infrastructure/payments"
	"cotafrete/internal/usecase"
	"cotafrete/internal/usecase/interfaces"
)

// App holds the wired handlers and the resources to release on shutdown.
type App struct {
	Identity usecase.IIdentityUseCase
	Quotes   *handlers.QuoteHandler
	Delivery *handlers.DeliveryHandler
	Offers   *handlers.OfferHandler
	Chats    *handlers.ChatHandler
	Payments *handlers.PaymentHandler
	Ledger   *handlers.LedgerHandler
	Realtime *realtime.Handler
	Hub      *realtime.Hub

	origins []string
	closers []func() error
}

func (a *App) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			log.Printf("[app] close failed err=%v", err)
		}
	}
}

type repositories struct {
	quotes      interfaces.IQuoteRepository
	offers      interfaces.IOfferRepository
	acceptances interfaces.IAcceptanceRepository
	chats       interfaces.IChatRepository
	messages    interfaces.IMessageRepository
	ledger      interfaces.ILedgerRepository
	settlements interfaces.ISettlementRepository
	payments    interfaces.IPaymentRepository
}

// newRepositories selects the storage backend (STORAGE_DRIVER=dynamodb|memory).
func newRepositories(ctx context.Context) (repositories, error) {
	driver := strings.ToLower(getenvDefault("STORAGE_DRIVER", "dynamodb"))
	switch driver {
	case "memory":
		log.Printf("[app] storage driver=memory")
		s := memory.NewStore()
		return repositories{
			quotes:      s.Quotes(),
			offers:      s.Offers(),
			acceptances: s.Acceptances(),
			chats:       s.Chats(),
			messages:    s.Messages(),
			ledger:      s.Ledger(),
			settlements: s.Settlements(),
			payments:    s.Payments(),
		}, nil
	case "dynamodb":
		ddb, err := database.ConnectDynamoDB(ctx)
		if err != nil {
			return repositories{}, err
		}
		if database.AutoCreateTablesEnabled() {
			if err := database.EnsureTables(ctx, ddb); err != nil {
				return repositories{}, err
			}
		}
		log.Printf("[app] storage driver=dynamodb")
		return repositories{
			quotes:      repository.NewQuoteDynamoRepository(ddb),
			offers:      repository.NewOfferDynamoRepository(ddb),
			acceptances: repository.NewAcceptanceDynamoRepository(ddb),
			chats:       repository.NewChatDynamoRepository(ddb),
			messages:    repository.NewMessageDynamoRepository(ddb),
			ledger:      repository.NewLedgerDynamoRepository(ddb),
			settlements: repository.NewSettlementDynamoRepository(ddb),
			payments:    repository.NewPaymentDynamoRepository(ddb),
		}, nil
	}
	return repositories{}, fmt.Errorf("unknown STORAGE_DRIVER %q", driver)
}

// newDirectory prefers postgres (DIRECTORY_DSN), then a yaml seed
// (DIRECTORY_SEED_FILE), then an empty directory.
func newDirectory() (interfaces.IUserDirectory, error) {
	if dsn := strings.TrimSpace(os.Getenv("DIRECTORY_DSN")); dsn != "" {
		d, err := directory.OpenGormDirectory(dsn)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	if path := strings.TrimSpace(os.Getenv("DIRECTORY_SEED_FILE")); path != "" {
		d, err := directory.LoadStaticDirectory(path)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	log.Printf("[app] no user directory configured; every credential will be rejected")
	return directory.NewStaticDirectory(), nil
}

func newPublisher() interfaces.IEventPublisher {
	brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))
	if brokers == "" {
		log.Printf("[app] KAFKA_BROKERS not set; domain events are dropped")
		return events.NoopPublisher{}
	}
	return events.NewKafkaPublisher(brokers, os.Getenv("KAFKA_TOPIC"))
}

// paymentGatewayMock reports whether PAYMENT_GATEWAY_MOCK or MERCADOPAGO_MOCK
// enables the simulated gateway.
func paymentGatewayMock() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

func newGateway(mock bool) interfaces.IPaymentGateway {
	gw, err := payments.NewMercadoPagoGateway(payments.Config{
		AccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
		Mock:        mock,
		MockStatus:  os.Getenv("PAYMENT_GATEWAY_MOCK_STATUS"),
	})
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
		return nil
	}
	return gw
}

func buildApp(ctx context.Context) (*App, error) {
	repos, err := newRepositories(ctx)
	if err != nil {
		return nil, err
	}
	dir, err := newDirectory()
	if err != nil {
		return nil, err
	}
	verifier, err := auth.NewJWTVerifier(os.Getenv("JWT_SECRET"))
	if err != nil {
		return nil, err
	}
	mock := paymentGatewayMock()
	return wire(repos, dir, verifier, newPublisher(), newGateway(mock), mock, clock.System()), nil
}

func wire(
	repos repositories,
	dir interfaces.IUserDirectory,
	verifier interfaces.ICredentialVerifier,
	publisher interfaces.IEventPublisher,
	gateway interfaces.IPaymentGateway,
	gatewayMock bool,
	clk clock.Clock,
) *App {
	hub := realtime.NewHub()

	identity := usecase.NewIdentityUseCase(verifier, dir)
	quotes := usecase.NewQuoteUseCase(repos.quotes, repos.offers, publisher, clk)
	offers := usecase.NewOfferUseCase(repos.offers, repos.quotes, dir, clk)
	acceptance := usecase.NewAcceptanceUseCase(repos.acceptances, repos.quotes, repos.offers, repos.payments, dir, publisher, clk)
	ledger := usecase.NewLedgerUseCase(repos.ledger, clk)
	delivery := usecase.NewDeliveryUseCase(repos.quotes, repos.offers, repos.settlements, publisher, clk)
	chats := usecase.NewChatUseCase(repos.chats, repos.messages, repos.quotes, dir, hub, clk)

	pay := usecase.NewPaymentUseCase(repos.payments, repos.quotes, gateway, gatewayMock, publisher, clk)

	origins := allowedOrigins()
	return &App{
		Identity: identity,
		Quotes:   handlers.NewQuoteHandler(quotes, acceptance),
		Delivery: handlers.NewDeliveryHandler(delivery),
		Offers:   handlers.NewOfferHandler(offers, acceptance),
		Chats:    handlers.NewChatHandler(chats),
		Payments: handlers.NewPaymentHandler(pay, gatewayMock),
		Ledger:   handlers.NewLedgerHandler(ledger),
		Realtime: realtime.NewHandler(hub, identity, chats, origins),
		Hub:      hub,
		origins:  origins,
		closers:  []func() error{publisher.Close},
	}
}
