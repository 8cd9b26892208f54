package routes

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "cotafrete/docs" // swag generated
	"cotafrete/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"
)

var router = gin.New()

const defaultPort = "8080"

const shutdownTimeout = 10 * time.Second

// Run will start the server and block until SIGINT/SIGTERM.
func Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := buildApp(ctx)
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err)
	}
	defer app.Close()

	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(router, app)

	srv := &http.Server{
		Addr:              ":" + getenvDefault("PORT", defaultPort),
		Handler:           corsPolicy(app.origins).Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[http] listening addr=%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Printf("[http] shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
}

func getRoutes(r *gin.Engine, app *App) {
	v1 := r.Group("/v1")

	// Rotas publicas
	addPingRoutes(v1)
	addRealtimeRoutes(v1, app.Realtime)

	// Rotas autenticadas
	private := v1.Group("")
	private.Use(middleware.Authenticate(app.Identity))
	addQuoteRoutes(private, app.Quotes, app.Delivery)
	addOfferRoutes(private, app.Offers)
	addChatRoutes(private, app.Chats)
	addPaymentRoutes(private, app.Payments)
	addLedgerRoutes(private, app.Ledger)
}

func setMiddlewares(r *gin.Engine) {
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

// allowedOrigins reads ALLOWED_ORIGINS (comma separated). Empty means any.
func allowedOrigins() []string {
	out := make([]string, 0)
	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func corsPolicy(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
