package usecase

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"cotafrete/internal/domain/clock"
	"cotafrete/internal/usecase/interfaces"
)

const defaultDependencyTimeout = 5 * time.Second

// dependencyTimeout bounds every storage and collaborator round trip.
// DEPENDENCY_TIMEOUT accepts Go durations ("3s", "1500ms").
func dependencyTimeout() time.Duration {
	v := strings.TrimSpace(os.Getenv("DEPENDENCY_TIMEOUT"))
	if v == "" {
		return defaultDependencyTimeout
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[usecase] invalid DEPENDENCY_TIMEOUT=%q, using %s", v, defaultDependencyTimeout)
		return defaultDependencyTimeout
	}
	return d
}

// runtime carries what every use case needs besides its ports.
type runtime struct {
	clock   clock.Clock
	timeout time.Duration
	events  interfaces.IEventPublisher
}

func newRuntime(clk clock.Clock, events interfaces.IEventPublisher) runtime {
	if clk == nil {
		clk = clock.System()
	}
	return runtime{clock: clk, timeout: dependencyTimeout(), events: events}
}

func (r runtime) now() time.Time { return r.clock.Now().UTC() }

func (r runtime) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// failed classifies a port error and logs it once.
func (r runtime) failed(area, action string, err error) error {
	log.Printf("[%s][usecase] %s failed err=%v", area, action, err)
	return classify(err, dependencyTimeoutMessage)
}

// publish emits a domain event. Bus failures never undo a committed transition.
func (r runtime) publish(ctx context.Context, ev DomainEvent) {
	if r.events == nil {
		return
	}
	if err := r.events.Publish(ctx, ev.CotacaoID, ev); err != nil {
		log.Printf("[events][usecase] publish failed type=%s quote_id=%s err=%v", ev.Type, ev.CotacaoID, err)
	}
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// paginate applies 1-based page/limit to an already ordered slice.
func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
