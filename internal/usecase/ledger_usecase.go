package usecase

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"cotafrete/internal/domain/clock"
	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"
)

// LedgerFilter narrows ledger listings; zero values mean "any".
type LedgerFilter struct {
	Mes    int
	Ano    int
	Status entities.LedgerStatus
}

// ILedgerUseCase reads the financial ledger and records payouts. Entries
// accrue only through DeliveryUseCase.Finalize.
type ILedgerUseCase interface {
	ListForCarrier(ctx context.Context, actor entities.User, f LedgerFilter) ([]entities.LedgerEntry, error)
	ListAll(ctx context.Context, actor entities.User, f LedgerFilter) ([]entities.LedgerEntry, error)
	UpdateStatus(ctx context.Context, actor entities.User, id string, status entities.LedgerStatus) (entities.LedgerEntry, error)
}

type LedgerUseCase struct {
	runtime
	repo interfaces.ILedgerRepository
}

var _ ILedgerUseCase = (*LedgerUseCase)(nil)

func NewLedgerUseCase(repo interfaces.ILedgerRepository, clk clock.Clock) *LedgerUseCase {
	return &LedgerUseCase{runtime: newRuntime(clk, nil), repo: repo}
}

func (u *LedgerUseCase) ListForCarrier(ctx context.Context, actor entities.User, f LedgerFilter) ([]entities.LedgerEntry, error) {
	if !actor.IsCarrier() && !actor.IsAdmin() {
		return nil, ErrCarrierOnly
	}
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	items, err := u.repo.ListByCarrierID(ctx, actor.ID)
	if err != nil {
		return nil, u.failed("financeiro", "list for carrier", err)
	}
	return filterLedger(items, f), nil
}

func (u *LedgerUseCase) ListAll(ctx context.Context, actor entities.User, f LedgerFilter) ([]entities.LedgerEntry, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	items, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, u.failed("financeiro", "list all", err)
	}
	return filterLedger(items, f), nil
}

func (u *LedgerUseCase) UpdateStatus(ctx context.Context, actor entities.User, id string, status entities.LedgerStatus) (entities.LedgerEntry, error) {
	if !actor.IsAdmin() {
		return entities.LedgerEntry{}, ErrAdminOnly
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.LedgerEntry{}, ErrLedgerNotFound
	}
	if status != entities.LedgerStatusPendente && status != entities.LedgerStatusPago {
		return entities.LedgerEntry{}, ErrLedgerInvalidStatus
	}
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	now := u.now()
	var paidAt time.Time
	if status == entities.LedgerStatusPago {
		paidAt = now
	}
	updated, err := u.repo.UpdateStatus(ctx, id, status, paidAt, now)
	if err != nil {
		return entities.LedgerEntry{}, u.failed("financeiro", "update status", err)
	}
	if updated.ID == "" {
		return entities.LedgerEntry{}, ErrLedgerNotFound
	}
	log.Printf("[financeiro][usecase] status updated id=%s status=%s", id, status)
	return updated, nil
}

func filterLedger(items []entities.LedgerEntry, f LedgerFilter) []entities.LedgerEntry {
	out := make([]entities.LedgerEntry, 0, len(items))
	for _, e := range items {
		if f.Mes != 0 && e.Mes != f.Mes {
			continue
		}
		if f.Ano != 0 && e.Ano != f.Ano {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ano != out[j].Ano {
			return out[i].Ano > out[j].Ano
		}
		if out[i].Mes != out[j].Mes {
			return out[i].Mes > out[j].Mes
		}
		return out[i].TransportadoraID < out[j].TransportadoraID
	})
	return out
}
