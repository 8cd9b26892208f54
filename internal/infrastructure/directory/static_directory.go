package directory

import (
	"context"
	"fmt"
	"os"
	"sync"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"

	"gopkg.in/yaml.v3"
)

// SeedUser is one entry of the yaml directory seed.
type SeedUser struct {
	entities.User    `yaml:",inline"`
	AutorizadoBoleto bool                     `yaml:"autorizado_boleto"`
	RegistroFiscal   entities.TaxRegistration `yaml:"registro_fiscal"`
}

type seedFile struct {
	Usuarios []SeedUser `yaml:"usuarios"`
}

// StaticDirectory serves the directory from memory, loaded from a yaml seed
// for local runs and used directly by tests.
type StaticDirectory struct {
	mu    sync.RWMutex
	users map[string]SeedUser
}

var _ interfaces.IUserDirectory = (*StaticDirectory)(nil)

func NewStaticDirectory(users ...SeedUser) *StaticDirectory {
	d := &StaticDirectory{users: make(map[string]SeedUser, len(users))}
	for _, u := range users {
		d.Put(u)
	}
	return d
}

// LoadStaticDirectory reads a seed file shaped as {usuarios: [...]}.
func LoadStaticDirectory(path string) (*StaticDirectory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read directory seed %s: %w", path, err)
	}
	return ParseStaticDirectory(raw)
}

func ParseStaticDirectory(raw []byte) (*StaticDirectory, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse directory seed: %w", err)
	}
	for i, u := range f.Usuarios {
		if u.ID == "" {
			return nil, fmt.Errorf("parse directory seed: usuario %d without id", i)
		}
	}
	return NewStaticDirectory(f.Usuarios...), nil
}

func (d *StaticDirectory) Put(u SeedUser) {
	d.mu.Lock()
	d.users[u.ID] = u
	d.mu.Unlock()
}

func (d *StaticDirectory) get(id string) (SeedUser, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[id]
	return u, ok
}

func (d *StaticDirectory) GetUser(ctx context.Context, id string) (entities.User, error) {
	if err := ctx.Err(); err != nil {
		return entities.User{}, err
	}
	u, _ := d.get(id)
	return u.User, nil
}

func (d *StaticDirectory) GetShipperCreditAuthorization(ctx context.Context, shipperID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	u, _ := d.get(shipperID)
	return u.AutorizadoBoleto, nil
}

func (d *StaticDirectory) GetCarrierTaxRegistration(ctx context.Context, carrierID string) (entities.TaxRegistration, error) {
	if err := ctx.Err(); err != nil {
		return entities.TaxRegistration{}, err
	}
	u, _ := d.get(carrierID)
	return u.RegistroFiscal, nil
}
