package directory

import (
	"context"
	"errors"
	"log"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Usuario is the directory row owned by the profile service.
type Usuario struct {
	ID               string `gorm:"primaryKey;size:64"`
	Tipo             string `gorm:"size:32;not null;index"`
	Nome             string `gorm:"size:255;not null"`
	Email            string `gorm:"size:255"`
	AutorizadoBoleto bool   `gorm:"not null;default:false"`

	PerfilTransportadora *PerfilTransportadora `gorm:"foreignKey:UsuarioID"`
}

func (Usuario) TableName() string { return "usuarios" }

// PerfilTransportadora holds the carrier's tax-document profile.
type PerfilTransportadora struct {
	ID                uint   `gorm:"primaryKey"`
	UsuarioID         string `gorm:"size:64;not null;uniqueIndex"`
	TipoTransportador string `gorm:"size:64"`
	EhAutonomoCiot    bool   `gorm:"not null;default:false"`
	EmiteCiot         bool   `gorm:"not null;default:false"`
}

func (PerfilTransportadora) TableName() string { return "perfis_transportadora" }

// GormDirectory reads users and carrier profiles from postgres.
type GormDirectory struct {
	DB *gorm.DB
}

var _ interfaces.IUserDirectory = (*GormDirectory)(nil)

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{DB: db}
}

// OpenGormDirectory connects to DIRECTORY_DSN and migrates the directory tables.
func OpenGormDirectory(dsn string) (*GormDirectory, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		log.Printf("[directory][gorm] connect failed err=%v", err)
		return nil, err
	}
	if err := Migrate(db); err != nil {
		log.Printf("[directory][gorm] migrate failed err=%v", err)
		return nil, err
	}
	log.Printf("[directory][gorm] connected")
	return NewGormDirectory(db), nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{}, &PerfilTransportadora{})
}

func (d *GormDirectory) GetUser(ctx context.Context, id string) (entities.User, error) {
	u, err := d.find(ctx, id, false)
	if err != nil || u == nil {
		return entities.User{}, err
	}
	return u.toUser(), nil
}

func (d *GormDirectory) GetShipperCreditAuthorization(ctx context.Context, shipperID string) (bool, error) {
	u, err := d.find(ctx, shipperID, false)
	if err != nil || u == nil {
		return false, err
	}
	return u.AutorizadoBoleto, nil
}

func (d *GormDirectory) GetCarrierTaxRegistration(ctx context.Context, carrierID string) (entities.TaxRegistration, error) {
	u, err := d.find(ctx, carrierID, true)
	if err != nil || u == nil {
		return entities.TaxRegistration{}, err
	}
	return u.taxRegistration(), nil
}

func (d *GormDirectory) find(ctx context.Context, id string, withProfile bool) (*Usuario, error) {
	q := d.DB.WithContext(ctx)
	if withProfile {
		q = q.Preload("PerfilTransportadora")
	}
	var u Usuario
	if err := q.Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[directory][gorm] lookup failed user_id=%s err=%v", id, err)
		return nil, err
	}
	return &u, nil
}

func (u Usuario) toUser() entities.User {
	return entities.User{
		ID:    u.ID,
		Role:  entities.UserRole(u.Tipo),
		Nome:  u.Nome,
		Email: u.Email,
	}
}

func (u Usuario) taxRegistration() entities.TaxRegistration {
	if u.PerfilTransportadora == nil {
		return entities.TaxRegistration{}
	}
	p := u.PerfilTransportadora
	return entities.TaxRegistration{
		Tipo:           p.TipoTransportador,
		EhAutonomoCiot: p.EhAutonomoCiot,
		EmiteCiot:      p.EmiteCiot,
	}
}
