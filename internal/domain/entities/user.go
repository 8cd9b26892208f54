package entities

// UserRole is the actor type resolved from the bearer credential.
type UserRole string

const (
	RoleEmbarcador    UserRole = "embarcador"
	RoleTransportador UserRole = "transportador"
	RoleAdmin         UserRole = "admin"
)

// User is the identity exposed by the user directory collaborator.
type User struct {
	ID    string   `json:"id" yaml:"id"`
	Role  UserRole `json:"role" yaml:"role"`
	Nome  string   `json:"nome" yaml:"nome"`
	Email string   `json:"email,omitempty" yaml:"email"`
}

func (u User) IsShipper() bool { return u.Role == RoleEmbarcador }
func (u User) IsCarrier() bool { return u.Role == RoleTransportador }
func (u User) IsAdmin() bool   { return u.Role == RoleAdmin }

// TaxRegistration is the carrier's tax-document profile.
type TaxRegistration struct {
	Tipo           string `json:"tipo" yaml:"tipo"`
	EhAutonomoCiot bool   `json:"ehAutonomoCiot" yaml:"eh_autonomo_ciot"`
	EmiteCiot      bool   `json:"emiteCiot" yaml:"emite_ciot"`
}

// RequiresCiot reports whether the carrier's documents force prepayment.
func (t TaxRegistration) RequiresCiot() bool {
	return t.EhAutonomoCiot || t.EmiteCiot
}
