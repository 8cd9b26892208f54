package auth

import (
	"errors"
	"fmt"
	"time"

	"cotafrete/internal/usecase/interfaces"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret = errors.New("missing JWT_SECRET")
	ErrInvalidToken  = errors.New("token inválido ou expirado")
)

// Claims carries the subject user id issued by the identity service.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// SubjectID prefers the user_id claim and falls back to sub.
func (c Claims) SubjectID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.RegisteredClaims.Subject
}

// JWTVerifier validates HS256 bearer tokens signed with a shared secret.
type JWTVerifier struct {
	secret []byte
}

var _ interfaces.ICredentialVerifier = (*JWTVerifier)(nil)

func NewJWTVerifier(secret string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &JWTVerifier{secret: []byte(secret)}, nil
}

func (v *JWTVerifier) Verify(token string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	sub := claims.SubjectID()
	if sub == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return sub, nil
}

// Issue signs a token for userID. The identity service owns issuance in
// production; this is used by local tooling and tests.
func (v *JWTVerifier) Issue(userID string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
