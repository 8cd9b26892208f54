package usecase

import (
	"context"
	"log"
	"strings"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase/interfaces"
)

// IIdentityUseCase resolves a bearer credential into the acting user.
type IIdentityUseCase interface {
	Resolve(ctx context.Context, token string) (entities.User, error)
}

type IdentityUseCase struct {
	runtime
	verifier  interfaces.ICredentialVerifier
	directory interfaces.IUserDirectory
}

var _ IIdentityUseCase = (*IdentityUseCase)(nil)

func NewIdentityUseCase(verifier interfaces.ICredentialVerifier, directory interfaces.IUserDirectory) *IdentityUseCase {
	return &IdentityUseCase{runtime: newRuntime(nil, nil), verifier: verifier, directory: directory}
}

func (u *IdentityUseCase) Resolve(ctx context.Context, token string) (entities.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.User{}, ErrUnauthenticated
	}
	userID, err := u.verifier.Verify(token)
	if err != nil || userID == "" {
		log.Printf("[auth][usecase] credential rejected err=%v", err)
		return entities.User{}, ErrUnauthenticated
	}

	ctx, cancel := u.bounded(ctx)
	defer cancel()
	user, err := u.directory.GetUser(ctx, userID)
	if err != nil {
		return entities.User{}, u.failed("auth", "load user", err)
	}
	if user.ID == "" {
		log.Printf("[auth][usecase] unknown subject user_id=%s", userID)
		return entities.User{}, ErrUnauthenticated
	}
	return user, nil
}
