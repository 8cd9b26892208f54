package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"cotafrete/internal/domain/entities"
	"cotafrete/internal/usecase"
	"cotafrete/pkg"

	"github.com/gin-gonic/gin"
)

const userKey = "cotafrete.user"

// BearerToken extracts the credential from the Authorization header, falling
// back to the `token` query parameter used by websocket clients.
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

// Authenticate resolves the bearer credential and stores the acting user in
// the gin context. Unresolvable identities are rejected with 401.
func Authenticate(identity usecase.IIdentityUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := identity.Resolve(c.Request.Context(), BearerToken(c.Request))
		if err != nil {
			log.Printf("[auth][middleware] rejected path=%s err=%v", c.FullPath(), err)
			appErr := pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Token ausente ou inválido", http.StatusUnauthorized)
			var ue *usecase.Error
			if errors.As(err, &ue) && ue.Kind == usecase.KindDependencyTimeout {
				appErr = pkg.NewRetryableError("DEPENDENCY_TIMEOUT", ue.Message, err, http.StatusServiceUnavailable)
			}
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		SetUser(c, user)
		c.Next()
	}
}

func SetUser(c *gin.Context, u entities.User) {
	c.Set(userKey, u)
}

// CurrentUser returns the authenticated actor; the zero User when the route
// is not behind Authenticate.
func CurrentUser(c *gin.Context) entities.User {
	v, ok := c.Get(userKey)
	if !ok {
		return entities.User{}
	}
	u, _ := v.(entities.User)
	return u
}
