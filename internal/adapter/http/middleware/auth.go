package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"ingressos_checkout/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const sessionContextKey = "checkout.session"

var errAuthNotConfigured = errors.New("session secret not configured")

// SessionClaims are the claims issued by the backend auth service.
type SessionClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Session is the verified identity attached to a request.
type Session struct {
	UserID string
	Email  string
	Role   string
}

// OptionalAuth verifies a bearer token when one is sent. Requests without a
// token go through as guests; a token that fails verification is rejected.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		session, err := ParseSession(raw, secret)
		if err != nil {
			log.Printf("[checkout][auth] rejected token path=%s err=%v", c.FullPath(), err)
			appErr := pkg.NewDomainErrorSimple("INVALID_SESSION", "Invalid or expired session", http.StatusUnauthorized)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// RequireRole only lets through sessions carrying the given role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFromContext(c)
		if !ok {
			appErr := pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		if session.Role != role {
			appErr := pkg.NewDomainErrorSimple("FORBIDDEN", "Not allowed", http.StatusForbidden)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.Next()
	}
}

func SessionFromContext(c *gin.Context) (Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok && s.UserID != ""
}

// ParseSession validates an HS256 token and returns its subject as the user id.
func ParseSession(raw, secret string) (Session, error) {
	if secret == "" {
		return Session{}, errAuthNotConfigured
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Session{}, err
	}
	if !token.Valid {
		return Session{}, jwt.ErrTokenSignatureInvalid
	}

	sub, err := claims.GetSubject()
	if err != nil || strings.TrimSpace(sub) == "" {
		return Session{}, jwt.ErrTokenInvalidSubject
	}
	return Session{UserID: sub, Email: claims.Email, Role: claims.Role}, nil
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[7:])
	return token, token != ""
}
