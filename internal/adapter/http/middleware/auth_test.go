package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "super-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims SessionClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func validClaims(role string) SessionClaims {
	return SessionClaims{
		Email: "ana@example.com",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user789",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func newAuthRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{OptionalAuth(testSecret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		s, ok := SessionFromContext(c)
		if !ok {
			c.String(http.StatusOK, "guest")
			return
		}
		c.String(http.StatusOK, s.UserID+"|"+s.Email+"|"+s.Role)
	})
	r.GET("/who", handlers...)
	return r
}

func do(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOptionalAuth(t *testing.T) {
	r := newAuthRouter()

	t.Run("no token is a guest", func(t *testing.T) {
		w := do(r, "")
		if w.Code != http.StatusOK || w.Body.String() != "guest" {
			t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("valid token", func(t *testing.T) {
		w := do(r, signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("authenticated")))
		if w.Code != http.StatusOK || w.Body.String() != "user789|ana@example.com|authenticated" {
			t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		w := do(r, signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims("authenticated")))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("expired", func(t *testing.T) {
		claims := validClaims("authenticated")
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		w := do(r, signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := validClaims("authenticated")
		claims.Subject = ""
		w := do(r, signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("other algorithm", func(t *testing.T) {
		w := do(r, signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims("authenticated")))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	r := newAuthRouter(RequireRole("admin"))

	if w := do(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for guests, got %d", w.Code)
	}
	if w := do(r, signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("authenticated"))); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if w := do(r, signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("admin"))); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}
}

func TestParseSession_NoSecret(t *testing.T) {
	if _, err := ParseSession("anything", ""); err == nil {
		t.Fatalf("expected error without secret")
	}
}
