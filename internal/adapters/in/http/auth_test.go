package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-signing-secret")

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func TestActorFromToken(t *testing.T) {
	actorID := kernel.NewUUID()

	t.Run("resolves actor from valid token", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub":  actorID.String(),
			"role": "delivery_partner",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})

		actor, err := actorFromToken(token, testSecret)

		require.NoError(t, err)
		assert.True(t, actor.ID.IsEqual(actorID))
		assert.Equal(t, services.RoleDeliveryPartner, actor.Role)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		token := signToken(t, []byte("other-secret"), jwt.MapClaims{
			"sub":  actorID.String(),
			"role": "admin",
		})

		_, err := actorFromToken(token, testSecret)

		assert.Error(t, err)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub":  actorID.String(),
			"role": "admin",
			"exp":  time.Now().Add(-time.Hour).Unix(),
		})

		_, err := actorFromToken(token, testSecret)

		assert.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub":  actorID.String(),
			"role": "superuser",
		})

		_, err := actorFromToken(token, testSecret)

		assert.Error(t, err)
	})

	t.Run("rejects malformed subject", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub":  "not-a-uuid",
			"role": "admin",
		})

		_, err := actorFromToken(token, testSecret)

		assert.Error(t, err)
	})
}

func TestActorMiddleware(t *testing.T) {
	e := echo.New()
	middleware := ActorMiddleware(testSecret)

	invoke := func(authorization string) (*httptest.ResponseRecorder, services.Actor) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/active", nil)
		if authorization != "" {
			req.Header.Set(echo.HeaderAuthorization, authorization)
		}
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)

		var seen services.Actor
		handler := middleware(func(c echo.Context) error {
			seen = actorFrom(c)
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, handler(ctx))
		return rec, seen
	}

	t.Run("passes authenticated request through", func(t *testing.T) {
		actorID := kernel.NewUUID()
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub":  actorID.String(),
			"role": "admin",
		})

		rec, actor := invoke("Bearer " + token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, actor.ID.IsEqual(actorID))
		assert.Equal(t, services.RoleAdmin, actor.Role)
	})

	t.Run("rejects missing header", func(t *testing.T) {
		rec, _ := invoke("")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects non-bearer scheme", func(t *testing.T) {
		rec, _ := invoke("Basic dXNlcjpwYXNz")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		rec, _ := invoke("Bearer not.a.token")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
