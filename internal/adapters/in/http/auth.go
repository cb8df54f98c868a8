package http

import (
	"net/http"
	"strings"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// ActorMiddleware authenticates requests with an HS256 bearer token and puts
// the resolved services.Actor into the echo context. Tokens carry the actor
// id in "sub" and the role name in "role"; identity management itself lives
// outside this service, we only verify what the token asserts.
func ActorMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing bearer token",
				})
			}

			actor, err := actorFromToken(tokenString, secret)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid bearer token",
				})
			}

			ctx.Set(actorContextKey, actor)
			return next(ctx)
		}
	}
}

func actorFromToken(tokenString string, secret []byte) (services.Actor, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return services.Actor{}, err
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return services.Actor{}, err
	}
	actorID, err := kernel.UUIDFromString(subject)
	if err != nil {
		return services.Actor{}, err
	}

	roleName, _ := claims["role"].(string)
	role, err := services.RoleFromString(roleName)
	if err != nil {
		return services.Actor{}, err
	}

	return services.Actor{ID: actorID, Role: role}, nil
}

func actorFrom(ctx echo.Context) services.Actor {
	actor, _ := ctx.Get(actorContextKey).(services.Actor)
	return actor
}
