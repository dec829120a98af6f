package http

import (
	"context"
	"strings"
	"time"

	"freight/internal/core/domain/model/actor"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type actorContextKey struct{}

// Claims is the token payload. The subject is the actor id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for who, valid for ttl from now.
func IssueToken(secret []byte, who actor.Actor, ttl time.Duration, now time.Time) (string, error) {
	if err := who.Validate(); err != nil {
		return "", err
	}
	if len(secret) == 0 {
		return "", errs.NewValueIsRequiredError("secret")
	}

	claims := Claims{
		Role: who.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   who.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies raw and resolves the actor it names.
func ParseToken(secret []byte, raw string) (actor.Actor, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return actor.Actor{}, errs.NewUnauthorizedError(err.Error())
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return actor.Actor{}, errs.NewUnauthorizedError("token subject is not an actor id")
	}
	role, err := actor.RoleFromString(claims.Role)
	if err != nil {
		return actor.Actor{}, errs.NewUnauthorizedError("token role is unknown")
	}
	return actor.NewActor(id, role)
}

// JWTAuth resolves the bearer token into an actor and stores it on the
// request context. Requests without a valid token never reach a handler.
func JWTAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || raw == "" {
				return errs.NewUnauthorizedError("missing bearer token")
			}

			who, err := ParseToken(secret, raw)
			if err != nil {
				return err
			}

			req := c.Request()
			c.SetRequest(req.WithContext(WithActor(req.Context(), who)))
			return next(c)
		}
	}
}

func WithActor(ctx context.Context, who actor.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, who)
}

// ActorFrom returns the authenticated actor, or an unauthorized error when
// the request bypassed JWTAuth.
func ActorFrom(ctx context.Context) (actor.Actor, error) {
	who, ok := ctx.Value(actorContextKey{}).(actor.Actor)
	if !ok {
		return actor.Actor{}, errs.NewUnauthorizedError("no actor on request")
	}
	return who, who.Validate()
}
