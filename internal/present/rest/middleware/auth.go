package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/jobtrack/internal/domain"
	"github.com/totegamma/jobtrack/internal/present/rest/presenter"
	"github.com/totegamma/jobtrack/internal/service"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

// IdentifyOwner resolves the owner from the x-owner-id header, or the owner
// query parameter for websocket upgrades, and stores it on the echo context.
// Requests without an owner are rejected.
func (s *AuthMiddleware) IdentifyOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyOwner")
		defer span.End()

		raw := c.Request().Header.Get(domain.OwnerIDHeader)
		if raw == "" {
			raw = c.QueryParam("owner")
		}

		result, err := s.auth.Identify(ctx, raw)
		if err != nil {
			span.RecordError(errors.Wrap(err, "AuthMiddleware.IdentifyOwner: s.auth.Identify failed"))
			return presenter.Unauthorized(c, err.Error())
		}

		span.SetAttributes(attribute.String("OwnerId", result.OwnerID))
		c.Set(domain.OwnerIDCtxKey, result.OwnerID)
		return next(c)
	}
}

// OwnerOf returns the owner stored by IdentifyOwner.
func OwnerOf(c echo.Context) string {
	owner, _ := c.Get(domain.OwnerIDCtxKey).(string)
	return owner
}
