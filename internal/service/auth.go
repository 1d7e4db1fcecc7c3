package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("auth")

// AuthService identifies the owner a request acts for. Session handling lives
// in front of this service; it only accepts an already authenticated user id.
type AuthService struct {
	requireUUID bool
}

func NewAuthService(requireUUID bool) *AuthService {
	return &AuthService{
		requireUUID: requireUUID,
	}
}

type AuthResult struct {
	OwnerID string
}

func (s *AuthService) Identify(ctx context.Context, raw string) (*AuthResult, error) {
	_, span := tracer.Start(ctx, "Auth.Service.Identify")
	defer span.End()

	ownerID := strings.TrimSpace(raw)
	if ownerID == "" {
		err := fmt.Errorf("owner id is missing")
		span.RecordError(err)
		return nil, err
	}

	if s.requireUUID {
		parsed, err := uuid.Parse(ownerID)
		if err != nil {
			span.RecordError(errors.Wrap(err, "owner id is not a uuid"))
			return nil, errors.Wrap(err, "owner id is not a uuid")
		}
		ownerID = parsed.String()
	}

	return &AuthResult{OwnerID: ownerID}, nil
}
