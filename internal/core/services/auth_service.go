package services

import (
	"github.com/vncsmyrnk/pollgate/internal/core/domain"
	"github.com/vncsmyrnk/pollgate/internal/core/ports"
)

// AuthService checks that an instruction was signed by the configured gateway.
type AuthService struct {
	verifier ports.SignatureVerifier
}

func NewAuthService(verifier ports.SignatureVerifier) *AuthService {
	return &AuthService{verifier: verifier}
}

func (s *AuthService) Authenticate(gateway *domain.GatewayConfig, input domain.SignedInput) error {
	if gateway == nil || len(gateway.PublicKey) == 0 {
		return domain.ErrNotInitialized
	}
	if len(input.InputHash) == 0 || len(input.Signature) == 0 {
		return domain.ErrUnauthorized
	}
	if !s.verifier.Verify(gateway.PublicKey, input.InputHash, input.Signature) {
		return domain.ErrUnauthorized
	}
	return nil
}
