package statictoken

import (
	"context"
	"fmt"
	"strings"

	"github.com/birdielabs/caddie-api/internal/domain/user"
	"github.com/birdielabs/caddie-api/internal/usecase"
)

// Verifier resolves bearer tokens against a fixed token-to-user map loaded
// from configuration. It covers local development and staging setups that
// run without an account service.
type Verifier struct {
	tokens map[string]string
}

func NewVerifier(tokens map[string]string) *Verifier {
	out := make(map[string]string, len(tokens))
	for token, userID := range tokens {
		token = strings.TrimSpace(token)
		userID = strings.TrimSpace(userID)
		if token == "" || userID == "" {
			continue
		}
		out[token] = userID
	}

	return &Verifier{tokens: out}
}

func (v *Verifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	userID, ok := v.tokens[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown access token", usecase.ErrUnauthorized)
	}

	return user.Principal{UserID: userID}, nil
}
