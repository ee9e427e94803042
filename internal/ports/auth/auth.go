// Package auth define lo que el middleware necesita para identificar al
// usuario de un request.
package auth

import "context"

// Claims es la identidad extraída de un token. UserID siempre viene
// informado cuando Verify no devuelve error.
type Claims struct {
	UserID string
	Email  string
}

// Verifier valida un bearer token.
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// VerifierFunc permite usar una función como Verifier.
type VerifierFunc func(ctx context.Context, token string) (Claims, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (Claims, error) {
	return f(ctx, token)
}
