package middleware

import "context"

type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}
