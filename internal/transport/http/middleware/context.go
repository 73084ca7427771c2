package middleware

import (
	"context"

	"promoback/internal/domain/promoter"
)

type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyPrincipal
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(ctxKeyRequestID).(string)
	return requestID
}

func WithPrincipal(ctx context.Context, p promoter.Promoter) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

func GetPrincipal(ctx context.Context) (promoter.Promoter, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal).(promoter.Promoter)
	return p, ok
}
