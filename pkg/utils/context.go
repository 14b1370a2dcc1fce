package utils

import (
	"context"

	"content-review/internal/auth"
)

type contextKey string

const (
	ActorKey contextKey = "actor"
	TokenKey contextKey = "token"
)

// SetActorContext stores the authenticated actor for the request
func SetActorContext(ctx context.Context, actor *auth.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// GetActorFromContext returns the authenticated actor, or nil for anonymous requests
func GetActorFromContext(ctx context.Context) (*auth.Actor, bool) {
	actorVal := ctx.Value(ActorKey)
	if actorVal == nil {
		return nil, false
	}

	actor, ok := actorVal.(*auth.Actor)
	if !ok || actor == nil {
		return nil, false
	}

	return actor, true
}

// SetTokenContext stores the raw bearer token for the request
func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}
