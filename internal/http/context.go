package http

import "context"

type contextKey string

const (
	userIDContextKey   contextKey = "user_id"
	showerIDContextKey contextKey = "shower_id"
	usernameContextKey contextKey = "username"
)

// ContextWithUserID injects the raw user identifier resolved from the
// request path.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext extracts a user identifier previously associated with
// the context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDContextKey).(string)
	return id, ok
}

// ContextWithShowerID injects the raw shower identifier resolved from the
// request path.
func ContextWithShowerID(ctx context.Context, showerID string) context.Context {
	return context.WithValue(ctx, showerIDContextKey, showerID)
}

// ShowerIDFromContext extracts a shower identifier previously associated
// with the context.
func ShowerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(showerIDContextKey).(string)
	return id, ok
}

// ContextWithUsername injects the username resolved from the request path.
func ContextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameContextKey, username)
}

// UsernameFromContext extracts a username previously associated with the
// context.
func UsernameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(usernameContextKey).(string)
	return name, ok
}
