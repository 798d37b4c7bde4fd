// Package auth carries the optional authenticated user id through a request context.
package auth

import "context"

type userIDKey struct{}

// WithUserID returns a copy of ctx identifying the logged-in user.
// A zero id leaves ctx anonymous.
func WithUserID(ctx context.Context, id uint) context.Context {
	if id == 0 {
		return ctx
	}
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserID returns the logged-in user id, if any.
func UserID(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDKey{}).(uint)
	return id, ok && id != 0
}
