package handlers

import (
	"context"

	"wanderstay/internal/models"
)

type ctxKeyUser struct{}
type ctxKeySessionID struct{}

func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser{}, user)
}

// UserFrom returns the authenticated user for the request, if any. Every
// operation that needs ownership or authorship reads this explicitly; there
// is no ambient global.
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(ctxKeyUser{}).(models.User)
	return user, ok && user.ID != 0
}

func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxKeySessionID{}, sid)
}

func SessionIDFrom(ctx context.Context) string {
	sid, _ := ctx.Value(ctxKeySessionID{}).(string)
	return sid
}
