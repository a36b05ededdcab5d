package server

import (
	"context"

	"github.com/scanbook/scanbook/pkg/domain/types"
)

type ctxUserIDKey struct{}

func ctxWithUserID(ctx context.Context, userID types.UserID) context.Context {
	return context.WithValue(ctx, ctxUserIDKey{}, userID)
}

// userIDFromCtx returns the authenticated user ID set by the authenticate
// middleware.
func userIDFromCtx(ctx context.Context) (types.UserID, bool) {
	userID, ok := ctx.Value(ctxUserIDKey{}).(types.UserID)
	return userID, ok && userID != ""
}
