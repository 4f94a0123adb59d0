package service

import (
	"context"

	"github.com/jpvieira/borga/internal/errs"
	"github.com/jpvieira/borga/internal/storage"
)

// authorize checks that the bearer token resolves to the userId the
// request targets. It runs before any validation or storage access, so
// an unauthenticated caller learns nothing about existing state.
func authorize(ctx context.Context, store storage.Store, token, userID string) error {
	if token == "" {
		return errs.Unauthenticated("missing token")
	}
	resolved, err := store.UserIDForToken(ctx, token)
	if err != nil {
		return err
	}
	if resolved == "" || resolved != userID {
		return errs.Unauthenticated("token does not match user", "userId", userID)
	}
	return nil
}
