package testutil

import (
	"context"
	"net/http"

	id "legatia/pkg/domain"
	"legatia/pkg/requestcontext"
)

// WithUserID authenticates req the way the bearer middleware would. An
// unparseable id leaves the request anonymous.
func WithUserID(req *http.Request, userID string) *http.Request {
	if parsedUserID, err := id.ParseUserID(userID); err == nil {
		return req.WithContext(requestcontext.WithUserID(req.Context(), parsedUserID))
	}
	return req
}

// AsUser returns ctx authenticated as userID.
func AsUser(ctx context.Context, userID id.UserID) context.Context {
	return requestcontext.WithUserID(ctx, userID)
}
