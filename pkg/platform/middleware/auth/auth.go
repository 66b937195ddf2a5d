package auth

import (
	"log/slog"
	"net/http"
	"strings"

	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/platform/httputil"
	request "legatia/pkg/platform/middleware/request"
	"legatia/pkg/requestcontext"
)

// JWTValidator defines the interface for validating bearer tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims are the claims the middleware needs from a validated token.
type JWTClaims struct {
	UserID string
	JTI    string
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's user id in the request context.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := request.GetRequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.NewWithReason(dErrors.CodeUnauthorized,
					dErrors.ReasonNotAuthenticated, "Missing or invalid Authorization header"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.NewWithReason(dErrors.CodeUnauthorized,
					dErrors.ReasonNotAuthenticated, "Invalid or expired token"))
				return
			}

			userID, err := id.ParseUserID(claims.UserID)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - token without user id",
					"jti", claims.JTI,
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.NewWithReason(dErrors.CodeUnauthorized,
					dErrors.ReasonNotAuthenticated, "Invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithUserID(ctx, userID)))
		})
	}
}
