package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/auth"
	httputil "github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/http"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/logger"
)

const ClaimsKey contextKey = "auth_claims"

// Failure payloads are deliberately fixed and uninformative: the status
// code is the only distinction a caller gets between "bad token" and
// "wrong owner".
const (
	msgUnauthorized = "unauthorized access"
	msgForbidden    = "forbidden access"
)

// Authenticate verifies the bearer token and attaches the decoded claims
// to the request context. It is the first gate of the owner-scoped chain;
// route registration composes it in front of RequireBookingOwner.
func Authenticate(verifier *auth.TokenVerifier, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeAuthFailure(w, log, r, http.StatusUnauthorized, "missing Authorization header")
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				writeAuthFailure(w, log, r, http.StatusUnauthorized, "malformed Authorization header")
				return
			}

			claims, err := verifier.Verify(tokenString)
			if err != nil {
				writeAuthFailure(w, log, r, http.StatusUnauthorized, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

// RequireBookingOwner is the second gate: the email query parameter must
// match the verified identity exactly. It assumes Authenticate already ran.
func RequireBookingOwner(log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeAuthFailure(w, log, r, http.StatusUnauthorized, "no verified identity on request")
				return
			}

			// strict, case-sensitive equality
			if r.URL.Query().Get("email") != claims.Email {
				writeAuthFailure(w, log, r, http.StatusForbidden, "email does not match token identity")
				return
			}

			next(w, r, ps)
		}
	}
}

func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims, ok
}

func writeAuthFailure(w http.ResponseWriter, log *logger.Logger, r *http.Request, status int, reason string) {
	log.Warn("Request rejected by access control",
		"request_id", requestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"status", status,
		"reason", reason,
	)

	msg := msgUnauthorized
	if status == http.StatusForbidden {
		msg = msgForbidden
	}

	if err := httputil.WriteMessage(w, status, msg); err != nil {
		log.Error("failed to write auth failure response", "error", err)
	}
}
