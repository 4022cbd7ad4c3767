// Package middleware holds the identity extractor guarding protected
// routes. It is a pure function of the Authorization header and the
// token service: no store round-trip happens during verification.
package middleware

import (
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/api/transport"
)

// UserIDHeader is the request header the gate sets for downstream
// handlers once the token subject is verified.
const UserIDHeader = "X-User-ID"

// Rejection messages mirror the public contract: the two reasons are
// the only signal clients get, and every verification failure collapses
// into the second one.
const (
	msgNoToken      = "Unauthorized - No token provided"
	msgInvalidToken = "Unauthorized - Invalid token"
)

// TokenVerifier verifies a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// BearerAuth returns a middleware that extracts and verifies the
// Authorization bearer token, propagating the verified user id via
// UserIDHeader. Requests without a usable identity are rejected with
// 401 and never reach the wrapped handler.
func BearerAuth(verifier TokenVerifier, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString, ok := extractBearer(ctx)
			if !ok {
				reject(ctx, msgNoToken)
				return
			}

			subject, err := verifier.Verify(tokenString)
			if err != nil {
				// the distinct failure kinds are for the log only
				logger.Warn("token rejected", zap.Error(err))
				reject(ctx, msgInvalidToken)
				return
			}

			// shadow any client-supplied value
			ctx.Request.Header.Set(UserIDHeader, subject)
			next(ctx)
		}
	}
}

func extractBearer(ctx *fasthttp.RequestCtx) (string, bool) {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", false
	}
	return token, true
}

func reject(ctx *fasthttp.RequestCtx, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	body, _ := json.Marshal(transport.ErrorResponse{Error: message})
	ctx.SetBody(body)
}
