package middleware

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/taskhive/backend/internal/token"
)

type staticVerifier struct {
	subject string
	err     error
}

func (v staticVerifier) Verify(string) (string, error) {
	return v.subject, v.err
}

func runGate(t *testing.T, verifier TokenVerifier, authorization string) (*fasthttp.RequestCtx, bool) {
	t.Helper()

	reached := false
	next := func(ctx *fasthttp.RequestCtx) { reached = true }
	gate := BearerAuth(verifier, nil)(next)

	ctx := &fasthttp.RequestCtx{}
	if authorization != "" {
		ctx.Request.Header.Set("Authorization", authorization)
	}
	gate(ctx)
	return ctx, reached
}

func errorBody(t *testing.T, ctx *fasthttp.RequestCtx) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("response body is not JSON: %v", err)
	}
	return body.Error
}

func TestBearerAuthRejections(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
		verifier      TokenVerifier
		wantMessage   string
	}{
		{
			name:          "missing header",
			authorization: "",
			verifier:      staticVerifier{subject: "user-1"},
			wantMessage:   "Unauthorized - No token provided",
		},
		{
			name:          "wrong scheme",
			authorization: "Basic dXNlcjpwYXNz",
			verifier:      staticVerifier{subject: "user-1"},
			wantMessage:   "Unauthorized - No token provided",
		},
		{
			name:          "empty bearer token",
			authorization: "Bearer ",
			verifier:      staticVerifier{subject: "user-1"},
			wantMessage:   "Unauthorized - No token provided",
		},
		{
			name:          "verification failure",
			authorization: "Bearer some.jwt.token",
			verifier:      staticVerifier{err: errors.New("boom")},
			wantMessage:   "Unauthorized - Invalid token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, reached := runGate(t, tt.verifier, tt.authorization)
			if reached {
				t.Fatal("handler must not run on rejection")
			}
			if got := ctx.Response.StatusCode(); got != fasthttp.StatusUnauthorized {
				t.Errorf("status = %d, want 401", got)
			}
			if got := errorBody(t, ctx); got != tt.wantMessage {
				t.Errorf("error = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestBearerAuthSuccessPropagatesSubject(t *testing.T) {
	ctx, reached := runGate(t, staticVerifier{subject: "user-7"}, "Bearer any.jwt.here")
	if !reached {
		t.Fatal("handler should run for a valid token")
	}
	if got := string(ctx.Request.Header.Peek(UserIDHeader)); got != "user-7" {
		t.Errorf("%s = %q, want %q", UserIDHeader, got, "user-7")
	}
}

func TestBearerAuthShadowsClientSuppliedIdentity(t *testing.T) {
	next := func(ctx *fasthttp.RequestCtx) {}
	gate := BearerAuth(staticVerifier{subject: "real-user"}, nil)(next)

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("Authorization", "Bearer any.jwt.here")
	ctx.Request.Header.Set(UserIDHeader, "spoofed-user")
	gate(ctx)

	if got := string(ctx.Request.Header.Peek(UserIDHeader)); got != "real-user" {
		t.Errorf("%s = %q, want the verified subject", UserIDHeader, got)
	}
}

// End-to-end against the real token service: expired, tampered and
// missing tokens must be indistinguishable at the response level apart
// from the missing-header message.
func TestBearerAuthWithTokenService(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := token.NewService("gate-secret", "taskhive", time.Hour, token.WithClock(func() time.Time { return clock }))

	valid, err := svc.Issue("user-9")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	expiredSvc := token.NewService("gate-secret", "taskhive", time.Hour, token.WithClock(func() time.Time { return clock.Add(-2 * time.Hour) }))
	expired, err := expiredSvc.Issue("user-9")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// flip a character well inside the signature segment; the final char
	// carries unused bits that base64 decoding would discard
	pos := len(valid) - 5
	flip := byte('A')
	if valid[pos] == 'A' {
		flip = 'B'
	}
	tampered := valid[:pos] + string(flip) + valid[pos+1:]

	ctx, reached := runGate(t, svc, "Bearer "+valid)
	if !reached {
		t.Fatalf("valid token rejected: %s", ctx.Response.Body())
	}

	for name, tok := range map[string]string{"expired": expired, "tampered": tampered, "garbage": "junk"} {
		t.Run(name, func(t *testing.T) {
			ctx, reached := runGate(t, svc, "Bearer "+tok)
			if reached {
				t.Fatal("handler must not run")
			}
			if got := ctx.Response.StatusCode(); got != fasthttp.StatusUnauthorized {
				t.Errorf("status = %d, want 401", got)
			}
			if got := errorBody(t, ctx); got != "Unauthorized - Invalid token" {
				t.Errorf("error = %q: rejection reasons must not leak", got)
			}
		})
	}
}
