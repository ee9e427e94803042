package middleware

import (
	"context"
	"net/http"
	"strings"

	"tingrrr/internal/platform/logger"
	"tingrrr/internal/platform/metrics"
	"tingrrr/internal/ports/auth"
)

// DebugUserHeader identifica al usuario cuando no hay verifier configurado.
const DebugUserHeader = "X-Debug-User-ID"

type ctxKey string

const claimsKey ctxKey = "claims"

// AuthContext resuelve quién hace el request y deja las claims en el context.
// Nunca corta el request: un token inválido se trata como anónimo y cada
// handler decide si exige identidad.
//
// Con verifier nil se acepta DebugUserHeader; con verifier solo cuenta el
// bearer token.
func AuthContext(verifier auth.Verifier, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"component": "auth"})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, source := resolveClaims(r, verifier, log)
			metrics.AuthResolutions.WithLabelValues(source).Inc()

			if claims.UserID == "" {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveClaims(r *http.Request, verifier auth.Verifier, log logger.Logger) (auth.Claims, string) {
	if verifier == nil {
		if uid := strings.TrimSpace(r.Header.Get(DebugUserHeader)); uid != "" {
			return auth.Claims{UserID: uid}, "debug_header"
		}
		return auth.Claims{}, "anonymous"
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, "anonymous"
	}

	claims, err := verifier.Verify(r.Context(), token)
	if err != nil || strings.TrimSpace(claims.UserID) == "" {
		log.Debug("bearer token rejected", map[string]any{
			"path": r.URL.Path,
			"err":  err,
		})
		return auth.Claims{}, "rejected"
	}
	return claims, "token"
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

// UserID devuelve el usuario autenticado o "" si el request es anónimo.
func UserID(ctx context.Context) string {
	c, _ := GetClaims(ctx)
	return c.UserID
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
