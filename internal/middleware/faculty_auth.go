package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/metaview/recordings-ms-go/internal/api_context"
	"github.com/metaview/recordings-ms-go/internal/handler/api"
)

// WithFacultyAuth validates a Bearer JWT issued by the portal and stashes the
// faculty_id claim in the request context. When no public key is configured
// the token is decoded without signature verification, for local setups.
func WithFacultyAuth(jwtPublicKeyPEM string) func(http.Handler) http.Handler {
	if jwtPublicKeyPEM == "" {
		return facultyAuthUnverified()
	}

	pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(jwtPublicKeyPEM))
	if err != nil {
		panic(fmt.Sprintf("invalid portal RSA public key: %v", err))
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}),
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				api.WriteError(w, http.StatusUnauthorized, "missing bearer token", nil)
				return
			}

			raw := strings.TrimPrefix(auth, "Bearer ")
			claims := jwt.MapClaims{}
			tok, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodRS256 {
					return nil, fmt.Errorf("unexpected signing method")
				}
				return pubKey, nil
			})
			if err != nil || !tok.Valid {
				api.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}

			if !claims.VerifyIssuer("portal", true) {
				api.WriteError(w, http.StatusUnauthorized, "bad issuer", nil)
				return
			}
			if !claims.VerifyAudience("recordings", true) {
				api.WriteError(w, http.StatusUnauthorized, "bad audience", nil)
				return
			}
			if !claims.VerifyExpiresAt(time.Now().Unix(), true) {
				api.WriteError(w, http.StatusUnauthorized, "token expired", nil)
				return
			}
			if iat, ok := asInt64(claims["iat"]); ok && time.Unix(iat, 0).After(time.Now().Add(30*time.Second)) {
				api.WriteError(w, http.StatusUnauthorized, "invalid iat", nil)
				return
			}

			facultyID, ok := facultyIDFromClaims(claims)
			if !ok {
				api.WriteError(w, http.StatusUnauthorized, "missing faculty_id", nil)
				return
			}

			ctx := context.WithValue(r.Context(), api_context.AuthFacultyIDKey, facultyID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func facultyAuthUnverified() func(http.Handler) http.Handler {
	parser := jwt.NewParser()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				api.WriteError(w, http.StatusUnauthorized, "missing bearer token", nil)
				return
			}

			claims := jwt.MapClaims{}
			if _, _, err := parser.ParseUnverified(strings.TrimPrefix(auth, "Bearer "), claims); err != nil {
				api.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}

			facultyID, ok := facultyIDFromClaims(claims)
			if !ok {
				api.WriteError(w, http.StatusUnauthorized, "missing faculty_id", nil)
				return
			}

			ctx := context.WithValue(r.Context(), api_context.AuthFacultyIDKey, facultyID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func facultyIDFromClaims(claims jwt.MapClaims) (int64, bool) {
	switch v := claims["faculty_id"].(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return 0, false
		}
		return id, true
	default:
		if id, ok := asInt64(v); ok && id > 0 {
			return id, true
		}
	}
	return 0, false
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case float64:
		return int64(x), true
	case json.Number:
		i, err := x.Int64()
		if err == nil {
			return i, true
		}
	}
	return 0, false
}
