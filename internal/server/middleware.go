package server

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"tailscale.com/client/tailscale/apitype"
)

// APIKeyAuth returns middleware that validates the X-API-Key header.
func APIKeyAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				writeJSON(w, http.StatusUnauthorized, errorBody("missing API key"))
				return
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				writeJSON(w, http.StatusForbidden, errorBody("invalid API key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogging returns the middleware chain that attaches log to each
// request context, tags it with a request ID and logs one access line.
func RequestLogging(log zerolog.Logger) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		hlog.NewHandler(log),
		hlog.RequestIDHandler("req_id", "X-Request-Id"),
		hlog.RemoteAddrHandler("ip"),
		hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			hlog.FromRequest(r).Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("request")
		}),
	}
}

// CORS allows browser clients from origins. An empty list allows any origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-API-Key"},
	}).Handler
}

// WhoIser resolves a tailnet peer address to its identity.
type WhoIser interface {
	WhoIs(ctx context.Context, remoteAddr string) (*apitype.WhoIsResponse, error)
}

// UserInfo is the identity of the caller.
type UserInfo struct {
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

type ctxKey int

const userInfoKey ctxKey = iota

var localUser = UserInfo{Login: "local", DisplayName: "Local User"}

// identity resolves the tailnet caller when Tailscale is enabled. Requests
// served without tsnet are attributed to the local user.
func (s *Server) identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := localUser
		if s.whois != nil {
			who, err := s.whois.WhoIs(r.Context(), r.RemoteAddr)
			if err != nil || who == nil || who.UserProfile == nil {
				hlog.FromRequest(r).Warn().Err(err).Msg("tailscale whois failed")
				writeJSON(w, http.StatusUnauthorized, errorBody("unknown tailnet peer"))
				return
			}
			info = UserInfo{Login: who.UserProfile.LoginName, DisplayName: who.UserProfile.DisplayName}
		}
		hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("user", info.Login)
		})
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userInfoKey, info)))
	})
}

func userInfoFromContext(r *http.Request) UserInfo {
	if info, ok := r.Context().Value(userInfoKey).(UserInfo); ok {
		return info
	}
	return localUser
}
