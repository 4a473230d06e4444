package auth

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	gorillasessions "github.com/gorilla/sessions"
	"github.com/jimdaga/rep-tracker/internal/config"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
)

// SessionName is the cookie holding the signed application session
const SessionName = "rep_tracker_session"

const sessionMaxAge = 86400 * 30

// InitProviders initializes Goth OAuth providers
func InitProviders(cfg *config.Config) {
	// Gothic keeps the OAuth state in its own gorilla/sessions store,
	// separate from the application session. The default has Secure=true
	// which breaks localhost (plain HTTP).
	gothStore := gorillasessions.NewCookieStore([]byte(cfg.SessionSecret))
	gothStore.Options = &gorillasessions.Options{
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	gothic.Store = gothStore

	if cfg.GoogleClientID == "" {
		slog.Warn("GOOGLE_CLIENT_ID not set. OAuth login will not work until credentials are configured.")
		return
	}

	goth.UseProviders(
		google.New(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleCallbackURL,
			"email",
			"profile",
		),
	)

	slog.Info("Goth providers initialized", "providers", "google")
}

// NewSessionStore returns the signed cookie store backing the application
// session. Cookies older than 30 days fail signature validation.
func NewSessionStore(cfg *config.Config) sessions.Store {
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// IdentityProvider performs the federated login handshake
type IdentityProvider interface {
	// BeginAuth redirects the browser to the provider's consent page.
	BeginAuth(w http.ResponseWriter, r *http.Request)
	// CompleteAuth exchanges the callback's authorization code for the
	// provider's view of the user.
	CompleteAuth(w http.ResponseWriter, r *http.Request) (goth.User, error)
}

// GothicProvider drives a goth provider through gothic
type GothicProvider struct {
	Name string
}

func (p GothicProvider) BeginAuth(w http.ResponseWriter, r *http.Request) {
	gothic.BeginAuthHandler(w, p.withProvider(r))
}

func (p GothicProvider) CompleteAuth(w http.ResponseWriter, r *http.Request) (goth.User, error) {
	return gothic.CompleteUserAuth(w, p.withProvider(r))
}

// withProvider adds the "provider" query parameter gothic requires
func (p GothicProvider) withProvider(r *http.Request) *http.Request {
	q := r.URL.Query()
	q.Set("provider", p.Name)
	r.URL.RawQuery = q.Encode()
	return r
}
