package auth

import (
	"bytes"
	"crypto/subtle"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/hmzza/NoballSportsClub/internal/config"
)

var (
	handlersOnce sync.Once
	appConfig    *config.Config
	store        *Store
)

// InitHandlers wires the login handlers to configuration and returns the
// shared session store.
func InitHandlers(cfg *config.Config) *Store {
	handlersOnce.Do(func() {
		appConfig = cfg
		secure := cfg.App.Environment != "development"
		store = NewStore(cfg.Admin.SessionTTL(), secure)
	})
	return store
}

// Sessions returns the shared store; nil before InitHandlers.
func Sessions() *Store { return store }

// HandleLoginPage renders the admin login form.
func HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if store != nil && store.Valid(r) {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}
	renderLoginForm(w, "")
}

// HandleLogin checks the submitted credential against configuration and
// starts a session.
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(appConfig.Admin.Username)) == 1
	passOK := VerifyPassword(appConfig.Admin.PasswordHash, password)
	if !userOK || !passOK {
		logger.Warn().Str("username", username).Msg("Admin login rejected")
		w.WriteHeader(http.StatusUnauthorized)
		renderLoginForm(w, "Invalid username or password")
		return
	}

	if err := store.Create(w, username); err != nil {
		logger.Error().Err(err).Msg("Failed to create admin session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	logger.Info().Str("username", username).Msg("Admin logged in")
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// HandleLogout ends the session and returns to the login page.
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	if store != nil {
		store.Clear(w, r)
	}
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

func renderLoginForm(w http.ResponseWriter, errorMsg string) {
	var buf bytes.Buffer
	buf.WriteString(`<div class="login-container"><h1>Admin Login</h1>`)
	if errorMsg != "" {
		buf.WriteString(`<div class="login-error">`)
		buf.WriteString(errorMsg)
		buf.WriteString(`</div>`)
	}
	buf.WriteString(`<form method="post" action="/admin/login">
  <label for="username">Username</label>
  <input type="text" id="username" name="username" required autofocus/>
  <label for="password">Password</label>
  <input type="password" id="password" name="password" required/>
  <button type="submit">Sign In</button>
</form></div>`)

	w.Header().Set("Content-Type", "text/html")
	w.Write(buf.Bytes())
}
