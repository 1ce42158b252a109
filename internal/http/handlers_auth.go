package httpx

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/newsboard/newsboard/internal/domain/auth"
	"github.com/newsboard/newsboard/internal/service"
)

const errMsgCredentialsRequired = "Email and password are required"

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	UI           *UIHandlers
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// AuthForm holds the re-rendered auth form values. Passwords are never echoed.
type AuthForm struct {
	Email string
	Name  string
}

// authView is what the auth form renders with.
type authView struct {
	Mode   domainauth.Mode
	Form   AuthForm
	Error  string
	Notice string
}

// Login handles POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, domainauth.ModeLogin)
}

// Signup handles POST /auth/signup.
func (h *AuthHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, domainauth.ModeSignup)
}

func (h *AuthHandlers) submit(w http.ResponseWriter, r *http.Request, mode domainauth.Mode) {
	if err := r.ParseForm(); err != nil {
		h.UI.renderAuth(w, r, authView{Mode: mode, Error: service.AuthFailedMessage})
		return
	}

	creds := domainauth.Credentials{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	if mode == domainauth.ModeSignup {
		creds.Name = strings.TrimSpace(r.PostFormValue("name"))
	}
	form := AuthForm{Email: creds.Email, Name: creds.Name}

	if creds.Email == "" || creds.Password == "" {
		h.UI.renderAuth(w, r, authView{Mode: mode, Form: form, Error: errMsgCredentialsRequired})
		return
	}

	result, msg, err := h.Svc.Authenticate(r.Context(), mode, creds)
	if err != nil {
		h.UI.renderAuth(w, r, authView{Mode: mode, Form: form, Error: service.AuthFailureMessage(err)})
		return
	}

	if mode == domainauth.ModeSignup {
		h.UI.renderAuth(w, r, authView{
			Mode:   domainauth.ModeLogin,
			Form:   AuthForm{Email: creds.Email},
			Notice: msg,
		})
		return
	}

	h.setSessionCookie(w, r, result.Session)
	h.logger().InfoContext(r.Context(), "login succeeded", "email", result.Session.Email)
	redirect(w, r, "/")
}

// Logout handles POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionCookie, err := r.Cookie(sessionCookieName); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), sessionCookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}

	h.clearCookie(w, r, sessionCookieName)

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "success", "redirect_to": "/"})
		return
	}
	redirect(w, r, "/")
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.GetSession(r.Context(), sessionCookie.Value)
	if err != nil {
		h.clearCookie(w, r, sessionCookieName)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          map[string]any{"email": session.Email},
		"expires_at":    session.ExpiresAt,
	})
}

// clearCookie expires a cookie, mirroring the attributes used when setting it.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}
