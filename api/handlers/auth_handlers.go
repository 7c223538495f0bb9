package handlers

import (
	"net/http"
	"strings"
	"time"

	"vesta/config"
	"vesta/core/auth"
	"vesta/core/store"
	"vesta/core/utils"
)

const SessionCookieName = "vesta_session"

type AuthHandler struct {
	cfg            *config.AppConfig
	users          store.UsersStore
	sessionManager *auth.SessionManager
	workspaces     Registry
	metrics        *Metrics
	logger         *utils.Logger
}

func NewAuthHandler(cfg *config.AppConfig, users store.UsersStore, sm *auth.SessionManager, workspaces Registry, metrics *Metrics, logger *utils.Logger) *AuthHandler {
	return &AuthHandler{cfg: cfg, users: users, sessionManager: sm, workspaces: workspaces, metrics: metrics, logger: logger}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var cred auth.Credentials
	if err := decodeJSON(r, &cred); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	cred.Email = strings.ToLower(strings.TrimSpace(cred.Email))
	if err := utils.ValidateEmail(cred.Email); err != nil {
		writeError(w, http.StatusBadRequest, "invalid email")
		return
	}
	user, err := h.users.FindByEmail(r.Context(), cred.Email)
	if err != nil || user == nil {
		h.logger.Printf("AUTH fail (user missing) %s", cred.Email)
		writeError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}
	stored, err := auth.ParsePasswordHash(user.PasswordHash, user.Salt)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}
	ok, err := auth.VerifyPassword(cred.Password, h.cfg.Pepper, stored)
	if err != nil || !ok {
		h.logger.Printf("AUTH fail (bad password) %s", cred.Email)
		writeError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}
	h.establish(w, r, user, false, false)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req auth.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := utils.ValidateFullName(req.Name); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "invalid email")
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	existing, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "An account with this email already exists.")
		return
	}
	hash, err := auth.HashPassword(req.Password, h.cfg.Pepper)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}
	user := &store.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash.Hash,
		Salt:         hash.Salt,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		h.logger.Errorf("create user: %v", err)
		writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}
	h.metrics.Signups.Inc()
	h.establish(w, r, user, false, true)
}

// Social is the mocked federated login: the provider callback is taken at
// its word and an account is created on first sight of the email.
func (h *AuthHandler) Social(w http.ResponseWriter, r *http.Request) {
	var req auth.SocialRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := utils.ValidateEmail(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "invalid email")
		return
	}
	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if user == nil {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = req.Email
		}
		// Social accounts never log in with a password; store an
		// unguessable one so the credential path stays closed.
		random, err := utils.RandString(24)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "login failed")
			return
		}
		hash, err := auth.HashPassword(random, h.cfg.Pepper)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "login failed")
			return
		}
		user = &store.User{Name: name, Email: req.Email, PasswordHash: hash.Hash, Salt: hash.Salt}
		if err := h.users.Create(r.Context(), user); err != nil {
			h.logger.Errorf("create social user: %v", err)
			writeError(w, http.StatusInternalServerError, "login failed")
			return
		}
	}
	h.establish(w, r, user, true, false)
}

func (h *AuthHandler) establish(w http.ResponseWriter, r *http.Request, user *store.User, social, signup bool) {
	sess, err := h.sessionManager.Issue(r.Context(), user)
	if err != nil {
		h.logger.Errorf("issue session: %v", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  sess.ExpiresAt,
	})
	ws := h.workspaces.Acquire(r.Context(), sess, user)
	if signup {
		ws.Nav.Signup(r.Context(), user)
	} else {
		ws.Nav.Login(r.Context(), user, social)
	}
	h.metrics.Logins.Inc()
	renderView(w, ws)
}

// Logout audits and clears the workspace before the session is revoked, so
// the trail still knows who left.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ws := WorkspaceFrom(r)
	ws.Nav.Logout(r.Context())
	ws.Tour.Close()
	h.workspaces.Release(ws.SessionID)
	if err := h.sessionManager.Revoke(r.Context(), ws.SessionID); err != nil {
		h.logger.Errorf("revoke session: %v", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
	writeJSON(w, http.StatusOK, ws.Nav.View())
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ws := WorkspaceFrom(r)
	writeJSON(w, http.StatusOK, ws.User)
}
