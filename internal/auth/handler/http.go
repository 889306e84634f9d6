// Package handler exposes authentication over HTTP with a cookie-carried
// session token.
package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bizconnect/backend/internal/auth/service"
	"bizconnect/backend/internal/config"
	"bizconnect/backend/internal/session"
	sessiondomain "bizconnect/backend/internal/session/domain"
)

// identityKey is the gin context key the middleware stores the caller's
// identity under.
const identityKey = "auth.identity"

// Handler serves login, logout, and the current-user endpoint, and provides
// the RequireAuth middleware for protected routes.
type Handler struct {
	auth     *service.AuthService
	sessions *session.Store
	cfg      *config.Config
	log      *zap.Logger
}

// New returns a Handler. log may be nil.
func New(auth *service.AuthService, sessions *session.Store, cfg *config.Config, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{auth: auth, sessions: sessions, cfg: cfg, log: log}
}

// Register mounts the public auth routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.GET("/me", h.RequireAuth(), h.Me)
}

type loginRequest struct {
	Username   string `json:"username" form:"username"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
	ReturnURL  string `json:"return_url" form:"return_url"`
}

// Login authenticates a username/password pair and sets the session cookie.
// Accepts JSON or form bodies. remember_me selects the long-lived session
// tier. A valid local return_url turns the success response into a redirect
// so browser form posts land back where they started.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request"})
		return
	}

	meta := sessiondomain.Metadata{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	issued, err := h.auth.Login(c.Request.Context(), strings.TrimSpace(req.Username), req.Password, req.RememberMe, meta)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		h.log.Error("login handler failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	h.setSessionCookie(c, issued.Token, h.sessions.TTL(req.RememberMe))

	if target, ok := localReturnURL(req.ReturnURL); ok {
		c.Redirect(http.StatusSeeOther, target)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        issued.Identity.UserID,
			"username":  issued.Identity.Username,
			"email":     issued.Identity.Email,
			"full_name": issued.Identity.FullName,
		},
		"expires_at": issued.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Logout revokes the current session and clears the cookie. Safe to call
// without a session; it never fails from the client's perspective.
func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cfg.CookieName); err == nil && token != "" {
		h.auth.Logout(c.Request.Context(), token)
	}
	h.clearSessionCookie(c)

	if wantsHTML(c) {
		c.Redirect(http.StatusSeeOther, h.cfg.LogoutPath)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the authenticated caller's identity. Mounted behind RequireAuth.
func (h *Handler) Me(c *gin.Context) {
	id, ok := CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        id.UserID,
		"username":  id.Username,
		"email":     id.Email,
		"full_name": id.FullName,
	})
}

// RequireAuth validates the session cookie on every request and stores the
// resolved identity in the context. Browser requests without a valid session
// are redirected to the login page with the original path as return_url; API
// requests get a bare 401. With sliding expiration enabled, a session past
// the midpoint of its lifetime is replaced by a fresh one and the cookie
// re-issued, so active users are never signed out mid-visit.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(h.cfg.CookieName)
		if err != nil || token == "" {
			h.reject(c)
			return
		}

		id, err := h.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			h.clearSessionCookie(c)
			h.reject(c)
			return
		}

		if h.cfg.SlidingExpiration {
			h.maybeSlide(c, token, id.UserID)
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// CurrentIdentity returns the identity RequireAuth stored for this request.
func CurrentIdentity(c *gin.Context) (*service.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*service.Identity)
	return id, ok
}

// maybeSlide re-issues the session when more than half of its lifetime has
// elapsed. The tier is inferred from the stored lifetime, so a remember-me
// session slides onto another remember-me session. Failures leave the
// current session in place; the request proceeds either way.
func (h *Handler) maybeSlide(c *gin.Context, token, userID string) {
	sess, err := h.sessions.Get(c.Request.Context(), token)
	if err != nil || sess == nil {
		return
	}
	lifetime := sess.ExpiresAt.Sub(sess.CreatedAt)
	if time.Until(sess.ExpiresAt) > lifetime/2 {
		return
	}

	persistent := lifetime > h.sessions.TTL(false)
	fresh, err := h.sessions.Create(c.Request.Context(), userID, persistent, sessiondomain.Metadata{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		h.log.Warn("sliding re-issue failed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	if err := h.sessions.Revoke(c.Request.Context(), token); err != nil {
		h.log.Warn("sliding revoke of old session failed", zap.Error(err))
	}
	h.setSessionCookie(c, fresh.Token, h.sessions.TTL(persistent))
}

func (h *Handler) reject(c *gin.Context) {
	if wantsHTML(c) {
		target := h.cfg.LoginPath
		if ret, ok := localReturnURL(c.Request.URL.RequestURI()); ok && ret != h.cfg.LoginPath {
			target += "?return_url=" + url.QueryEscape(ret)
		}
		c.Redirect(http.StatusSeeOther, target)
	} else {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
	}
	c.Abort()
}

func (h *Handler) setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.CookieName, token, int(ttl.Seconds()), "/", "", h.cfg.RequireHTTPS, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.RequireHTTPS, true)
}

// localReturnURL accepts only same-site paths. Absolute URLs and
// protocol-relative forms like //evil.example are open-redirect vectors and
// are dropped.
func localReturnURL(raw string) (string, bool) {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "", false
	}
	if strings.ContainsAny(raw, "\r\n\\") {
		return "", false
	}
	return raw, true
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
