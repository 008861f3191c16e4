package handlers

import (
	"net/http"
	"strings"
	"time"

	"backoffice/internal/adminguard"
	intconfig "backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/http/middleware"
	"backoffice/internal/repositories"
	"backoffice/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 24 * time.Hour

// defaultRedirect is where sanitized redirects land when the requested
// target is external or malformed.
const defaultRedirect = "/admin"

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	EntryToken string `json:"entryToken"`
	RedirectTo string `json:"redirectTo"`
}

// Login authenticates an admin and, on success, sets the session and entry
// cookies. Allow-list and entry-token failures never set cookies.
func Login(env intconfig.Env, guard adminguard.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if !BindJSONOrError(c, &req) {
			return
		}

		reqID := middleware.GetRequestID(c)
		repo := repositories.UserRepository{}

		user, err := repo.GetByEmail(req.Email)
		if err != nil {
			if domain.IsNotFound(err) {
				RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
			} else {
				RespondError(c, http.StatusInternalServerError, "failed to load user", err)
			}
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}

		if !strings.EqualFold(strings.TrimSpace(user.Status), "active") {
			RespondError(c, http.StatusForbidden, "account is not active", nil)
			return
		}

		if !guard.EmailAllowed(user.Email) {
			utils.LogEvent(reqID, "auth", "login", "allow-list rejection for "+user.Email)
			RespondError(c, http.StatusForbidden, "email is not on the admin allow-list", nil)
			return
		}

		if env.EntryToken != "" && req.EntryToken != env.EntryToken {
			RespondError(c, http.StatusUnauthorized, "invalid entry token", nil)
			return
		}

		token, err := adminguard.NewSessionToken(adminguard.User{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		}, []byte(env.JWTSecret), sessionTTL)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to issue session", err)
			return
		}

		secure := requestIsSecure(c)
		setAuthCookie(c, middleware.SessionCookie, token, secure)
		if env.EntryToken != "" {
			setAuthCookie(c, middleware.EntryCookie, env.EntryToken, secure)
		}

		utils.LogEvent(reqID, "auth", "login", "admin login for "+user.Email)
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"redirectTo": SanitizeRedirect(req.RedirectTo),
			"user":       user.ToPublic(),
		})
	}
}

// Logout clears both auth cookies.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		secure := requestIsSecure(c)
		clearAuthCookie(c, middleware.SessionCookie, secure)
		clearAuthCookie(c, middleware.EntryCookie, secure)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// SanitizeRedirect confines a client-supplied redirect to an internal path.
// Anything external, scheme-relative, or malformed becomes defaultRedirect.
func SanitizeRedirect(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") {
		return defaultRedirect
	}
	if strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return defaultRedirect
	}
	if strings.Contains(raw, "://") || strings.ContainsAny(raw, "\\\r\n") {
		return defaultRedirect
	}
	return raw
}

func requestIsSecure(c *gin.Context) bool {
	if c.Request.TLS != nil {
		return true
	}
	return strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https")
}

func setAuthCookie(c *gin.Context, name, value string, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearAuthCookie(c *gin.Context, name string, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
