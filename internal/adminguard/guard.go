package adminguard

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the authenticated admin attached to the request after the guard
// passes.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Rejection is the terminal response produced when any guard step fails.
type Rejection struct {
	Status  int
	Message string
}

// Result is a tagged variant: exactly one of the authorized user or the
// rejection is present. Callers must branch and never run business logic on
// the rejected path.
type Result struct {
	user     User
	rejected *Rejection
}

func Authorized(u User) Result {
	return Result{user: u}
}

func Rejected(status int, message string) Result {
	return Result{rejected: &Rejection{Status: status, Message: message}}
}

// User returns the authorized admin; ok is false on the rejected path.
func (r Result) User() (User, bool) {
	if r.rejected != nil {
		return User{}, false
	}
	return r.user, true
}

// Rejection returns the terminal response; ok is false when authorized.
func (r Result) Rejection() (Rejection, bool) {
	if r.rejected == nil {
		return Rejection{}, false
	}
	return *r.rejected, true
}

// Guard validates session token, allow-list, and entry-token cookie for the
// admin surface. All checks are pure; no I/O happens here.
type Guard struct {
	JWTSecret     []byte
	AllowedEmails []string

	// EntryToken is the shared secret expected in the entry cookie. Empty
	// means the entry-token step is skipped.
	EntryToken string
}

// Check runs the guard pipeline: session -> allow-list -> entry token.
func (g Guard) Check(sessionToken, entryCookie string) Result {
	token := strings.TrimSpace(sessionToken)
	if token == "" {
		return Rejected(http.StatusUnauthorized, "authentication required")
	}

	user, err := g.parseSession(token)
	if err != nil {
		return Rejected(http.StatusUnauthorized, "invalid or expired session")
	}

	if !g.EmailAllowed(user.Email) {
		return Rejected(http.StatusForbidden, "email is not on the admin allow-list")
	}

	if g.EntryToken != "" && entryCookie != g.EntryToken {
		return Rejected(http.StatusUnauthorized, "admin entry token required")
	}

	return Authorized(user)
}

// EmailAllowed applies the allow-list policy. An empty list admits every
// authenticated email; see AllowAllWhenEmpty.
func (g Guard) EmailAllowed(email string) bool {
	if len(g.AllowedEmails) == 0 {
		return AllowAllWhenEmpty
	}
	needle := strings.ToLower(strings.TrimSpace(email))
	for _, allowed := range g.AllowedEmails {
		if strings.ToLower(strings.TrimSpace(allowed)) == needle {
			return true
		}
	}
	return false
}

// AllowAllWhenEmpty preserves the historical behavior of an unconfigured
// allow-list: every authenticated email passes. Deployments that want the
// admin surface locked down must set ADMIN_EMAILS.
const AllowAllWhenEmpty = true

// NewSessionToken issues the HS256 session JWT the guard accepts.
func NewSessionToken(u User, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.Role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (g Guard) parseSession(raw string) (User, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return g.JWTSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return User{}, err
	}

	u := User{}
	if v, ok := claims["user_id"].(float64); ok {
		u.ID = int64(v)
	}
	if v, ok := claims["email"].(string); ok {
		u.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		u.Role = v
	}
	return u, nil
}
