package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vetlab-project/vetlab-server/internal/models"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "vetlab_session"

const sessionTTL = 24 * time.Hour

// SessionClaims is the signed payload of a staff session.
type SessionClaims struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"usuario"`
	DisplayName string    `json:"nombre"`
	Role        string    `json:"rol"`
	jwt.RegisteredClaims
}

// SessionManager issues and validates session cookies. All session state
// lives in the signed token; the server keeps nothing in memory.
type SessionManager struct {
	secret []byte
}

func NewSessionManager(secret string) *SessionManager {
	return &SessionManager{secret: []byte(secret)}
}

// Issue creates a signed session token for a logged-in user.
func (s *SessionManager) Issue(user *models.User) (string, error) {
	claims := SessionClaims{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates a session token and returns its claims.
func (s *SessionManager) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// SetCookie attaches a session token to the response.
func (s *SessionManager) SetCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookie, token, int(sessionTTL.Seconds()), "/", "", false, true)
}

// ClearCookie expires the session cookie.
func (s *SessionManager) ClearCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

// Current returns the claims of the session cookie, or nil when the
// request carries no valid session.
func (s *SessionManager) Current(c *gin.Context) *SessionClaims {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return nil
	}
	claims, err := s.Parse(cookie)
	if err != nil {
		return nil
	}
	return claims
}

// RequireLogin redirects to the login page unless the request carries a
// valid session. Claims are stashed in the gin context for handlers.
func (s *SessionManager) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := s.Current(c)
		if claims == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Set("session", claims)
		c.Next()
	}
}

// RequireAdmin forbids non-admin sessions. Must run after RequireLogin.
func (s *SessionManager) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := CurrentSession(c)
		if claims == nil || claims.Role != models.RoleAdmin {
			c.String(http.StatusForbidden, "Acceso denegado (solo admin).")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentSession returns the claims stored by RequireLogin.
func CurrentSession(c *gin.Context) *SessionClaims {
	if v, exists := c.Get("session"); exists {
		if claims, ok := v.(*SessionClaims); ok {
			return claims
		}
	}
	return nil
}
