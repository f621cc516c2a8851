package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vetlab-project/vetlab-server/internal/api/middleware"
	"github.com/vetlab-project/vetlab-server/internal/database/queries"
)

// genericLoginError is shown for unknown usernames and wrong passwords
// alike, so the login form leaks nothing about which accounts exist.
const genericLoginError = "Usuario o clave incorrectos."

// AuthHandler handles staff login and logout.
type AuthHandler struct {
	users    *queries.UserQueries
	sessions *middleware.SessionManager
}

func NewAuthHandler(users *queries.UserQueries, sessions *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

// ShowLogin renders the login form. Already-authenticated sessions go
// straight to the listing.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if h.sessions.Current(c) != nil {
		c.Redirect(http.StatusSeeOther, "/solicitudes")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login authenticates the posted credentials and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("usuario"))
	password := strings.TrimSpace(c.PostForm("clave"))

	user, err := h.users.VerifyCredentials(username, password)
	if err != nil {
		if !errors.Is(err, queries.ErrInvalidCredentials) {
			log.Printf("Login failed for storage reasons: %v", err)
			c.HTML(http.StatusInternalServerError, "login.html", gin.H{
				"Error": "No pudimos verificar tus datos. Intenta de nuevo.",
			})
			return
		}
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": genericLoginError})
		return
	}

	token, err := h.sessions.Issue(user)
	if err != nil {
		log.Printf("Failed to issue session: %v", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Error": "No pudimos iniciar tu sesión. Intenta de nuevo.",
		})
		return
	}

	h.sessions.SetCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/solicitudes")
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.ClearCookie(c)
	c.Redirect(http.StatusSeeOther, "/login")
}
