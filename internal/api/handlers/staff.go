package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vetlab-project/vetlab-server/internal/database/queries"
	"github.com/vetlab-project/vetlab-server/internal/models"
)

// StaffHandler lets admins create additional vet accounts.
type StaffHandler struct {
	users *queries.UserQueries
}

func NewStaffHandler(users *queries.UserQueries) *StaffHandler {
	return &StaffHandler{users: users}
}

// ShowCreateVet renders the account-creation form.
func (h *StaffHandler) ShowCreateVet(c *gin.Context) {
	c.HTML(http.StatusOK, "vet.html", gin.H{})
}

// CreateVet creates a new staff account with the vet role.
func (h *StaffHandler) CreateVet(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("usuario"))
	displayName := strings.TrimSpace(c.PostForm("nombre"))
	password := strings.TrimSpace(c.PostForm("clave"))

	if username == "" || displayName == "" || password == "" {
		c.HTML(http.StatusBadRequest, "vet.html", gin.H{"Error": "Completa todos los campos."})
		return
	}

	if _, err := h.users.Create(username, displayName, password, models.RoleVet); err != nil {
		if errors.Is(err, queries.ErrDuplicateUsername) {
			c.HTML(http.StatusConflict, "vet.html", gin.H{"Error": "Ese usuario ya existe."})
			return
		}
		log.Printf("Failed to create vet account: %v", err)
		c.HTML(http.StatusInternalServerError, "vet.html", gin.H{
			"Error": "No pudimos crear la cuenta. Intenta de nuevo.",
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/solicitudes?aviso=vet_creado")
}
