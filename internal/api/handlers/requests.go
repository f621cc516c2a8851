package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vetlab-project/vetlab-server/internal/api/middleware"
	"github.com/vetlab-project/vetlab-server/internal/database/queries"
	"github.com/vetlab-project/vetlab-server/internal/models"
)

// RequestsHandler serves the staff listing page and bulk deletion.
type RequestsHandler struct {
	requests *queries.RequestQueries
}

func NewRequestsHandler(requests *queries.RequestQueries) *RequestsHandler {
	return &RequestsHandler{requests: requests}
}

// List renders the 50 most recent requests, newest first.
func (h *RequestsHandler) List(c *gin.Context) {
	session := middleware.CurrentSession(c)

	data := gin.H{
		"Notice":  noticeText(c.Query("aviso"), c.Query("n")),
		"IsAdmin": session != nil && session.Role == models.RoleAdmin,
	}

	records, err := h.requests.ListRecent(queries.DefaultListLimit)
	if err != nil {
		log.Printf("Failed to list requests: %v", err)
		data["Error"] = "No pudimos cargar las solicitudes. Intenta de nuevo."
		c.HTML(http.StatusInternalServerError, "list.html", data)
		return
	}

	data["Requests"] = records
	c.HTML(http.StatusOK, "list.html", data)
}

// Delete removes the selected requests and redirects back to the listing
// with a notice. Submitting with nothing selected is a no-op, reported as
// its own notice rather than as a zero-row deletion.
func (h *RequestsHandler) Delete(c *gin.Context) {
	var ids []int64
	for _, raw := range c.PostFormArray("ids") {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	count, err := h.requests.DeleteByIDs(ids)
	if err != nil {
		if errors.Is(err, queries.ErrNoSelection) {
			c.Redirect(http.StatusSeeOther, "/solicitudes?aviso=sin_seleccion")
			return
		}
		log.Printf("Failed to delete requests: %v", err)
		c.Redirect(http.StatusSeeOther, "/solicitudes?aviso=error")
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/solicitudes?aviso=borradas&n=%d", count))
}

// noticeText maps redirect notice codes to user-facing text. Codes travel
// through the query string, the text never does.
func noticeText(code, n string) string {
	switch code {
	case "sin_seleccion":
		return "No seleccionaste ninguna solicitud."
	case "borradas":
		return fmt.Sprintf("Solicitudes borradas: %s.", n)
	case "error":
		return "No pudimos borrar las solicitudes. Intenta de nuevo."
	case "vet_creado":
		return "Cuenta de veterinario creada."
	}
	return ""
}
