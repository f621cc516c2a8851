package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vetlab-project/vetlab-server/internal/database/queries"
	"github.com/vetlab-project/vetlab-server/internal/models"
)

// Validation failure kinds.
const (
	MissingField = "missing"
	InvalidDate  = "invalid_date"
)

// ValidationError names the first form field that failed validation.
type ValidationError struct {
	Kind  string
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Kind)
}

// Message returns the user-facing text shown above the form.
func (e *ValidationError) Message() string {
	if e.Kind == InvalidDate {
		return "La fecha no es válida. Usa el formato AAAA-MM-DD."
	}
	return fmt.Sprintf("Falta completar el campo obligatorio: %s.", e.Field)
}

// requiredFields maps form keys to their user-facing names, in the order
// they are checked.
var requiredFields = []struct {
	key   string
	label string
}{
	{"dueno_nombre", "nombre del dueño"},
	{"dueno_telefono", "teléfono"},
	{"mascota_nombre", "nombre de la mascota"},
	{"muestra_tipo", "tipo de muestra"},
	{"direccion", "dirección"},
}

// IntakeHandler serves the public pickup-request form.
type IntakeHandler struct {
	requests *queries.RequestQueries
}

func NewIntakeHandler(requests *queries.RequestQueries) *IntakeHandler {
	return &IntakeHandler{requests: requests}
}

// ShowForm renders the public intake form.
func (h *IntakeHandler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "form.html", gin.H{})
}

// Submit validates the posted form and persists one pickup request.
// Validation runs entirely before any storage call; nothing is written
// when the submission is rejected.
func (h *IntakeHandler) Submit(c *gin.Context) {
	req, verr := parseSubmission(c.PostForm)
	if verr != nil {
		c.HTML(http.StatusBadRequest, "form.html", gin.H{"Error": verr.Message()})
		return
	}

	if err := h.requests.Create(req); err != nil {
		log.Printf("Failed to create request: %v", err)
		c.HTML(http.StatusInternalServerError, "form.html", gin.H{
			"Error": "No pudimos guardar tu solicitud. Intenta de nuevo en unos minutos.",
		})
		return
	}

	c.HTML(http.StatusOK, "confirm.html", gin.H{"ID": req.ID})
}

// parseSubmission builds a Request from raw form values. Required fields
// must be non-blank after trimming. The pet age is parsed leniently: junk
// or negative values are treated as absent, never rejected. A non-blank
// date must parse as an ISO calendar date; a blank one is stored as NULL.
func parseSubmission(form func(string) string) (*models.Request, *ValidationError) {
	field := func(key string) string {
		return strings.TrimSpace(form(key))
	}

	for _, f := range requiredFields {
		if field(f.key) == "" {
			return nil, &ValidationError{Kind: MissingField, Field: f.label}
		}
	}

	req := &models.Request{
		Zone:       field("zona"),
		OwnerName:  field("dueno_nombre"),
		OwnerPhone: field("dueno_telefono"),
		OwnerEmail: field("dueno_email"),
		PetName:    field("mascota_nombre"),
		PetType:    field("mascota_tipo"),
		PetBreed:   field("mascota_raza"),
		Address:    field("direccion"),
		TimeSlot:   field("horario"),
	}

	if age, err := strconv.Atoi(field("mascota_edad")); err == nil && age >= 0 {
		req.PetAge = &age
	}

	if fecha := field("fecha"); fecha != "" {
		if _, err := time.Parse("2006-01-02", fecha); err != nil {
			return nil, &ValidationError{Kind: InvalidDate, Field: "fecha"}
		}
		req.PickupDate = &fecha
	}

	// Unknown sample categories collapse into "otro" with the submitted
	// value kept as the detail text.
	req.SampleType = field("muestra_tipo")
	req.SampleDetail = field("muestra_detalle")
	if !models.KnownSampleCategory(req.SampleType) {
		req.SampleDetail = req.SampleType
		req.SampleType = models.CategoryOther
	}

	return req, nil
}
