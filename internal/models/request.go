package models

import (
	"time"
)

// Request statuses. Intake only ever creates records as StatusPending;
// the remaining states are set by staff tooling outside this service.
const (
	StatusPending    = "pendiente"
	StatusInProgress = "en_proceso"
	StatusCompleted  = "completada"
	StatusCancelled  = "cancelada"
)

// Known sample categories. Anything else is stored under CategoryOther
// with the submitted value preserved as the detail text.
const (
	CategoryBlood = "sangre"
	CategoryStool = "heces"
	CategoryUrine = "orina"
	CategoryOther = "otro"
)

// Request represents one pickup request submitted through the public form.
// Column names follow the legacy "solicitudes" schema.
type Request struct {
	ID           int64     `json:"id" db:"id"`
	Zone         string    `json:"zona" db:"zona"`
	OwnerName    string    `json:"dueno" db:"dueno"`
	OwnerPhone   string    `json:"tel" db:"tel"`
	OwnerEmail   string    `json:"email" db:"email"`
	PetName      string    `json:"mascota" db:"mascota"`
	PetType      string    `json:"mascota_tipo" db:"mascota_tipo"`
	PetAge       *int      `json:"mascota_edad" db:"mascota_edad"`
	PetBreed     string    `json:"mascota_raza" db:"mascota_raza"`
	SampleType   string    `json:"muestra" db:"muestra"`
	SampleDetail string    `json:"muestra_detalle" db:"muestra_detalle"`
	Address      string    `json:"direccion" db:"direccion"`
	PickupDate   *string   `json:"fecha" db:"fecha"`
	TimeSlot     string    `json:"horario" db:"horario"`
	Status       string    `json:"estado" db:"estado"`
	CreatedAt    time.Time `json:"creado" db:"creado"`
}

// KnownSampleCategory reports whether category is one of the fixed sample types.
func KnownSampleCategory(category string) bool {
	switch category {
	case CategoryBlood, CategoryStool, CategoryUrine, CategoryOther:
		return true
	}
	return false
}
