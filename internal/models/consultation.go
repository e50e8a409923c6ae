package models

import (
	"time"

	"github.com/google/uuid"
)

// Consultation modes. Set explicitly at registration; never guessed from
// the designation text.
const (
	ConsultationModeOpen       = "open"
	ConsultationModeRestricted = "restricted"
	ConsultationModeDirect     = "direct"
)

var consultationModes = map[string]bool{
	ConsultationModeOpen:       true,
	ConsultationModeRestricted: true,
	ConsultationModeDirect:     true,
}

func IsValidConsultationMode(mode string) bool {
	return consultationModes[mode]
}

// Consultation statuses
const (
	ConsultationStatusOpen       = "open"
	ConsultationStatusEvaluating = "evaluating"
	ConsultationStatusAwarded    = "awarded"
	ConsultationStatusCancelled  = "cancelled"
)

type Consultation struct {
	ID        uuid.UUID   `json:"id"`
	Reference string      `json:"reference"`
	Object    Designation `json:"object"`
	Mode      string      `json:"mode"`
	Deadline  *time.Time  `json:"deadline,omitempty"`
	Status    string      `json:"status"`
	AwardedTo *string     `json:"awarded_to,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
