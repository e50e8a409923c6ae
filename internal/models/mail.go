package models

import (
	"time"

	"github.com/google/uuid"
)

// Mail directions
const (
	MailDirectionIncoming = "incoming"
	MailDirectionOutgoing = "outgoing"
)

func IsValidMailDirection(direction string) bool {
	return direction == MailDirectionIncoming || direction == MailDirectionOutgoing
}

// Mail is one piece of registered correspondence. References are unique
// per direction and year. ArchiveLocationID is set once the physical
// document is filed.
type Mail struct {
	ID                uuid.UUID   `json:"id"`
	Reference         string      `json:"reference"`
	Direction         string      `json:"direction"`
	Year              int         `json:"year"`
	Correspondent     string      `json:"correspondent"`
	Subject           Designation `json:"subject"`
	ReceivedAt        *time.Time  `json:"received_at,omitempty"`
	ArchiveLocationID *uuid.UUID  `json:"archive_location_id,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}
