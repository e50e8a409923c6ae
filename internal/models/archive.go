package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ArchiveLocation is a physical filing place: room/cabinet/shelf/box.
// The code is derived once at creation and used on printed labels.
type ArchiveLocation struct {
	ID        uuid.UUID   `json:"id"`
	Code      string      `json:"code"`
	Room      string      `json:"room"`
	Cabinet   string      `json:"cabinet"`
	Shelf     string      `json:"shelf"`
	Box       string      `json:"box"`
	Label     Designation `json:"label"`
	CreatedAt time.Time   `json:"created_at"`
}

// ArchiveCode builds the label code, e.g. "R02-C1-S3-B12".
func ArchiveCode(room, cabinet, shelf, box string) string {
	return strings.ToUpper(fmt.Sprintf("%s-%s-%s-%s",
		strings.TrimSpace(room), strings.TrimSpace(cabinet),
		strings.TrimSpace(shelf), strings.TrimSpace(box)))
}
